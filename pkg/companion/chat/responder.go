// Package chat builds persona prompts and turns one completion call into a
// delimiter-split companion reply.
package chat

import (
	"context"
	"strings"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/llm"
)

// HistoryLogger records chat turns. The chat flow treats logging as
// best-effort; a logging failure never fails the turn.
type HistoryLogger interface {
	Append(ctx context.Context, userID, companionName, role, content string) error
}

// Responder answers one user turn with a persona-shaped reply.
type Responder struct {
	provider llm.Provider
	history  HistoryLogger // optional
}

func NewResponder(provider llm.Provider, history HistoryLogger) *Responder {
	return &Responder{provider: provider, history: history}
}

// Respond interpolates the persona prompt, performs one completion call and
// splits the reply on the delimiter. Segments are returned exactly as the
// model produced them: no trimming, empty segments preserved.
func (r *Responder) Respond(ctx context.Context, userID, characterName, personality, userMessage string) ([]string, error) {
	if userMessage == "" {
		return nil, companion.NewInvalidRequestErrorWithParam("message must not be empty", "message")
	}
	if characterName == "" {
		return nil, companion.NewInvalidRequestErrorWithParam("name must not be empty", "name")
	}
	if personality == "" {
		return nil, companion.NewInvalidRequestErrorWithParam("personality must not be empty", "personality")
	}

	prompt := PersonaPrompt(characterName, personality, userMessage)
	reply, err := r.provider.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	segments := strings.Split(reply, Delimiter)

	if r.history != nil && userID != "" {
		// Log the raw turn pair, not the split segments.
		_ = r.history.Append(ctx, userID, characterName, "user", userMessage)
		_ = r.history.Append(ctx, userID, characterName, "companion", reply)
	}

	return segments, nil
}
