// Package voice implements the live voice agent: call lifecycle, turn
// detection, and the speech pipeline wiring STT, the LLM, and TTS.
package voice

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/llm"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/voice/stt"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/voice/tts"
)

// greetingInstruction seeds the first companion reply when a call starts.
const greetingInstruction = "Greet the user and offer your assistance."

// Call is an active voice call between a user and a companion.
type Call struct {
	ID            string    `json:"session_id"`
	UserID        string    `json:"user_id"`
	CompanionName string    `json:"companion_name"`
	Personality   string    `json:"personality"`
	Voice         string    `json:"voice_id,omitempty"`
	StartedAt     time.Time `json:"started_at"`
}

// Registry tracks active calls by session ID.
type Registry struct {
	mu    sync.Mutex
	calls map[string]*Call
}

// NewRegistry creates an empty call registry.
func NewRegistry() *Registry {
	return &Registry{calls: make(map[string]*Call)}
}

// Initiate starts a call and returns it with a fresh session ID.
func (r *Registry) Initiate(userID, companionName, personality, voice string) (*Call, error) {
	if userID == "" {
		return nil, companion.NewInvalidRequestErrorWithParam("user_id is required", "user_id")
	}
	if companionName == "" {
		return nil, companion.NewInvalidRequestErrorWithParam("companion_name is required", "companion_name")
	}

	call := &Call{
		ID:            uuid.NewString(),
		UserID:        userID,
		CompanionName: companionName,
		Personality:   personality,
		Voice:         voice,
		StartedAt:     time.Now().UTC(),
	}

	r.mu.Lock()
	r.calls[call.ID] = call
	r.mu.Unlock()
	return call, nil
}

// Get returns the call for a session ID.
func (r *Registry) Get(sessionID string) (*Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[sessionID]
	return call, ok
}

// End removes the call and reports its duration.
func (r *Registry) End(sessionID string) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[sessionID]
	if !ok {
		return 0, false
	}
	delete(r.calls, sessionID)
	return time.Since(call.StartedAt), true
}

// Active returns the number of live calls.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Agent runs the speech pipeline for live calls.
type Agent struct {
	stt    stt.Provider
	tts    tts.Provider
	llm    llm.Provider
	turn   TurnConfig
	logger *slog.Logger
}

// NewAgent wires the voice pipeline providers together.
func NewAgent(sttProvider stt.Provider, ttsProvider tts.Provider, llmProvider llm.Provider, turn TurnConfig, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		stt:    sttProvider,
		tts:    ttsProvider,
		llm:    llmProvider,
		turn:   turn,
		logger: logger,
	}
}
