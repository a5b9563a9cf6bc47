package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
)

type fakeProvider struct {
	reply     string
	err       error
	gotPrompt string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	return f.reply, f.err
}

type recordingHistory struct {
	entries []string
}

func (h *recordingHistory) Append(ctx context.Context, userID, companionName, role, content string) error {
	h.entries = append(h.entries, role+":"+content)
	return nil
}

func TestRespond_SplitsOnDelimiter(t *testing.T) {
	p := &fakeProvider{reply: "hey you 😊| how was your day?|"}
	r := NewResponder(p, nil)

	got, err := r.Respond(context.Background(), "", "Luna", "Playful and Flirty", "hi")
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}

	// Segments are passed through untouched: no trimming, trailing empty
	// segment preserved.
	want := []string{"hey you 😊", " how was your day?", ""}
	if len(got) != len(want) {
		t.Fatalf("got %d segments %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRespond_SingleSegmentWithoutDelimiter(t *testing.T) {
	p := &fakeProvider{reply: "just one message"}
	r := NewResponder(p, nil)

	got, err := r.Respond(context.Background(), "", "Luna", "calm", "hi")
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if len(got) != 1 || got[0] != "just one message" {
		t.Fatalf("unexpected segments %q", got)
	}
}

func TestRespond_PromptInterpolation(t *testing.T) {
	p := &fakeProvider{reply: "ok|"}
	r := NewResponder(p, nil)

	if _, err := r.Respond(context.Background(), "", "Luna", "Playful and Flirty", "how are you?"); err != nil {
		t.Fatalf("Respond error: %v", err)
	}

	for _, want := range []string{
		"You are Luna,",
		"Luna's personality type is Playful and Flirty.",
		"```how are you?```",
		"delimeter (|)",
	} {
		if !strings.Contains(p.gotPrompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestRespond_MissingFieldsRejectedBeforeCall(t *testing.T) {
	cases := []struct {
		name, msg, char, personality string
	}{
		{"empty message", "", "Luna", "calm"},
		{"empty name", "hi", "", "calm"},
		{"empty personality", "hi", "Luna", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakeProvider{reply: "should not be called"}
			r := NewResponder(p, nil)
			_, err := r.Respond(context.Background(), "", tc.char, tc.personality, tc.msg)
			if !companion.IsType(err, companion.ErrInvalidRequest) {
				t.Fatalf("expected invalid request, got %v", err)
			}
			if p.gotPrompt != "" {
				t.Fatalf("provider called despite invalid input")
			}
		})
	}
}

func TestRespond_ProviderErrorPropagates(t *testing.T) {
	p := &fakeProvider{err: companion.NewProviderUnavailableError("openai", errors.New("boom"))}
	r := NewResponder(p, nil)

	_, err := r.Respond(context.Background(), "", "Luna", "calm", "hi")
	if !companion.IsType(err, companion.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}
}

func TestRespond_LogsRawTurnPair(t *testing.T) {
	p := &fakeProvider{reply: "a|b"}
	h := &recordingHistory{}
	r := NewResponder(p, h)

	if _, err := r.Respond(context.Background(), "123456789", "Luna", "calm", "hi"); err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if len(h.entries) != 2 || h.entries[0] != "user:hi" || h.entries[1] != "companion:a|b" {
		t.Fatalf("unexpected history entries %q", h.entries)
	}
}
