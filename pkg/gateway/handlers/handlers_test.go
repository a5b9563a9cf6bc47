package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/account"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/catalog"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/history"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/voice/tts"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/apierror"
)

type fakeAccounts struct {
	acct    *account.Account
	err     error
	lastOp  string
	gotUser string
	gotPlan string
	gotArg  int64
}

func (f *fakeAccounts) FindOrCreateByEmail(ctx context.Context, email string) (*account.Account, error) {
	f.lastOp = "find_or_create"
	if f.err != nil {
		return nil, f.err
	}
	return f.acct, nil
}

func (f *fakeAccounts) FindByUserID(ctx context.Context, userID string) (*account.Account, error) {
	f.lastOp = "find"
	f.gotUser = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.acct, nil
}

func (f *fakeAccounts) SetSubscription(ctx context.Context, userID, plan string) error {
	f.lastOp = "set_subscription"
	f.gotUser = userID
	f.gotPlan = plan
	return f.err
}

func (f *fakeAccounts) IncrementTokens(ctx context.Context, userID string, delta int64) error {
	f.lastOp = "increment_tokens"
	f.gotUser = userID
	f.gotArg = delta
	return f.err
}

type fakeResponder struct {
	segments []string
	err      error
	gotName  string
	gotMsg   string
}

func (f *fakeResponder) Respond(ctx context.Context, userID, characterName, personality, userMessage string) ([]string, error) {
	f.gotName = characterName
	f.gotMsg = userMessage
	if f.err != nil {
		return nil, f.err
	}
	return f.segments, nil
}

type fakeCheckout struct {
	url     string
	err     error
	gotUser string
	gotPlan string
}

func (f *fakeCheckout) Create(ctx context.Context, userID, plan, email string) (string, error) {
	f.gotUser = userID
	f.gotPlan = plan
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeCatalog struct {
	companions []catalog.Companion
	err        error
}

func (f *fakeCatalog) ListActive(ctx context.Context) ([]catalog.Companion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.companions, nil
}

type fakeHistory struct {
	messages []history.Message
	gotUser  string
	gotName  string
}

func (f *fakeHistory) Recent(ctx context.Context, userID, companionName string, limit int) ([]history.Message, error) {
	f.gotUser = userID
	f.gotName = companionName
	return f.messages, nil
}

type fakeSyncer struct {
	acct *account.Account
	err  error
}

func (f *fakeSyncer) Sync(ctx context.Context, workosUserID string) (*account.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.acct, nil
}

type fakeSpeech struct {
	audio []byte
	err   error
	got   string
}

func (f *fakeSpeech) Name() string { return "fake" }

func (f *fakeSpeech) Synthesize(ctx context.Context, text string, opts tts.SynthesizeOptions) (*tts.Synthesis, error) {
	f.got = text
	if f.err != nil {
		return nil, f.err
	}
	return &tts.Synthesis{Audio: f.audio, Format: "mp3", SampleRate: 44100}, nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apierror.Envelope {
	t.Helper()
	var env apierror.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	return env
}

func TestNotFoundHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)

	NotFoundHandler{}.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error.Type != companion.ErrNotFound {
		t.Fatalf("error type = %q, want %q", env.Error.Type, companion.ErrNotFound)
	}
}
