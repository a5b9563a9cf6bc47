package voice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/llm"
)

// TurnConfig configures end-of-turn detection.
type TurnConfig struct {
	// PunctuationTrigger is the set of characters that end a sentence and
	// trigger an immediate completion check.
	PunctuationTrigger string
	// NoActivityTimeout is how long to wait without new transcript text
	// before forcing a completion check.
	NoActivityTimeout time.Duration
	// MinWords is the minimum transcript word count before any check runs.
	MinWords int
	// SemanticCheck enables the LLM completion check. When disabled, every
	// trigger commits immediately.
	SemanticCheck bool
}

// DefaultTurnConfig returns the detection settings used by the voice agent.
func DefaultTurnConfig() TurnConfig {
	return TurnConfig{
		PunctuationTrigger: ".!?",
		NoActivityTimeout:  3 * time.Second,
		MinWords:           1,
		SemanticCheck:      true,
	}
}

// TurnChecker decides whether an utterance transcript reads as a finished
// user turn.
type TurnChecker interface {
	CheckTurnComplete(ctx context.Context, transcript string) (bool, error)
}

// TurnDetector decides when the user has finished speaking:
// 1. Punctuation triggers (. ! ?) run an immediate completion check.
// 2. A no-activity timeout forces a completion check.
// 3. The completion check confirms the turn before commit.
type TurnDetector struct {
	config  TurnConfig
	checker TurnChecker
	logger  *slog.Logger

	mu             sync.Mutex
	ctx            context.Context
	cancel         context.CancelFunc
	transcript     strings.Builder
	lastUpdate     time.Time
	pendingCheck   bool
	committed      bool // prevents double commits before Reset
	lastCheckedLen int  // prevents re-checking the same transcript on timeout

	onAnalyzing func(transcript string)
	onCommit    func(transcript string, forced bool)
}

// NewTurnDetector creates a turn detector with the given configuration.
func NewTurnDetector(config TurnConfig, checker TurnChecker, logger *slog.Logger) *TurnDetector {
	if logger == nil {
		logger = slog.Default()
	}
	return &TurnDetector{
		config:  config,
		checker: checker,
		logger:  logger,
	}
}

// SetCallbacks sets the event callbacks.
func (d *TurnDetector) SetCallbacks(onAnalyzing func(transcript string), onCommit func(transcript string, forced bool)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onAnalyzing = onAnalyzing
	d.onCommit = onCommit
}

// Start begins the inactivity checker goroutine. Must be called before
// adding transcript text.
func (d *TurnDetector) Start(ctx context.Context) {
	d.mu.Lock()
	d.ctx, d.cancel = context.WithCancel(ctx)
	d.mu.Unlock()

	go d.timeoutLoop()
}

// Stop stops the inactivity checker goroutine.
func (d *TurnDetector) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Unlock()
}

func (d *TurnDetector) timeoutLoop() {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			return
		case <-ticker.C:
			d.checkTimeout()
		}
	}
}

// checkTimeout runs a completion check, or force-commits, once the
// transcript has been idle for NoActivityTimeout.
func (d *TurnDetector) checkTimeout() {
	d.mu.Lock()

	if d.committed || d.pendingCheck || d.transcript.Len() == 0 {
		d.mu.Unlock()
		return
	}
	if d.lastUpdate.IsZero() {
		d.mu.Unlock()
		return
	}
	if time.Since(d.lastUpdate) < d.config.NoActivityTimeout {
		d.mu.Unlock()
		return
	}

	transcript := d.transcript.String()
	if len(strings.Fields(transcript)) < d.config.MinWords {
		d.mu.Unlock()
		return
	}

	// The checker already saw this transcript and called it incomplete.
	// Force the commit now instead of re-checking.
	if len(transcript) <= d.lastCheckedLen {
		d.committed = true
		d.mu.Unlock()
		d.logger.Debug("turn timeout, force committing after incomplete check", "transcript", transcript)
		if d.onCommit != nil {
			go d.onCommit(transcript, true)
		}
		return
	}

	d.logger.Debug("turn timeout, running completion check", "transcript", transcript)

	// Release the lock during the check so AddTranscript is not blocked.
	d.pendingCheck = true
	d.mu.Unlock()

	d.runCheck(transcript, true)
}

// AddTranscript appends text to the accumulated transcript and evaluates
// punctuation triggers. Call it with each transcript delta.
func (d *TurnDetector) AddTranscript(text string) {
	if text == "" {
		return
	}

	d.mu.Lock()

	if d.committed {
		d.mu.Unlock()
		return
	}

	d.transcript.WriteString(text)
	d.lastUpdate = time.Now()
	fullText := d.transcript.String()

	if d.endsWithPunctuation(fullText) {
		if len(strings.Fields(fullText)) >= d.config.MinWords && !d.pendingCheck {
			d.logger.Debug("punctuation trigger, running completion check", "transcript", fullText)
			d.pendingCheck = true
			d.mu.Unlock()
			d.runCheck(fullText, false)
			return
		}
	}

	d.mu.Unlock()
}

func (d *TurnDetector) endsWithPunctuation(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return false
	}
	return strings.ContainsRune(d.config.PunctuationTrigger, rune(text[len(text)-1]))
}

// runCheck performs the completion check. Must be called WITHOUT the mutex
// held.
func (d *TurnDetector) runCheck(transcript string, forced bool) {
	if d.onAnalyzing != nil {
		go d.onAnalyzing(transcript)
	}

	if !d.config.SemanticCheck || d.checker == nil {
		d.mu.Lock()
		d.pendingCheck = false
		if !d.committed {
			d.committed = true
			d.mu.Unlock()
			if d.onCommit != nil {
				go d.onCommit(transcript, forced)
			}
			return
		}
		d.mu.Unlock()
		return
	}

	checkCtx, cancel := context.WithTimeout(d.ctx, 1200*time.Millisecond)
	defer cancel()

	complete, err := d.checker.CheckTurnComplete(checkCtx, transcript)
	if err != nil {
		d.logger.Debug("completion check failed, treating as complete", "error", err)
		complete = true
	}

	d.mu.Lock()
	d.pendingCheck = false
	d.lastCheckedLen = len(transcript)

	// Committed or reset while the check ran.
	if d.committed {
		d.mu.Unlock()
		return
	}

	if complete {
		d.committed = true
		d.mu.Unlock()
		d.logger.Debug("turn complete", "transcript", transcript, "forced", forced)
		if d.onCommit != nil {
			go d.onCommit(transcript, forced)
		}
		return
	}

	d.logger.Debug("turn incomplete, waiting for more input", "transcript", transcript)
	d.mu.Unlock()
}

// Reset clears the detector state for a new turn.
func (d *TurnDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.transcript.Reset()
	d.lastUpdate = time.Time{}
	d.pendingCheck = false
	d.committed = false
	d.lastCheckedLen = 0
}

// Transcript returns the accumulated transcript so far.
func (d *TurnDetector) Transcript() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transcript.String()
}

// turnCompletePrompt asks the model whether the user is done talking.
const turnCompletePrompt = `Voice transcript: "%s"

You are part of a live voice companion. Look at the transcription of what the user has said since the companion last spoke and determine if the user is done talking and the companion should respond, or if the user is still talking and the companion should wait.

YES = The user is done talking
NO = The user is not done talking

Reply only: YES or NO`

// LLMTurnChecker implements TurnChecker over an LLM provider.
type LLMTurnChecker struct {
	provider llm.Provider
}

// NewLLMTurnChecker creates a completion checker backed by an LLM provider.
func NewLLMTurnChecker(provider llm.Provider) *LLMTurnChecker {
	return &LLMTurnChecker{provider: provider}
}

// CheckTurnComplete implements TurnChecker.
func (c *LLMTurnChecker) CheckTurnComplete(ctx context.Context, transcript string) (bool, error) {
	reply, err := c.provider.Complete(ctx, fmt.Sprintf(turnCompletePrompt, transcript))
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToUpper(strings.TrimSpace(reply)), "YES"), nil
}
