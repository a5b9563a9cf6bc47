package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/chat"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/voice/stt"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/voice/tts"
)

// Client-to-server control messages. Binary frames carry audio.
const (
	clientMsgFlush = "flush"
	clientMsgEnd   = "end"
)

// Server-to-client event types. Reply audio follows each "reply" event as
// one binary frame per segment.
const (
	eventReady      = "ready"
	eventTranscript = "transcript"
	eventAnalyzing  = "analyzing"
	eventReply      = "reply"
	eventError      = "error"
)

type clientMessage struct {
	Type   string `json:"type"`
	Format string `json:"format,omitempty"`
}

type serverEvent struct {
	Type      string   `json:"type"`
	SessionID string   `json:"session_id,omitempty"`
	Text      string   `json:"text,omitempty"`
	Final     bool     `json:"final,omitempty"`
	Segments  []string `json:"segments,omitempty"`
	Message   string   `json:"message,omitempty"`
}

type session struct {
	agent    *Agent
	call     *Call
	conn     *websocket.Conn
	detector *TurnDetector
	ctx      context.Context // canceled when the connection closes

	writeMu sync.Mutex

	audioMu     sync.Mutex
	audioBuf    bytes.Buffer
	audioFormat string
}

// ServeSession runs the live call loop on an upgraded WebSocket connection
// until the client ends the call or the connection drops.
func (a *Agent) ServeSession(ctx context.Context, conn *websocket.Conn, call *Call) error {
	s := &session{
		agent:       a,
		call:        call,
		conn:        conn,
		audioFormat: "wav",
	}
	s.detector = NewTurnDetector(a.turn, NewLLMTurnChecker(a.llm), a.logger)
	s.detector.SetCallbacks(s.onAnalyzing, s.onCommit)

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.ctx = sessionCtx

	s.detector.Start(sessionCtx)
	defer s.detector.Stop()

	if err := s.sendEvent(serverEvent{Type: eventReady, SessionID: call.ID}); err != nil {
		return err
	}
	s.respond(sessionCtx, greetingInstruction)

	return s.readLoop(sessionCtx)
}

func (s *session) readLoop(ctx context.Context) error {
	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		switch msgType {
		case websocket.BinaryMessage:
			s.audioMu.Lock()
			s.audioBuf.Write(data)
			s.audioMu.Unlock()

		case websocket.TextMessage:
			var msg clientMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				s.sendError("malformed control message")
				continue
			}
			switch msg.Type {
			case clientMsgFlush:
				if msg.Format != "" {
					s.audioMu.Lock()
					s.audioFormat = msg.Format
					s.audioMu.Unlock()
				}
				s.flushAudio(ctx)
			case clientMsgEnd:
				return nil
			default:
				s.sendError("unknown control message type")
			}
		}
	}
}

// flushAudio transcribes buffered audio and feeds the text to the turn
// detector.
func (s *session) flushAudio(ctx context.Context) {
	s.audioMu.Lock()
	if s.audioBuf.Len() == 0 {
		s.audioMu.Unlock()
		return
	}
	audio := make([]byte, s.audioBuf.Len())
	copy(audio, s.audioBuf.Bytes())
	s.audioBuf.Reset()
	format := s.audioFormat
	s.audioMu.Unlock()

	transcript, err := s.agent.stt.Transcribe(ctx, bytes.NewReader(audio), stt.TranscribeOptions{
		Format:   format,
		Language: "multi",
	})
	if err != nil {
		s.agent.logger.Warn("transcription failed",
			"session_id", s.call.ID, "provider", s.agent.stt.Name(), "error", err)
		s.sendError("transcription failed")
		return
	}
	text := strings.TrimSpace(transcript.Text)
	if text == "" {
		return
	}

	_ = s.sendEvent(serverEvent{Type: eventTranscript, Text: text})
	s.detector.AddTranscript(text + " ")
}

func (s *session) onAnalyzing(transcript string) {
	_ = s.sendEvent(serverEvent{Type: eventAnalyzing, Text: transcript})
}

// onCommit fires when the detector decides the user turn is over.
func (s *session) onCommit(transcript string, forced bool) {
	_ = s.sendEvent(serverEvent{Type: eventTranscript, Text: strings.TrimSpace(transcript), Final: true})
	s.respond(s.ctx, strings.TrimSpace(transcript))
	s.detector.Reset()
}

// respond generates the companion reply for the user text and streams one
// audio frame per reply segment back to the client.
func (s *session) respond(ctx context.Context, userText string) {
	prompt := chat.PersonaPrompt(s.call.CompanionName, s.call.Personality, userText)
	reply, err := s.agent.llm.Complete(ctx, prompt)
	if err != nil {
		s.agent.logger.Warn("reply generation failed",
			"session_id", s.call.ID, "provider", s.agent.llm.Name(), "error", err)
		s.sendError("reply generation failed")
		return
	}

	segments := strings.Split(reply, chat.Delimiter)
	if err := s.sendEvent(serverEvent{Type: eventReply, Text: reply, Segments: segments}); err != nil {
		return
	}

	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		synthesis, err := s.agent.tts.Synthesize(ctx, segment, tts.SynthesizeOptions{
			Voice:  s.call.Voice,
			Format: "mp3",
		})
		if err != nil {
			s.agent.logger.Warn("synthesis failed",
				"session_id", s.call.ID, "provider", s.agent.tts.Name(), "error", err)
			s.sendError("synthesis failed")
			return
		}
		if err := s.sendBinary(synthesis.Audio); err != nil {
			return
		}
	}
}

func (s *session) sendEvent(event serverEvent) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(event)
}

func (s *session) sendBinary(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (s *session) sendError(message string) {
	_ = s.sendEvent(serverEvent{Type: eventError, Message: message})
}
