package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/himanshu0072451/homelink/domain/entities"
	"github.com/himanshu0072451/homelink/domain/repositories"
)

// ErrSessionActive is returned when a recognition session is already
// running. Sessions are single-flight.
var ErrSessionActive = errors.New("a voice session is already active")

// Intent is the outcome of parsing one voice transcript.
type Intent struct {
	Command    entities.Command
	Recognized bool
	Transcript string
}

// ParseIntent maps a transcript to a power command by case-insensitive
// substring match. Anything else comes back unrecognized with the verbatim
// transcript so the caller can show it to the user.
func ParseIntent(transcript string) Intent {
	lowered := strings.ToLower(transcript)
	switch {
	case strings.Contains(lowered, "turn on"):
		return Intent{Command: entities.CommandOn, Recognized: true, Transcript: transcript}
	case strings.Contains(lowered, "turn off"):
		return Intent{Command: entities.CommandOff, Recognized: true, Transcript: transcript}
	default:
		return Intent{Transcript: transcript}
	}
}

// VoiceService runs one recognition session at a time and routes
// recognized intents to the command dispatcher.
type VoiceService struct {
	recognizer repositories.SpeechRecognizer
	dispatcher *CommandDispatcher
	notifier   repositories.Notifier
	config     repositories.AudioConfig
	logger     *zap.Logger

	mu         sync.Mutex
	listening  bool
	transcript string
}

// NewVoiceService creates a voice service over the given recognizer.
func NewVoiceService(
	recognizer repositories.SpeechRecognizer,
	dispatcher *CommandDispatcher,
	notifier repositories.Notifier,
	config repositories.AudioConfig,
	logger *zap.Logger,
) *VoiceService {
	return &VoiceService{
		recognizer: recognizer,
		dispatcher: dispatcher,
		notifier:   notifier,
		config:     config,
		logger:     logger,
	}
}

// StartSession begins one recognition session. Overlapping sessions are
// rejected with ErrSessionActive. A recognizer that cannot run at all
// fails synchronously and the user is told the feature is unavailable.
func (s *VoiceService) StartSession(ctx context.Context) error {
	s.mu.Lock()
	if s.listening {
		s.mu.Unlock()
		return ErrSessionActive
	}
	s.listening = true
	s.mu.Unlock()

	events := repositories.RecognitionEvents{
		OnStart: func() {
			s.logger.Info("Voice session started")
		},
		OnResult: s.handleTranscript,
		OnError: func(err error) {
			s.logger.Warn("Voice recognition failed", zap.Error(err))
			s.notifier.Display("Voice recognition error", entities.SeverityError)
		},
		OnEnd: func() {
			s.mu.Lock()
			s.listening = false
			s.mu.Unlock()
		},
	}

	if err := s.recognizer.StartSession(ctx, s.config, events); err != nil {
		s.mu.Lock()
		s.listening = false
		s.mu.Unlock()
		s.logger.Warn("Voice capability unavailable", zap.Error(err))
		s.notifier.Display("Voice commands are not supported here", entities.SeverityError)
		return err
	}
	return nil
}

func (s *VoiceService) handleTranscript(transcript string) {
	s.mu.Lock()
	s.transcript = transcript
	s.mu.Unlock()

	intent := ParseIntent(transcript)
	if !intent.Recognized {
		s.logger.Info("Unrecognized voice command", zap.String("transcript", transcript))
		s.notifier.Display("Unrecognized command: \""+transcript+"\"", entities.SeverityWarning)
		return
	}

	s.dispatcher.Dispatch(intent.Command)
}

// Listening reports whether a session is active.
func (s *VoiceService) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listening
}

// Transcript returns the last transcript heard, empty before any session.
func (s *VoiceService) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript
}
