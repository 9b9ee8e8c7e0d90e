package stt

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/himanshu0072451/homelink/domain/repositories"
)

// MockRecognizer is a placeholder recognizer for running without Google
// credentials and for tests. Each session yields the next scripted
// transcript.
type MockRecognizer struct {
	logger *zap.Logger

	// Err, when set, makes every StartSession fail synchronously. It
	// stands in for an absent voice capability.
	Err error

	mu          sync.Mutex
	transcripts []string
}

// NewMockRecognizer creates a mock yielding the given transcripts in order.
func NewMockRecognizer(logger *zap.Logger, transcripts ...string) *MockRecognizer {
	return &MockRecognizer{
		logger:      logger,
		transcripts: transcripts,
	}
}

// StartSession delivers the next scripted transcript asynchronously.
func (m *MockRecognizer) StartSession(ctx context.Context, config repositories.AudioConfig, events repositories.RecognitionEvents) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	transcript := "turn on the device"
	if len(m.transcripts) > 0 {
		transcript = m.transcripts[0]
		m.transcripts = m.transcripts[1:]
	}
	m.mu.Unlock()

	m.logger.Info("Mock recognition session",
		zap.String("transcript", transcript),
		zap.String("language", config.Language))

	go func() {
		defer events.End()
		events.Start()
		events.Result(transcript)
	}()
	return nil
}
