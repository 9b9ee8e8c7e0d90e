//go:build !portaudio
// +build !portaudio

package audio

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/himanshu0072451/homelink/domain/repositories"
)

// ErrNoMicrophone is returned by builds without the portaudio tag, so the
// voice capability fails fast instead of pretending to listen.
var ErrNoMicrophone = errors.New("built without microphone support (portaudio tag)")

// MicrophoneSource is the no-audio stand-in compiled without the portaudio
// tag.
type MicrophoneSource struct {
	logger *zap.Logger
}

// NewMicrophoneSource creates the stub source.
func NewMicrophoneSource(sampleRate int, logger *zap.Logger) *MicrophoneSource {
	return &MicrophoneSource{logger: logger}
}

func (m *MicrophoneSource) Name() string { return "none" }

// Start always fails so callers disable voice control.
func (m *MicrophoneSource) Start(_ context.Context) error {
	m.logger.Warn("Microphone unavailable in this build")
	return ErrNoMicrophone
}

func (m *MicrophoneSource) Stop() error { return nil }

// NextUtterance never succeeds on the stub.
func (m *MicrophoneSource) NextUtterance(_ context.Context) ([]byte, error) {
	return nil, ErrNoMicrophone
}

var _ repositories.AudioSource = (*MicrophoneSource)(nil)
