//go:build portaudio
// +build portaudio

package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"github.com/gordonklaus/portaudio"
	"go.uber.org/zap"

	"github.com/himanshu0072451/homelink/domain/repositories"
)

const framesPerBuffer = 1024

// MicrophoneSource captures utterances from the default input device. An
// utterance ends after roughly a second of silence or ten seconds of audio.
type MicrophoneSource struct {
	sampleRate int
	logger     *zap.Logger
	stream     *portaudio.Stream
	buffer     []int16
}

// NewMicrophoneSource creates a source reading at the given sample rate.
func NewMicrophoneSource(sampleRate int, logger *zap.Logger) *MicrophoneSource {
	return &MicrophoneSource{
		sampleRate: sampleRate,
		logger:     logger,
		buffer:     make([]int16, framesPerBuffer),
	}
}

func (m *MicrophoneSource) Name() string { return "microphone" }

// Start opens the default capture stream.
func (m *MicrophoneSource) Start(_ context.Context) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), framesPerBuffer, m.buffer)
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}
	m.stream = stream

	if err := m.stream.Start(); err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}

	m.logger.Info("Microphone started", zap.Int("sampleRate", m.sampleRate))
	return nil
}

// Stop closes the capture stream.
func (m *MicrophoneSource) Stop() error {
	if m.stream != nil {
		m.stream.Stop()
		m.stream.Close()
	}
	portaudio.Terminate()
	return nil
}

// NextUtterance reads until silence bounds an utterance and returns it as
// raw little-endian 16-bit PCM.
func (m *MicrophoneSource) NextUtterance(ctx context.Context) ([]byte, error) {
	const silenceThreshold = 500

	samples := make([]int16, 0, m.sampleRate*5)
	silentFrames := 0
	maxSilentFrames := m.sampleRate

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := m.stream.Read(); err != nil {
			return nil, fmt.Errorf("reading from stream: %w", err)
		}
		samples = append(samples, m.buffer...)

		silent := true
		for _, sample := range m.buffer {
			if sample > silenceThreshold || sample < -silenceThreshold {
				silent = false
				break
			}
		}
		if silent {
			silentFrames += len(m.buffer)
		} else {
			silentFrames = 0
		}

		if silentFrames > maxSilentFrames && len(samples) > m.sampleRate {
			break
		}
		if len(samples) > m.sampleRate*10 {
			break
		}
	}

	return samplesToPCM(samples), nil
}

func samplesToPCM(samples []int16) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

var _ repositories.AudioSource = (*MicrophoneSource)(nil)
