package stt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/himanshu0072451/homelink/domain/repositories"
)

// ErrNoAudioSource is returned when the recognizer has no way to capture
// audio, so voice control is unavailable for this process.
var ErrNoAudioSource = errors.New("no audio source available")

// GoogleRecognizer captures one utterance from a local audio source and
// transcribes it with Google Cloud Speech-to-Text.
type GoogleRecognizer struct {
	source repositories.AudioSource
	logger *zap.Logger
}

// NewGoogleRecognizer creates a recognizer over the given source. A nil
// source makes every StartSession fail fast.
func NewGoogleRecognizer(source repositories.AudioSource, logger *zap.Logger) *GoogleRecognizer {
	return &GoogleRecognizer{
		source: source,
		logger: logger,
	}
}

// StartSession runs one capture-and-transcribe cycle asynchronously.
func (g *GoogleRecognizer) StartSession(ctx context.Context, config repositories.AudioConfig, events repositories.RecognitionEvents) error {
	if g.source == nil {
		return ErrNoAudioSource
	}

	go g.run(ctx, config, events)
	return nil
}

func (g *GoogleRecognizer) run(ctx context.Context, config repositories.AudioConfig, events repositories.RecognitionEvents) {
	defer events.End()
	events.Start()

	audioData, err := g.source.NextUtterance(ctx)
	if err != nil {
		events.Fail(fmt.Errorf("capturing audio: %w", err))
		return
	}

	g.logger.Info("Captured utterance",
		zap.String("source", g.source.Name()),
		zap.Int("bytes", len(audioData)))

	client, err := speech.NewClient(ctx)
	if err != nil {
		events.Fail(fmt.Errorf("failed to create speech client: %w", err))
		return
	}
	defer client.Close()

	encoding, err := getAudioEncoding(config.Encoding)
	if err != nil {
		events.Fail(err)
		return
	}

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        encoding,
			SampleRateHertz: int32(config.SampleRate),
			LanguageCode:    config.Language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		events.Fail(fmt.Errorf("recognize request failed: %w", err))
		return
	}

	var transcript string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcript += result.Alternatives[0].Transcript
		}
	}
	if transcript == "" {
		events.Fail(errors.New("no speech detected in audio"))
		return
	}

	g.logger.Info("Transcription completed", zap.String("transcript", transcript))

	// Transcripts are delivered lowercased, matching the capability
	// contract the intent parser relies on.
	events.Result(strings.ToLower(transcript))
}

// getAudioEncoding converts string encoding to Google Speech API enum
func getAudioEncoding(encoding string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	switch encoding {
	case "WAV", "LINEAR16":
		return speechpb.RecognitionConfig_LINEAR16, nil
	case "FLAC":
		return speechpb.RecognitionConfig_FLAC, nil
	case "MULAW":
		return speechpb.RecognitionConfig_MULAW, nil
	case "OGG_OPUS":
		return speechpb.RecognitionConfig_OGG_OPUS, nil
	case "WEBM_OPUS":
		return speechpb.RecognitionConfig_WEBM_OPUS, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}
