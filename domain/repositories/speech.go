package repositories

import "context"

// AudioConfig represents audio configuration for speech recognition
type AudioConfig struct {
	SampleRate int    `json:"sample_rate"`
	Encoding   string `json:"encoding"`
	Language   string `json:"language"`
}

// RecognitionEvents carries the callbacks for one recognition session.
// Any callback may be nil.
type RecognitionEvents struct {
	OnStart  func()
	OnResult func(transcript string)
	OnError  func(err error)
	OnEnd    func()
}

// Start invokes OnStart when set.
func (e RecognitionEvents) Start() {
	if e.OnStart != nil {
		e.OnStart()
	}
}

// Result invokes OnResult when set.
func (e RecognitionEvents) Result(transcript string) {
	if e.OnResult != nil {
		e.OnResult(transcript)
	}
}

// Fail invokes OnError when set.
func (e RecognitionEvents) Fail(err error) {
	if e.OnError != nil {
		e.OnError(err)
	}
}

// End invokes OnEnd when set.
func (e RecognitionEvents) End() {
	if e.OnEnd != nil {
		e.OnEnd()
	}
}

// SpeechRecognizer abstracts speech recognition services. StartSession runs
// at most one recognition session, reporting progress through events. When
// the capability is unavailable it must fail synchronously so the caller
// can surface "unsupported" to the user before any session state exists.
type SpeechRecognizer interface {
	StartSession(ctx context.Context, config AudioConfig, events RecognitionEvents) error
}
