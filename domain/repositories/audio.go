package repositories

import "context"

// AudioSource captures spoken audio from some input device.
type AudioSource interface {
	Name() string
	Start(ctx context.Context) error
	Stop() error
	// NextUtterance blocks until one utterance has been captured and
	// returns it as raw little-endian 16-bit PCM.
	NextUtterance(ctx context.Context) ([]byte, error)
}
