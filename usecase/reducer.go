package usecase

import (
	"sync"

	"go.uber.org/zap"

	"github.com/himanshu0072451/homelink/domain/entities"
	"github.com/himanshu0072451/homelink/domain/repositories"
)

// StateReducer is the single source of truth for the appliance's reported
// power state. It notifies only on a real transition, so heartbeats that
// re-announce the current state stay silent.
type StateReducer struct {
	notifier repositories.Notifier
	logger   *zap.Logger

	mu    sync.Mutex
	state entities.PowerState
}

// NewStateReducer creates a reducer starting at PowerUnknown.
func NewStateReducer(notifier repositories.Notifier, logger *zap.Logger) *StateReducer {
	return &StateReducer{
		notifier: notifier,
		logger:   logger,
		state:    entities.PowerUnknown,
	}
}

// Apply folds one inbound envelope into the current state.
func (r *StateReducer) Apply(env entities.Envelope) {
	if env.Command == "" {
		return
	}

	next := entities.PowerState(env.Command)

	r.mu.Lock()
	if next == r.state {
		r.mu.Unlock()
		return
	}
	r.state = next
	r.mu.Unlock()

	r.logger.Info("Appliance state changed", zap.String("state", string(next)))
	r.notifier.Display("Device is now "+string(next), entities.SeverityInfo)
}

// State returns the last reported power state.
func (r *StateReducer) State() entities.PowerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}
