package usecase

import (
	"sync"

	"github.com/himanshu0072451/homelink/domain/entities"
	"github.com/himanshu0072451/homelink/domain/repositories"
)

// DedupGate wraps a Notifier and suppresses any message identical to the
// immediately preceding one. The comparison is an exact string match on
// the message alone: two severities with the same text count as one, and
// the single slot is shared across every notification source.
type DedupGate struct {
	next repositories.Notifier

	mu   sync.Mutex
	last string
}

// NewDedupGate wraps next with consecutive-duplicate suppression.
func NewDedupGate(next repositories.Notifier) *DedupGate {
	return &DedupGate{next: next}
}

// Display forwards the message unless it repeats the previous one.
func (g *DedupGate) Display(message string, severity entities.Severity) {
	g.mu.Lock()
	if message == g.last {
		g.mu.Unlock()
		return
	}
	g.last = message
	g.mu.Unlock()

	g.next.Display(message, severity)
}
