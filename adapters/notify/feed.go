package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/himanshu0072451/homelink/domain/entities"
)

// Feed retains the most recent notifications for the control API to serve
// as toasts. Oldest entries fall off once capacity is reached.
type Feed struct {
	capacity int

	mu      sync.Mutex
	entries []entities.Notification
}

// NewFeed creates a feed keeping at most capacity entries.
func NewFeed(capacity int) *Feed {
	return &Feed{capacity: capacity}
}

// Display appends one entry to the feed.
func (f *Feed) Display(message string, severity entities.Severity) {
	n := entities.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, n)
	if len(f.entries) > f.capacity {
		f.entries = f.entries[len(f.entries)-f.capacity:]
	}
}

// Recent returns the retained notifications, oldest first.
func (f *Feed) Recent() []entities.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.Notification, len(f.entries))
	copy(out, f.entries)
	return out
}
