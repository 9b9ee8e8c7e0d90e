package usecase

import (
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/himanshu0072451/homelink/domain/entities"
)

// recordingNotifier captures every displayed notification.
type recordingNotifier struct {
	mu         sync.Mutex
	messages   []string
	severities []entities.Severity
}

func (n *recordingNotifier) Display(message string, severity entities.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	n.severities = append(n.severities, severity)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func (n *recordingNotifier) last() (string, entities.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return "", ""
	}
	return n.messages[len(n.messages)-1], n.severities[len(n.severities)-1]
}

func TestStateReducer_InitialState(t *testing.T) {
	r := NewStateReducer(&recordingNotifier{}, zap.NewNop())

	if got := r.State(); got != entities.PowerUnknown {
		t.Errorf("State() = %q, want UNKNOWN", got)
	}
}

func TestStateReducer_TransitionNotifiesOnce(t *testing.T) {
	notifier := &recordingNotifier{}
	r := NewStateReducer(notifier, zap.NewNop())

	r.Apply(entities.Envelope{Command: "ON"})

	if got := r.State(); got != entities.PowerOn {
		t.Errorf("State() = %q, want ON", got)
	}
	if notifier.count() != 1 {
		t.Fatalf("got %d notifications, want 1", notifier.count())
	}
	msg, sev := notifier.last()
	if msg != "Device is now ON" || sev != entities.SeverityInfo {
		t.Errorf("notification = %q/%q, want state change info", msg, sev)
	}

	// Re-announcing the same state stays silent.
	r.Apply(entities.Envelope{Command: "ON"})
	if notifier.count() != 1 {
		t.Errorf("duplicate state produced %d notifications, want 1", notifier.count())
	}
	if got := r.State(); got != entities.PowerOn {
		t.Errorf("State() changed to %q on duplicate", got)
	}
}

func TestStateReducer_EmptyCommandIgnored(t *testing.T) {
	notifier := &recordingNotifier{}
	r := NewStateReducer(notifier, zap.NewNop())

	r.Apply(entities.Envelope{})

	if notifier.count() != 0 {
		t.Errorf("empty envelope produced %d notifications", notifier.count())
	}
	if got := r.State(); got != entities.PowerUnknown {
		t.Errorf("State() = %q, want UNKNOWN", got)
	}
}

func TestStateReducer_EachTransitionNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	r := NewStateReducer(notifier, zap.NewNop())

	r.Apply(entities.Envelope{Command: "ON"})
	r.Apply(entities.Envelope{Command: "OFF"})
	r.Apply(entities.Envelope{Command: "ON"})

	if notifier.count() != 3 {
		t.Errorf("got %d notifications, want 3", notifier.count())
	}
}
