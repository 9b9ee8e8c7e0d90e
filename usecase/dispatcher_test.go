package usecase

import (
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/himanshu0072451/homelink/domain/entities"
	"github.com/himanshu0072451/homelink/internal/connection"
)

// fakeConn stands in for the connection manager.
type fakeConn struct {
	err error

	mu       sync.Mutex
	sent     []entities.Command
	recorded []string
	cleared  int
}

func (f *fakeConn) Send(cmd entities.Command) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, cmd)
	return nil
}

func (f *fakeConn) RecordError(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, msg)
}

func (f *fakeConn) ClearError() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++
}

func (f *fakeConn) sentCommands() []entities.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.Command, len(f.sent))
	copy(out, f.sent)
	return out
}

func TestCommandDispatcher_DropsWhileDisconnected(t *testing.T) {
	conn := &fakeConn{err: connection.ErrNotConnected}
	notifier := &recordingNotifier{}
	d := NewCommandDispatcher(conn, notifier, zap.NewNop())

	d.Dispatch(entities.CommandOn)

	if len(conn.sentCommands()) != 0 {
		t.Error("command was sent despite no connection")
	}
	msg, sev := notifier.last()
	if msg != "Not connected to device" || sev != entities.SeverityError {
		t.Errorf("notification = %q/%q, want not-connected error", msg, sev)
	}
	if len(conn.recorded) != 1 {
		t.Errorf("recorded %d errors, want 1", len(conn.recorded))
	}
}

func TestCommandDispatcher_SendsWhileConnected(t *testing.T) {
	conn := &fakeConn{}
	notifier := &recordingNotifier{}
	d := NewCommandDispatcher(conn, notifier, zap.NewNop())

	d.Dispatch(entities.CommandOn)

	sent := conn.sentCommands()
	if len(sent) != 1 || sent[0] != entities.CommandOn {
		t.Fatalf("sent = %v, want [ON]", sent)
	}
	msg, sev := notifier.last()
	if msg != "Command sent: ON" || sev != entities.SeveritySuccess {
		t.Errorf("notification = %q/%q, want success", msg, sev)
	}
	if conn.cleared != 1 {
		t.Errorf("ClearError called %d times, want 1", conn.cleared)
	}
}

func TestCommandDispatcher_TurnOnTurnOff(t *testing.T) {
	conn := &fakeConn{}
	d := NewCommandDispatcher(conn, &recordingNotifier{}, zap.NewNop())

	d.TurnOn()
	d.TurnOff()

	sent := conn.sentCommands()
	if len(sent) != 2 || sent[0] != entities.CommandOn || sent[1] != entities.CommandOff {
		t.Errorf("sent = %v, want [ON OFF]", sent)
	}
}
