package usecase

import (
	"go.uber.org/zap"

	"github.com/himanshu0072451/homelink/domain/entities"
	"github.com/himanshu0072451/homelink/domain/repositories"
)

// Sender is the slice of the connection manager the dispatcher needs.
type Sender interface {
	// Send transmits a command over a live channel or fails immediately.
	Send(cmd entities.Command) error
	// RecordError and ClearError maintain the connection error text shown
	// by the display layer.
	RecordError(msg string)
	ClearError()
}

// CommandDispatcher is the public entry point for user-initiated power
// commands. It owns the connectivity precondition: a command issued with
// no live channel is dropped and surfaced to the user, never queued.
type CommandDispatcher struct {
	conn     Sender
	notifier repositories.Notifier
	logger   *zap.Logger
}

// NewCommandDispatcher creates a dispatcher bound to one connection.
func NewCommandDispatcher(conn Sender, notifier repositories.Notifier, logger *zap.Logger) *CommandDispatcher {
	return &CommandDispatcher{
		conn:     conn,
		notifier: notifier,
		logger:   logger,
	}
}

// TurnOn requests the appliance to power on.
func (d *CommandDispatcher) TurnOn() {
	d.Dispatch(entities.CommandOn)
}

// TurnOff requests the appliance to power off.
func (d *CommandDispatcher) TurnOff() {
	d.Dispatch(entities.CommandOff)
}

// Dispatch sends the command if a live channel exists.
func (d *CommandDispatcher) Dispatch(cmd entities.Command) {
	if err := d.conn.Send(cmd); err != nil {
		d.logger.Warn("Command dropped",
			zap.String("command", string(cmd)),
			zap.Error(err))
		d.conn.RecordError("Not connected to device")
		d.notifier.Display("Not connected to device", entities.SeverityError)
		return
	}

	d.conn.ClearError()
	d.notifier.Display("Command sent: "+string(cmd), entities.SeveritySuccess)
}
