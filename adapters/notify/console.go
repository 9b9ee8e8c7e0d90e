package notify

import (
	"go.uber.org/zap"

	"github.com/himanshu0072451/homelink/domain/entities"
)

// ConsoleNotifier writes notifications to the structured log. It displays
// everything it is handed; duplicate suppression lives in the gate above.
type ConsoleNotifier struct {
	logger *zap.Logger
}

// NewConsoleNotifier creates a log-backed notifier.
func NewConsoleNotifier(logger *zap.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{logger: logger}
}

// Display logs the message at a level matching its severity.
func (n *ConsoleNotifier) Display(message string, severity entities.Severity) {
	switch severity {
	case entities.SeverityError:
		n.logger.Error(message)
	case entities.SeverityWarning:
		n.logger.Warn(message)
	default:
		n.logger.Info(message, zap.String("severity", string(severity)))
	}
}
