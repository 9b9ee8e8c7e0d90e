package notify

import (
	"github.com/himanshu0072451/homelink/domain/entities"
	"github.com/himanshu0072451/homelink/domain/repositories"
)

// Fanout forwards each notification to every wrapped notifier.
type Fanout []repositories.Notifier

// Display hands the message to each notifier in order.
func (f Fanout) Display(message string, severity entities.Severity) {
	for _, n := range f {
		n.Display(message, severity)
	}
}
