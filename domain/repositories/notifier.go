package repositories

import "github.com/himanshu0072451/homelink/domain/entities"

// Notifier displays a short-lived user-facing message. Fire and forget;
// implementations suppress nothing themselves.
type Notifier interface {
	Display(message string, severity entities.Severity)
}
