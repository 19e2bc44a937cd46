// Package notify delivers due-task events to the user. The tracker only
// knows the Notifier interface; the concrete channel (desktop popup or
// email) is picked from configuration at startup.
package notify

import (
	"fmt"
	"time"
)

type Severity string

const (
	SeverityOverdue Severity = "overdue"
	SeverityDueSoon Severity = "due-soon"
)

// Event describes one due or overdue task.
type Event struct {
	TaskID   uint64    `json:"task_id"`
	Name     string    `json:"name"`
	DueDate  time.Time `json:"due_date"`
	Severity Severity  `json:"severity"`
}

// Title renders a short headline for the event.
func (e Event) Title() string {
	if e.Severity == SeverityOverdue {
		return fmt.Sprintf("Task overdue: %s", e.Name)
	}
	return fmt.Sprintf("Task due soon: %s", e.Name)
}

// Body renders the notification message content.
func (e Event) Body() string {
	return fmt.Sprintf("%q is due at %s", e.Name, e.DueDate.Format("2006-01-02 15:04"))
}

// Notifier is the sink for tracker events. Delivery failures are reported
// but a notification counts as handled once attempted; the tracker never
// retries a delivered key.
type Notifier interface {
	Notify(event Event) error
}
