package notify

import "log"

// DesktopNotifier surfaces events on the local console in place of a
// native toast. Desktop toast integration is platform glue outside this
// service's scope; the log line carries the same payload.
type DesktopNotifier struct{}

func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{}
}

func (n *DesktopNotifier) Notify(event Event) error {
	log.Printf("[notification] %s: %s", event.Title(), event.Body())
	return nil
}
