package events

import "fmt"

// UpstreamError is returned when the event API answers with a non-2xx status.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("eventbrite api %d: %s", e.Status, e.Body)
}
