package types

import "time"

// Event types written by the store itself. Callers may log any other
// free-text type through Store.LogEvent.
const (
	EventUserCreated          = "user_created"
	EventPasswordReset        = "password_reset"
	EventCertificateCreated   = "certificate_created"
	EventCertificateCompleted = "certificate_completed"
)

// DefaultEventLimit bounds UserEvents queries when the caller passes a
// non-positive limit.
const DefaultEventLimit = 50

// Event is a snapshot of one append-only activity log entry. Events are
// immutable once written; the store exposes no update or delete for them.
type Event struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Type      string    `json:"event_type"`
	Details   string    `json:"event_details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
