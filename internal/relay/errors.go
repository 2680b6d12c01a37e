package relay

import "fmt"

// MalformedEventError reports an event rejected by strict validation.
// With strict validation disabled (the default) missing fields are
// defaulted and this error is never returned.
type MalformedEventError struct {
	Reason string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed event: %s", e.Reason)
}

// PersistenceError reports a failed store write. When it is returned the
// notification was not submitted.
type PersistenceError struct {
	ImageTag string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist record for tag %q: %v", e.ImageTag, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotificationError reports a failed publish after a successful store
// write. The record remains persisted; there is no rollback.
type NotificationError struct {
	ImageTag string
	Err      error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("publish notification for tag %q: %v", e.ImageTag, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }
