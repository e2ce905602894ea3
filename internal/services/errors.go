package services

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel kinds for errors returned by the services. Match them with errors.Is.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Error carries a client-facing detail message alongside its kind.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Kind }

func notFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Detail: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Detail: fmt.Sprintf(format, args...)}
}

func userNotFound(id string) error {
	return notFound("User with ID %s not found", id)
}

// now returns the current time at the precision every supported backend keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// normalize converts a caller-supplied time to the stored representation.
func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// touch returns the new updated_at for a row last modified at prev. It is
// strictly later than prev even when the clock has not advanced.
func touch(prev time.Time) time.Time {
	t := now()
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}
