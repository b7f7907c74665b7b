package calendar

import (
	"context"
	"errors"
	"fmt"
)

// ErrDone signals the end of a paged event listing.
var ErrDone = errors.New("no more pages")

// ErrorKind classifies store failures into the closed set callers branch
// on. Anything not explicitly transient or not-found is permanent.
type ErrorKind int

const (
	KindPermanent ErrorKind = iota
	KindTransient
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindNotFound:
		return "not found"
	default:
		return "permanent"
	}
}

// StoreError wraps a remote store failure with its classification.
// Status carries the remote status code when one was received.
type StoreError struct {
	Op     string
	Status int
	Kind   ErrorKind
	Err    error
}

func (e *StoreError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("calendar store %s failed (%s, status %d): %v", e.Op, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("calendar store %s failed (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a retryable store failure.
func IsTransient(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr) && storeErr.Kind == KindTransient
}

// IsNotFound reports whether err means the object no longer exists.
func IsNotFound(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr) && storeErr.Kind == KindNotFound
}

// Pager yields pages of remote events until Next returns ErrDone.
type Pager interface {
	Next(ctx context.Context) ([]RemoteEvent, error)
}

// EventStore is the remote calendar contract. Events returns a fresh,
// lazy pager for each call; pagination state lives inside the pager.
type EventStore interface {
	Events(calendarID string, window Window, tag *Tag) Pager
	Insert(ctx context.Context, calendarID string, template EventTemplate) (RemoteEvent, error)
	Delete(ctx context.Context, calendarID string, eventID string) error
}
