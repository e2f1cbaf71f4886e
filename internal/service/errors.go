package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation so the HTTP layer can map outcomes to
// status codes in exactly one place.
type Kind int

const (
	// KindMalformed covers unparsable bodies, invalid payloads, missing or
	// structurally invalid auth headers and unrecognized paths.
	KindMalformed Kind = iota + 1
	// KindUnauthenticated means the credential decoded fine but matches no
	// registered user.
	KindUnauthenticated
	// KindForbidden means the caller is not the task's owner.
	KindForbidden
	// KindNotFound means the referenced task id does not exist.
	KindNotFound
	// KindConflict means the username is already registered.
	KindConflict
	// KindInternal marks failures that are not the client's fault. They still
	// render as 400 but carry their own kind so they can be logged apart.
	KindInternal
)

// Error is a classified operation failure. The message stays server-side;
// clients only ever see the mapped status code.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the outcome kind, treating anything untyped as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
