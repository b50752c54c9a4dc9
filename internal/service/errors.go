package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a remote failure by how callers may recover.
type ErrorKind int

const (
	// RemoteFailure is any failure other than a missing resource. Not recoverable.
	RemoteFailure ErrorKind = iota

	// NotFound means the addressed resource does not exist.
	NotFound
)

// Error is a classified remote error.
type Error struct {
	Kind ErrorKind

	// Status is the HTTP status code, 0 if the request never completed.
	Status int

	// Code, Message and MoreInfo mirror the Twilio error body when present.
	Code     int
	Message  string
	MoreInfo string

	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Code != 0:
		return fmt.Sprintf("twilio error %d (status %d): %s", e.Code, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("twilio error (status %d): %s", e.Status, e.Message)
	case e.Err != nil:
		return e.Err.Error()
	}
	return fmt.Sprintf("twilio error (status %d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a classified NotFound error.
func IsNotFound(err error) bool {
	var serr *Error
	return errors.As(err, &serr) && serr.Kind == NotFound
}
