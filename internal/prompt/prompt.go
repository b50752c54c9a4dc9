// Package prompt defines the interactive prompt boundary and its terminal implementation.
//
// Every prompt resolves to an Answer: either Answered with a value or
// Cancelled when the user backs out (Esc). Cancellation is never an error.
// An error is returned only when the interactive session itself is lost,
// and it always wraps ErrInputClosed.
package prompt

import (
	"errors"
	"fmt"
	"time"
)

// ErrInputClosed indicates the interactive session can no longer be read
// (input stream closed or interrupted). It is not recoverable.
var ErrInputClosed = errors.New("interactive input closed")

// Prompter renders prompts and returns the user's answer.
type Prompter interface {
	// Select presents options and returns the chosen index.
	Select(label string, options []string) (Answer[int], error)

	// Confirm asks a yes/no question.
	Confirm(label string) (Answer[bool], error)

	// Text asks for a line of input. validate may be nil; when non-nil the
	// prompt does not return until validate accepts the input.
	Text(label, placeholder string, validate func(string) error) (Answer[string], error)

	// Date asks for a calendar date. When r is non-nil, dates outside r are
	// rejected and re-prompted; they are never returned.
	Date(label string, r *DateRange) (Answer[time.Time], error)
}

// Answer is the result of one prompt.
type Answer[T any] struct {
	value    T
	answered bool
}

// Answered wraps a value supplied by the user.
func Answered[T any](v T) Answer[T] {
	return Answer[T]{value: v, answered: true}
}

// Cancelled returns the answer of a prompt the user backed out of.
func Cancelled[T any]() Answer[T] {
	return Answer[T]{}
}

// Get returns the value and true, or the zero value and false if cancelled.
func (a Answer[T]) Get() (T, bool) {
	return a.value, a.answered
}

// IsCancelled reports whether the user backed out.
func (a Answer[T]) IsCancelled() bool {
	return !a.answered
}

// DateLayout is the input and display format for dates.
const DateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Min time.Time
	Max time.Time
}

// NewDateRange builds a range over the calendar dates of min and max.
// Returns an error if min falls after max.
func NewDateRange(min, max time.Time) (DateRange, error) {
	r := DateRange{Min: Day(min), Max: Day(max)}
	if r.Min.After(r.Max) {
		return DateRange{}, fmt.Errorf("invalid date range: %s is after %s",
			r.Min.Format(DateLayout), r.Max.Format(DateLayout))
	}
	return r, nil
}

// Contains reports whether the calendar date of d lies within the range.
func (r DateRange) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(r.Min) && !d.After(r.Max)
}

// Clamp returns the calendar date of d moved into the range.
func (r DateRange) Clamp(d time.Time) time.Time {
	d = Day(d)
	if d.Before(r.Min) {
		return r.Min
	}
	if d.After(r.Max) {
		return r.Max
	}
	return d
}

func (r DateRange) String() string {
	return r.Min.Format(DateLayout) + " to " + r.Max.Format(DateLayout)
}

// Day returns midnight UTC of the calendar date of t in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}
