package service

import (
	"errors"
	"fmt"
)

var (
	ErrSubmissionInFlight     = errors.New("submission already in flight")
	ErrUnknownVisit           = errors.New("unknown or expired visit")
	ErrWrongFlowKind          = errors.New("operation not supported by this flow")
	ErrSubscriptionIDRequired = errors.New("subscription id is required")
)

type FailureKind string

const (
	FailureTransport FailureKind = "transport"
	FailureStatus    FailureKind = "status"
	FailureRedirect  FailureKind = "redirect"
)

// SubmissionError is returned by Submit for every failed attempt. Status
// is set only for FailureStatus.
type SubmissionError struct {
	Kind   FailureKind
	Route  string
	Status int
	Err    error
}

func (e *SubmissionError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("submit %s: %s %d: %v", e.Route, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("submit %s: %s: %v", e.Route, e.Kind, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
