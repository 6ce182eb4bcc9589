package domain

import (
	"errors"
	"fmt"
)

// ErrNoSurvey is returned when an operation requires a loaded survey.
var ErrNoSurvey = errors.New("no survey loaded")

// ErrNoResumeState is returned by resume stores when a slot is absent.
var ErrNoResumeState = errors.New("no resume state")

// ErrEmptySubmission is returned when submitting without a loaded survey
// or without any recorded response.
var ErrEmptySubmission = errors.New("nothing to submit")

// LoadReason classifies definition load failures.
type LoadReason string

const (
	LoadNotFound         LoadReason = "not_found"
	LoadMalformed        LoadReason = "malformed"
	LoadTransportFailure LoadReason = "transport_failure"
)

// LoadError reports a definition fetch or parse failure. It is fatal to
// starting a survey session.
type LoadError struct {
	Reason LoadReason
	Ref    string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Ref, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Ref, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SubmitError reports a transport or server failure while delivering the
// final submission. The engine does not retry; the caller owns retry UX.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit failed: %v", e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }
