// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ValidationError reports bad input detected before any network call is
// made: an unsupported file type, an empty question, a submission started
// while another is pending.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NetworkError reports a transport failure where no response was obtained.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }

func (e *NetworkError) Unwrap() error { return e.Err }

// BackendError reports a non-success HTTP response from the analyzer.
type BackendError struct {
	// Status is the HTTP status code.
	Status int

	// Detail is the server-supplied reason, taken verbatim from the
	// response body's detail field when present.
	Detail string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned HTTP %d", e.Status)
}

// DeserializationError reports a persisted catalog payload that could not
// be parsed. The catalog degrades to empty; the error is logged, never
// surfaced to the user.
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("catalog payload not parseable: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }
