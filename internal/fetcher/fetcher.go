package fetcher

import (
	"context"
	"fmt"
)

// Fetcher retrieves the schedule page, honouring a validator from the previous fetch.
type Fetcher interface {
	Fetch(ctx context.Context, url string, validator Validator) (Result, error)
}

// Validator carries the cache validators returned by the last successful fetch.
// Callers treat it as opaque and hand it back on the next call.
type Validator struct {
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

// IsZero reports whether no validator is known yet.
func (v Validator) IsZero() bool {
	return v.ETag == "" && v.LastModified == ""
}

// Result is the outcome of a successful fetch.
// When Changed is false the body is nil and Validator echoes the one sent.
type Result struct {
	Changed   bool
	Body      []byte
	Validator Validator
}

// Reasons attached to FetchError.
const (
	ReasonTransport = "transport"
	ReasonStatus    = "status"
	ReasonBody      = "body"
	ReasonRequest   = "request"
)

// FetchError reports a failed fetch: transport errors, unexpected statuses, or unreadable bodies.
type FetchError struct {
	URL        string
	StatusCode int
	Reason     string
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
