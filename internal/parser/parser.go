package parser

import (
	"fmt"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

// Parser turns a raw schedule page into match records in source order.
// Implementations keep no state between calls.
type Parser interface {
	Parse(body []byte) ([]matches.MatchRecord, error)
}

// Func adapts a plain function to the Parser interface.
type Func func(body []byte) ([]matches.MatchRecord, error)

// Parse calls f(body).
func (f Func) Parse(body []byte) ([]matches.MatchRecord, error) {
	return f(body)
}

// ParseError reports a document that could not be interpreted at all.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse: %s: %v", e.Reason, e.Err)
	}
	return "parse: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
