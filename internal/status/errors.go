package status

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrMalformedLine     = errors.New("malformed line")
	ErrProcessExecution  = errors.New("process execution failed")
	ErrUnknownCollector  = errors.New("unknown collector")
)

// SourceError is returned by a collector when its source could not be read.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ParseError describes one line a parser refused. Line is 1-based.
type ParseError struct {
	Source string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %s", e.Source, e.Line, ErrMalformedLine, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedLine
}

const (
	KindSourceUnavailable = "source_unavailable"
	KindMalformedLine     = "malformed_line"
	KindProcessFailure    = "process_failure"
	KindTimeout           = "timeout"
	KindCanceled          = "canceled"
	KindUnknown           = "unknown"
)

// Kind maps err to a stable identifier for per-slot error markers.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, ErrSourceUnavailable):
		return KindSourceUnavailable
	case errors.Is(err, ErrMalformedLine):
		return KindMalformedLine
	case errors.Is(err, ErrProcessExecution):
		return KindProcessFailure
	default:
		return KindUnknown
	}
}
