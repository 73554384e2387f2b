package main

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRoot is returned when the scan root is missing or not a directory.
	ErrInvalidRoot = errors.New("not a valid directory")
	// ErrOutputUnwritable is returned when the output document cannot be written.
	ErrOutputUnwritable = errors.New("output not writable")
	// ErrEncoding marks content that is not valid UTF-8.
	ErrEncoding = errors.New("invalid UTF-8")
)

// SetupError is a fatal condition that aborts the whole run.
type SetupError struct {
	Op   string
	Path string
	Kind error // ErrInvalidRoot or ErrOutputUnwritable
	Err  error
}

func (e *SetupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *SetupError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ExtractKind distinguishes decode failures from I/O failures.
type ExtractKind int

const (
	EncodingError ExtractKind = iota
	ReadError
)

func (k ExtractKind) String() string {
	if k == EncodingError {
		return "encoding error"
	}
	return "read error"
}

// ExtractError is returned by extractContent.
type ExtractError struct {
	Kind   ExtractKind
	Path   string
	Offset int64 // byte offset of the first invalid sequence, encoding errors only
	Err    error
}

func (e *ExtractError) Error() string {
	if e.Kind == EncodingError {
		return fmt.Sprintf("%s: %s at byte %d", e.Path, e.Kind, e.Offset)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

func isEncodingError(err error) bool {
	var ee *ExtractError
	return errors.As(err, &ee) && ee.Kind == EncodingError
}
