// Package fmerr defines the error kinds surfaced by this module.
//
// Every failure is classified into one of four kinds so callers can use
// errors.Is to distinguish a bad caller input from a corrupt archive. None
// of the kinds are retried internally; a failure is always returned to the
// caller, never silently swallowed.
package fmerr

import (
	"errors"
	"fmt"
)

var (
	// Precondition marks a violated precondition: empty input text, a
	// symbol outside [0,sigma), a zero sampling rate, or a scheme whose
	// p does not match a pattern length after expansion.
	Precondition = errors.New("precondition violation")

	// Unsupported marks a generator invoked outside its advertised
	// (N, minK, maxK) domain.
	Unsupported = errors.New("unsupported configuration")

	// Corrupt marks a version mismatch or truncated archive encountered
	// while loading a serialized index.
	Corrupt = errors.New("corrupt serialisation")

	// Exhausted marks a resource-exhaustion failure (allocation
	// failure) encountered while building an index.
	Exhausted = errors.New("resource exhaustion")
)

// Wrap returns an error with message msg whose Unwrap returns kind, so
// errors.Is(wrapped, kind) holds.
func Wrap(kind error, msg string) error {
	return &wrapped{kind: kind, msg: msg}
}

type wrapped struct {
	kind error
	msg  string
}

func (w *wrapped) Error() string { return w.msg + ": " + w.kind.Error() }

func (w *wrapped) Unwrap() error { return w.kind }

// Wrapf is the fmt.Errorf-flavoured variant of Wrap.
func Wrapf(kind error, format string, args ...any) error {
	return Wrap(kind, fmt.Sprintf(format, args...))
}
