package multilog

import "errors"

var (
	// ErrNilSink is returned when a nil Sink is registered.
	ErrNilSink = errors.New("multilog: nil sink")

	// ErrUnknownLevel is matched (errors.Is) by ParseLevel failures.
	ErrUnknownLevel = errors.New("multilog: unknown level")

	// ErrUnknownSinkType is returned by configuration loaders for sink types
	// they cannot construct.
	ErrUnknownSinkType = errors.New("multilog: unknown sink type")
)

type levelError struct{ input string }

func (e *levelError) Error() string { return "multilog: unknown level " + `"` + e.input + `"` }

func (e *levelError) Unwrap() error { return ErrUnknownLevel }
