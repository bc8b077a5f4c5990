package engine

import "errors"

var (
	// ErrArgument indicates a wrong number of command-line arguments.
	ErrArgument = errors.New("invalid arguments")

	// ErrIO indicates a filesystem read or write failure.
	ErrIO = errors.New("i/o error")
)
