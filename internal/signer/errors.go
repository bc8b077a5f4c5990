package signer

import "errors"

var (
	// ErrUnsafeArgument is returned before any process is spawned when the
	// key reference or plan path contains a shell metacharacter.
	ErrUnsafeArgument = errors.New("invalid characters in signer argument")

	// ErrSignerUnavailable is returned when every candidate failed to launch
	// or exited unsuccessfully.
	ErrSignerUnavailable = errors.New("signer unavailable")
)
