package pipeline

import "errors"

var (
	// ErrInvalidToken means the "#"-prefixed shared secret did not match
	// the configured admin token. Nothing is processed after this.
	ErrInvalidToken = errors.New("invalid admin token")

	// ErrMissingKey means no usable API key could be resolved.
	ErrMissingKey = errors.New("missing API key")
)
