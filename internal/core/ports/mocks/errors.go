package mocks

import "errors"

var (
	// ErrInjected is returned by mocks configured to fail.
	ErrInjected = errors.New("injected failure")
)
