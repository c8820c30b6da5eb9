package common

import "errors"

var (
	// Lookup errors for in-memory feature state.
	ErrorNotFound = errors.New("not found")

	// Input rejected before any state change.
	ErrorValidation = errors.New("validation error")
)
