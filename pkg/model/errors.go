package model

import (
	"errors"
)

// Operation errors. These are returned to the immediate caller.
var (
	// ErrValueUnavailable indicates the getter failed, timed out, or the
	// characteristic is not readable. The caller may retry.
	ErrValueUnavailable = errors.New("value unavailable")

	// ErrInvalidValue indicates a value or code outside the declared domain.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotWritable indicates a write to a characteristic without a setter.
	ErrNotWritable = errors.New("characteristic is not writable")

	// ErrNotObservable indicates a subscribe on a characteristic without a
	// subscribe/unsubscribe pair.
	ErrNotObservable = errors.New("characteristic is not observable")
)

// Construction errors. These indicate a defect in a characteristic or
// service definition or in a driver's bindings, never bad input data.
var (
	// ErrInvalidDefinition indicates an inconsistent static definition
	// (e.g., an enum maxCode that does not match its state count).
	ErrInvalidDefinition = errors.New("invalid characteristic definition")

	// ErrMissingBinding indicates a required driver function was not given.
	ErrMissingBinding = errors.New("missing binding")
)
