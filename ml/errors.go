package ml

import (
	"errors"
	"fmt"
)

var (
	// ErrUninitialized is returned when the artifact store is used before it was loaded.
	ErrUninitialized = errors.New("artifacts not loaded")
	// ErrInvalidInput marks malformed or out-of-range request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrModelNotFitted is returned by a regressor with no coefficients or nodes.
	ErrModelNotFitted = errors.New("model not fitted")
)

// PredictionError reports an internal failure while building or scoring a feature vector.
type PredictionError struct {
	Location string
	Err      error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("predict price for %q: %v", e.Location, e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}
