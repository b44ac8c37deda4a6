package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSteps indicates a negative step count.
	ErrInvalidSteps = errors.New("sim: step count must be non-negative")

	// ErrInvalidState indicates a position or velocity became NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrCanceled indicates the run was interrupted by its context.
	ErrCanceled = errors.New("sim: run canceled by context")
)

// SimulationError wraps an error with the step at which it occurred.
type SimulationError struct {
	Step    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
