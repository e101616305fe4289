package fsm

import (
	"errors"
	"fmt"
)

// ErrMissingTransition is returned when a run reaches a (state, symbol) pair
// that has no entry in the transition table.
var ErrMissingTransition = errors.New("missing transition")

// ErrEmptyInput is returned when a run is given no input symbols to cycle.
var ErrEmptyInput = errors.New("input sequence is empty")

// ErrNegativeSteps is returned by Trace when asked for fewer than zero steps.
var ErrNegativeSteps = errors.New("step count is negative")

// TransitionError names the (state, symbol) pair that had no transition.
type TransitionError struct {
	From  string
	Input string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: state %q on input %q", ErrMissingTransition, e.From, e.Input)
}

func (e *TransitionError) Unwrap() error {
	return ErrMissingTransition
}
