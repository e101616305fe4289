package fsm

import (
	"fmt"
	"maps"
	"slices"
)

// Machine is a deterministic transition table over states S and input
// symbols A, paired with a fixed finality predicate.
//
// A Machine is not safe for concurrent mutation, but once fully built it
// may be queried from any number of goroutines.
type Machine[S, A comparable] struct {
	transitions map[S]map[A]S
	isFinal     func(S) bool
}

// New creates an empty machine. isFinal decides which states are recorded
// by cycle detection.
func New[S, A comparable](isFinal func(S) bool) *Machine[S, A] {
	return &Machine[S, A]{
		transitions: make(map[S]map[A]S),
		isFinal:     isFinal,
	}
}

// AddTransition registers from --input--> to. Adding the same (from, input)
// pair again replaces its target.
func (m *Machine[S, A]) AddTransition(from S, input A, to S) {
	row, ok := m.transitions[from]
	if !ok {
		row = make(map[A]S)
		m.transitions[from] = row
	}
	row[input] = to
}

// Next returns the successor of from on input.
func (m *Machine[S, A]) Next(from S, input A) (S, error) {
	to, ok := m.transitions[from][input]
	if !ok {
		var zero S
		return zero, &TransitionError{From: describe(from), Input: describe(input)}
	}
	return to, nil
}

// IsFinal reports whether s satisfies the finality predicate.
func (m *Machine[S, A]) IsFinal(s S) bool {
	return m.isFinal(s)
}

// States returns every state that has at least one outgoing transition, in
// no particular order.
func (m *Machine[S, A]) States() []S {
	return slices.Collect(maps.Keys(m.transitions))
}

// Len returns the number of states with outgoing transitions.
func (m *Machine[S, A]) Len() int {
	return len(m.transitions)
}

// describe renders a state or symbol for error messages. Byte and rune
// symbols print as characters rather than code points.
func describe(v any) string {
	switch x := v.(type) {
	case byte:
		return string(rune(x))
	case rune:
		return string(x)
	default:
		return fmt.Sprint(v)
	}
}
