package fsm

import (
	"fmt"

	"github.com/aretw0/lockstep/pkg/ups"
)

// Cycle describes the eventual shape of one trajectory.
type Cycle struct {
	// StemLen is the step at which the repeated (state, cursor) pair was
	// first seen.
	StemLen uint64
	// LoopLen is the number of steps between the two sightings.
	LoopLen uint64
	// Finals lists, in increasing order, every step below StemLen+LoopLen
	// at which the trajectory stood on a final state.
	Finals []uint64
}

// Set returns the ultimately periodic set of steps at which the trajectory
// stands on a final state.
func (c Cycle) Set() (*ups.UPS, error) {
	return ups.FromPrefix(c.Finals, c.StemLen, c.LoopLen)
}

type visit[S comparable] struct {
	state  S
	cursor int
}

// Cycle replays input forever starting from init and stops at the first
// (state, cursor) pair seen twice. Since there are finitely many such pairs
// the loop always terminates.
func (m *Machine[S, A]) Cycle(init S, input []A) (Cycle, error) {
	if len(input) == 0 {
		return Cycle{}, ErrEmptyInput
	}

	seen := make(map[visit[S]]uint64)
	var finals []uint64
	state, cursor, count := init, 0, uint64(0)
	for {
		key := visit[S]{state: state, cursor: cursor}
		if first, ok := seen[key]; ok {
			return Cycle{StemLen: first, LoopLen: count - first, Finals: finals}, nil
		}
		seen[key] = count
		if m.isFinal(state) {
			finals = append(finals, count)
		}
		next, err := m.Next(state, input[cursor])
		if err != nil {
			return Cycle{}, fmt.Errorf("step %d: %w", count, err)
		}
		state = next
		cursor = (cursor + 1) % len(input)
		count++
	}
}

// RunCycleFrom returns the set of step counts at which the trajectory from
// init, driven by input repeated forever, stands on a final state.
func (m *Machine[S, A]) RunCycleFrom(init S, input []A) (*ups.UPS, error) {
	c, err := m.Cycle(init, input)
	if err != nil {
		return nil, err
	}
	return c.Set()
}

// Trace returns the states visited during the first steps steps, starting
// with init itself.
func (m *Machine[S, A]) Trace(init S, input []A, steps int) ([]S, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}
	if steps < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSteps, steps)
	}
	path := make([]S, 0, steps+1)
	path = append(path, init)
	state := init
	for i := 0; i < steps; i++ {
		next, err := m.Next(state, input[i%len(input)])
		if err != nil {
			return path, fmt.Errorf("step %d: %w", i, err)
		}
		state = next
		path = append(path, state)
	}
	return path, nil
}
