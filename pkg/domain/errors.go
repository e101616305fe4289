package domain

import "errors"

// ErrInvalidNetwork is returned when a network definition is inconsistent.
var ErrInvalidNetwork = errors.New("invalid network")

// ErrNoStartStates is returned when no node matches the start selector.
var ErrNoStartStates = errors.New("no start states matched")

// ErrNoSolution is returned when the trajectories never stand on final
// nodes at the same step.
var ErrNoSolution = errors.New("trajectories never align")

// ErrCacheMiss is returned by result caches when a key is absent.
var ErrCacheMiss = errors.New("cache miss")
