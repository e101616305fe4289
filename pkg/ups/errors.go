package ups

import "errors"

// ErrZeroPeriod is returned when a set is requested with a loop length of 0.
var ErrZeroPeriod = errors.New("ups: loop length must be at least 1")

// ErrOverflow is returned when combining periods leaves the uint64 range.
var ErrOverflow = errors.New("ups: uint64 overflow")

// ErrMalformed is returned by Validate when the stored elements break the
// ordering or range contract.
var ErrMalformed = errors.New("ups: malformed representation")

// ErrHorizonTooLarge is returned by CheckHorizon when an intersection would
// have to scan more candidates than the caller allows.
var ErrHorizonTooLarge = errors.New("ups: intersection horizon too large")
