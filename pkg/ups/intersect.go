package ups

import (
	"context"
	"fmt"
	"math/bits"
	"slices"
)

// Intersect returns a ∩ b.
//
// The result has stem length max(a.n, b.n) and loop length lcm(a.p, b.p).
// Past that stem both operands repeat with a period dividing the lcm, so
// merging their enumerations below n+p decides membership everywhere.
// ErrOverflow is returned when the lcm or n+p does not fit in a uint64.
func Intersect(a, b *UPS) (*UPS, error) {
	return IntersectContext(context.Background(), a, b)
}

// checkEvery is the number of merge steps between context checks.
const checkEvery = 4096

// IntersectContext is like Intersect but stops with ctx.Err() once ctx is
// done. The merge costs up to two steps per candidate below the horizon, so
// callers handling untrusted sets should also bound Horizon.
func IntersectContext(ctx context.Context, a, b *UPS) (*UPS, error) {
	n, p, horizon, err := horizonOf(a, b)
	if err != nil {
		return nil, err
	}

	var prefix []uint64
	ia, ib := a.Iter(), b.Iter()
	x, okA := ia.Next()
	y, okB := ib.Next()
	for steps := 0; okA && okB && x < horizon && y < horizon; steps++ {
		if steps%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		switch {
		case x < y:
			x, okA = ia.Next()
		case y < x:
			y, okB = ib.Next()
		default:
			prefix = append(prefix, x)
			x, okA = ia.Next()
			y, okB = ib.Next()
		}
	}
	return FromPrefix(prefix, n, p)
}

// MustIntersect is like Intersect but panics on overflow.
func MustIntersect(a, b *UPS) *UPS {
	u, err := Intersect(a, b)
	if err != nil {
		panic(fmt.Sprintf("ups.MustIntersect(%v, %v): %v", a, b, err))
	}
	return u
}

// IntersectAll folds Intersect over sets, starting from Everything. With no
// arguments it returns Everything.
func IntersectAll(sets ...*UPS) (*UPS, error) {
	return IntersectAllContext(context.Background(), sets...)
}

// IntersectAllContext is IntersectAll with cancellation between and within
// the pairwise merges.
func IntersectAllContext(ctx context.Context, sets ...*UPS) (*UPS, error) {
	acc := Everything()
	for i, s := range sets {
		next, err := IntersectContext(ctx, acc, s)
		if err != nil {
			return nil, fmt.Errorf("intersecting set %d: %w", i, err)
		}
		acc = next
	}
	return acc, nil
}

// Equal reports whether a and b hold the same elements, whatever their
// stem and loop lengths. It fails only when the common horizon overflows.
func Equal(a, b *UPS) (bool, error) {
	_, _, horizon, err := horizonOf(a, b)
	if err != nil {
		return false, err
	}
	return slices.Equal(a.Below(horizon), b.Below(horizon)), nil
}

// Horizon returns max(n) + lcm(p) over sets: the bound below which
// IntersectAll merges candidates. Every pairwise step of the fold stays
// within it. With no sets it returns 1, the horizon of Everything.
func Horizon(sets ...*UPS) (uint64, error) {
	n, p := uint64(0), uint64(1)
	for i, s := range sets {
		n = max(n, s.stemLen)
		var ok bool
		if p, ok = mulChecked(p/gcd(p, s.loopLen), s.loopLen); !ok {
			return 0, fmt.Errorf("%w: lcm of loop lengths at set %d", ErrOverflow, i)
		}
	}
	h, ok := addChecked(n, p)
	if !ok {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, n, p)
	}
	return h, nil
}

// CheckHorizon returns ErrHorizonTooLarge when the horizon of sets exceeds
// limit.
func CheckHorizon(limit uint64, sets ...*UPS) error {
	h, err := Horizon(sets...)
	if err != nil {
		return err
	}
	if h > limit {
		return fmt.Errorf("%w: %d exceeds %d", ErrHorizonTooLarge, h, limit)
	}
	return nil
}

// horizonOf returns the combined stem length, the combined loop length and
// their sum.
func horizonOf(a, b *UPS) (n, p, horizon uint64, err error) {
	n = max(a.stemLen, b.stemLen)
	d := gcd(a.loopLen, b.loopLen)
	p, ok := mulChecked(a.loopLen/d, b.loopLen)
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: lcm(%d, %d)", ErrOverflow, a.loopLen, b.loopLen)
	}
	horizon, ok = addChecked(n, p)
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: %d + %d", ErrOverflow, n, p)
	}
	return n, p, horizon, nil
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func addChecked(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}

func mulChecked(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}
