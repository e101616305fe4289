package ups

import (
	"fmt"
	"slices"
)

// UPS is an ultimately periodic set of natural numbers.
//
// The zero value is not usable; build sets with Finite, Everything or
// FromPrefix.
type UPS struct {
	// stemLen is n: periodicity holds for every k ≥ n.
	stemLen uint64
	// stemElems lists S ∩ [0, n) in increasing order.
	stemElems []uint64
	// loopLen is p, always ≥ 1.
	loopLen uint64
	// loopElems lists S ∩ [n, n+p) in increasing order.
	loopElems []uint64
}

// Finite builds the set holding exactly elems, which must be strictly
// increasing. It panics if the last element is math.MaxUint64, since the
// stem length would not fit.
func Finite(elems []uint64) *UPS {
	var stemLen uint64
	if len(elems) > 0 {
		var ok bool
		if stemLen, ok = addChecked(elems[len(elems)-1], 1); !ok {
			panic(fmt.Sprintf("ups.Finite: %v", ErrOverflow))
		}
	}
	return &UPS{
		stemLen:   stemLen,
		stemElems: slices.Clone(elems),
		loopLen:   1,
	}
}

// Everything returns the set of all natural numbers.
func Everything() *UPS {
	return &UPS{
		loopLen:   1,
		loopElems: []uint64{0},
	}
}

// FromPrefix builds a set from its stem length n, loop length p and a
// prefix listing S ∩ [0, n+p) in increasing order.
//
// A zero p returns ErrZeroPeriod. The prefix is not checked: an unsorted
// prefix, or one with elements ≥ n+p, yields a set whose enumeration and
// intersections are meaningless. Call Validate when the prefix comes from
// an untrusted source.
func FromPrefix(prefix []uint64, n, p uint64) (*UPS, error) {
	if p == 0 {
		return nil, ErrZeroPeriod
	}
	i, _ := slices.BinarySearch(prefix, n)
	return &UPS{
		stemLen:   n,
		stemElems: slices.Clone(prefix[:i]),
		loopLen:   p,
		loopElems: slices.Clone(prefix[i:]),
	}, nil
}

// MustFromPrefix is like FromPrefix but panics if p is zero.
func MustFromPrefix(prefix []uint64, n, p uint64) *UPS {
	u, err := FromPrefix(prefix, n, p)
	if err != nil {
		panic(fmt.Sprintf("ups.MustFromPrefix(n=%d, p=%d): %v", n, p, err))
	}
	return u
}

// StemLen returns n.
func (u *UPS) StemLen() uint64 { return u.stemLen }

// LoopLen returns p.
func (u *UPS) LoopLen() uint64 { return u.loopLen }

// StemElems returns a copy of the elements below n.
func (u *UPS) StemElems() []uint64 { return slices.Clone(u.stemElems) }

// LoopElems returns a copy of the elements in [n, n+p).
func (u *UPS) LoopElems() []uint64 { return slices.Clone(u.loopElems) }

// IsFinite reports whether the set has finitely many elements.
func (u *UPS) IsFinite() bool { return len(u.loopElems) == 0 }

// IsEmpty reports whether the set has no elements at all.
func (u *UPS) IsEmpty() bool { return len(u.stemElems) == 0 && len(u.loopElems) == 0 }

// Min returns the smallest element. The boolean is false for the empty set.
func (u *UPS) Min() (uint64, bool) {
	return u.Iter().Next()
}

// Take returns the first k elements in increasing order, or fewer if the
// set runs out. A non-positive k yields an empty slice.
func (u *UPS) Take(k int) []uint64 {
	out := make([]uint64, 0, min(max(k, 0), 1024))
	it := u.Iter()
	for len(out) < k {
		v, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// Contains reports whether k belongs to the set.
func (u *UPS) Contains(k uint64) bool {
	if k < u.stemLen {
		_, found := slices.BinarySearch(u.stemElems, k)
		return found
	}
	if len(u.loopElems) == 0 {
		return false
	}
	// Fold k back into the first period. This cannot overflow since the
	// remainder is below p and n+p bounds every stored loop element.
	r := u.stemLen + (k-u.stemLen)%u.loopLen
	_, found := slices.BinarySearch(u.loopElems, r)
	return found
}

// Validate checks that the stem is strictly increasing and below n, and that
// the loop is strictly increasing and inside [n, n+p).
func (u *UPS) Validate() error {
	if u.loopLen == 0 {
		return ErrZeroPeriod
	}
	if err := checkRun(u.stemElems, 0, u.stemLen, "stem"); err != nil {
		return err
	}
	end, ok := addChecked(u.stemLen, u.loopLen)
	if !ok {
		return fmt.Errorf("%w: n+p exceeds uint64", ErrMalformed)
	}
	return checkRun(u.loopElems, u.stemLen, end, "loop")
}

func checkRun(elems []uint64, lo, hi uint64, part string) error {
	for i, e := range elems {
		if e < lo || e >= hi {
			return fmt.Errorf("%w: %s element %d outside [%d, %d)", ErrMalformed, part, e, lo, hi)
		}
		if i > 0 && elems[i-1] >= e {
			return fmt.Errorf("%w: %s not strictly increasing at %d", ErrMalformed, part, e)
		}
	}
	return nil
}

func (u *UPS) String() string {
	return fmt.Sprintf("ups{n=%d stem=%v p=%d loop=%v}", u.stemLen, u.stemElems, u.loopLen, u.loopElems)
}
