// Package ups implements ultimately periodic sets of natural numbers.
//
// A set S of naturals is ultimately periodic if there are n ≥ 0 and p ≥ 1
// such that for every k ≥ n, k ∈ S if and only if k+p ∈ S. Every finite set
// qualifies (take n = max(S)+1 and p = 1), and so does the set of step
// counts at which a deterministic machine driven by a cyclic input sits on an
// accepting state.
//
// A UPS is stored as a stem (the elements below n) and one period of the
// loop (the elements in [n, n+p), kept as absolute values):
//
//	s := ups.MustFromPrefix([]uint64{0, 2, 4, 6}, 4, 3)
//	s.Take(8) // [0 2 4 6 7 9 10 12]
//
// Values are immutable once built. Enumeration is lazy and restartable, so
// any number of goroutines may walk the same set at once.
//
// Intersection combines the two periods with an overflow-checked lcm and
// merges both enumerations up to max(n)+lcm(p). Arithmetic never wraps:
// operations that would leave the uint64 range report ErrOverflow, and
// enumeration simply ends instead of producing wrapped values.
//
// Representations are not minimized. Two sets can enumerate the same
// elements with different stem and loop lengths; use Equal to compare them.
package ups
