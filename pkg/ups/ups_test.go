package ups

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identical reports whether two sets share the exact same representation.
func (u *UPS) identical(other *UPS) bool {
	return u.stemLen == other.stemLen &&
		slices.Equal(u.stemElems, other.stemElems) &&
		u.loopLen == other.loopLen &&
		slices.Equal(u.loopElems, other.loopElems)
}

func TestFromPrefix_SplitsAtStem(t *testing.T) {
	got := MustFromPrefix([]uint64{0, 2, 4, 6}, 4, 3)
	want := &UPS{stemLen: 4, stemElems: []uint64{0, 2}, loopLen: 3, loopElems: []uint64{4, 6}}
	assert.True(t, got.identical(want), "got %v", got)
}

func TestFromPrefix_ZeroPeriod(t *testing.T) {
	u, err := FromPrefix([]uint64{1, 2}, 2, 0)
	assert.ErrorIs(t, err, ErrZeroPeriod)
	assert.Nil(t, u)

	assert.Panics(t, func() { MustFromPrefix(nil, 0, 0) })
}

func TestFromPrefix_DoesNotAliasInput(t *testing.T) {
	prefix := []uint64{1, 5, 6}
	u := MustFromPrefix(prefix, 5, 2)
	prefix[0], prefix[1] = 99, 99
	assert.Equal(t, []uint64{1}, u.StemElems())
	assert.Equal(t, []uint64{5, 6}, u.LoopElems())
}

func TestFromPrefix_UncheckedPrefixDoesNotPanic(t *testing.T) {
	// Unsorted and out-of-range input is the caller's problem; it must not crash.
	u := MustFromPrefix([]uint64{9, 1, 40}, 3, 2)
	assert.NotPanics(t, func() { u.Take(10) })
	assert.ErrorIs(t, u.Validate(), ErrMalformed)
}

func TestTake_Witness(t *testing.T) {
	u := MustFromPrefix([]uint64{0, 2, 4, 6}, 4, 3)
	assert.Equal(t, []uint64{0, 2, 4, 6, 7, 9, 10, 12}, u.Take(8))
}

func TestEverything(t *testing.T) {
	u := Everything()
	assert.Equal(t, []uint64{0, 1, 2, 3, 4}, u.Take(5))
	assert.False(t, u.IsFinite())
	assert.True(t, u.Contains(123456789))
}

func TestFinite(t *testing.T) {
	tests := []struct {
		name     string
		elems    []uint64
		wantStem uint64
	}{
		{name: "empty", elems: nil, wantStem: 0},
		{name: "single zero", elems: []uint64{0}, wantStem: 1},
		{name: "several", elems: []uint64{3, 8, 20}, wantStem: 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := Finite(tt.elems)
			assert.Equal(t, tt.wantStem, u.StemLen())
			assert.Equal(t, uint64(1), u.LoopLen())
			assert.Empty(t, u.LoopElems())
			assert.True(t, u.IsFinite())
			// Asking for more than exists yields exactly the elements.
			assert.Equal(t, len(tt.elems), len(u.Take(len(tt.elems)+10)))
			require.NoError(t, u.Validate())
		})
	}

	assert.Panics(t, func() { Finite([]uint64{math.MaxUint64}) })
}

func TestMin(t *testing.T) {
	v, ok := Finite(nil).Min()
	assert.False(t, ok)
	assert.Zero(t, v)

	v, ok = MustFromPrefix([]uint64{7}, 3, 5).Min()
	assert.True(t, ok)
	assert.Equal(t, uint64(7), v)
}

func TestContains_MatchesEnumeration(t *testing.T) {
	u := MustFromPrefix([]uint64{1, 4, 6, 9}, 5, 5)
	members := u.Below(60)
	for k := uint64(0); k < 60; k++ {
		_, want := slices.BinarySearch(members, k)
		assert.Equal(t, want, u.Contains(k), "k=%d", k)
	}
	assert.False(t, Finite([]uint64{2}).Contains(3))
}

func TestIter_IndependentCursors(t *testing.T) {
	u := MustFromPrefix([]uint64{0, 3, 5}, 2, 4)
	a, b := u.Iter(), u.Iter()
	a.Next()
	a.Next()
	first, _ := b.Next()
	third, _ := a.Next()
	assert.Equal(t, uint64(0), first)
	assert.Equal(t, uint64(5), third)

	var wg sync.WaitGroup
	results := make([][]uint64, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = u.Take(50)
		}()
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
}

func TestIter_StopsBeforeOverflow(t *testing.T) {
	u := MustFromPrefix([]uint64{math.MaxUint64 - 2}, math.MaxUint64-2, 2)
	assert.Equal(t, []uint64{math.MaxUint64 - 2, math.MaxUint64}, u.Take(5))
}

func TestAll_EarlyBreak(t *testing.T) {
	var got []uint64
	for v := range Everything().All() {
		if v == 3 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []uint64{0, 1, 2}, got)
}

func TestIntersect_Witnesses(t *testing.T) {
	a := MustFromPrefix([]uint64{0, 2, 4, 6}, 4, 3)
	b := MustFromPrefix([]uint64{2, 5, 7, 8, 10, 11, 13}, 9, 6)

	got, err := Intersect(a, b)
	require.NoError(t, err)
	want := &UPS{stemLen: 9, stemElems: []uint64{2, 7}, loopLen: 6, loopElems: []uint64{10, 13}}
	assert.True(t, got.identical(want), "got %v", got)
}

func TestIntersect_WithEverythingKeepsElements(t *testing.T) {
	a := MustFromPrefix([]uint64{1, 4, 5}, 3, 3)
	got := MustIntersect(Everything(), a)
	eq, err := Equal(a, got)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestIntersect_Disjoint(t *testing.T) {
	evens := MustFromPrefix([]uint64{0}, 0, 2)
	odds := MustFromPrefix([]uint64{1}, 0, 2)
	got := MustIntersect(evens, odds)
	assert.True(t, got.IsEmpty())
	_, ok := got.Min()
	assert.False(t, ok)
}

func TestIntersect_Overflow(t *testing.T) {
	a := MustFromPrefix(nil, 0, 1<<40)
	b := MustFromPrefix(nil, 0, 1<<40-1)
	_, err := Intersect(a, b)
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Panics(t, func() { MustIntersect(a, b) })

	late := MustFromPrefix(nil, math.MaxUint64-1, 2)
	_, err = Intersect(late, Everything())
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestIntersectAll(t *testing.T) {
	got, err := IntersectAll()
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2}, got.Take(3))

	got, err = IntersectAll(
		MustFromPrefix([]uint64{0}, 0, 2),
		MustFromPrefix([]uint64{0}, 0, 3),
		MustFromPrefix([]uint64{1}, 1, 5),
	)
	require.NoError(t, err)
	assert.Equal(t, []uint64{6, 36, 66}, got.Take(3))

	_, err = IntersectAll(MustFromPrefix(nil, 0, 1<<40), MustFromPrefix(nil, 0, 1<<40-1))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestHorizon(t *testing.T) {
	h, err := Horizon()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), h)

	h, err = Horizon(
		MustFromPrefix([]uint64{0}, 0, 2),
		MustFromPrefix([]uint64{0}, 0, 3),
		MustFromPrefix([]uint64{1}, 1, 5),
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(31), h)

	_, err = Horizon(MustFromPrefix(nil, 0, 1<<40), MustFromPrefix(nil, 0, 1<<40-1))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestCheckHorizon(t *testing.T) {
	far := MustFromPrefix([]uint64{1 << 62}, 1<<62, 1)
	assert.NoError(t, CheckHorizon(31, MustFromPrefix([]uint64{1}, 1, 30)))
	assert.ErrorIs(t, CheckHorizon(30, MustFromPrefix([]uint64{1}, 1, 30)), ErrHorizonTooLarge)
	assert.ErrorIs(t, CheckHorizon(1<<24, Everything(), far), ErrHorizonTooLarge)
}

func TestIntersectContext_StopsWhenDone(t *testing.T) {
	far := MustFromPrefix([]uint64{1 << 62}, 1<<62, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := IntersectContext(ctx, Everything(), far)
	assert.ErrorIs(t, err, context.Canceled)

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = IntersectAllContext(ctx, Everything(), far)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEqual_DifferentRepresentations(t *testing.T) {
	a := MustFromPrefix([]uint64{0, 2}, 0, 4)
	b := MustFromPrefix([]uint64{0, 2, 4, 6}, 2, 4)
	eq, err := Equal(a, b)
	require.NoError(t, err)
	assert.True(t, eq)
	assert.False(t, a.identical(b))

	eq, err = Equal(a, MustFromPrefix([]uint64{0}, 0, 2))
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = Equal(a, Everything())
	require.NoError(t, err)
	assert.False(t, eq)
}

// randomUPS draws a set with a small stem and loop so that brute force
// checks stay cheap.
func randomUPS(r *rand.Rand) (*UPS, []uint64) {
	n := r.Uint64N(12)
	p := 1 + r.Uint64N(7)
	var prefix []uint64
	for k := uint64(0); k < n+p; k++ {
		if r.IntN(3) == 0 {
			prefix = append(prefix, k)
		}
	}
	return MustFromPrefix(prefix, n, p), prefix
}

func TestProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(8, 2023))
	for i := 0; i < 300; i++ {
		a, prefixA := randomUPS(r)
		b, _ := randomUPS(r)

		// Round trip: the first |P| elements are P itself.
		require.Equal(t, len(prefixA), len(a.Take(len(prefixA))))
		if len(prefixA) > 0 {
			require.Equal(t, prefixA, a.Take(len(prefixA)))
		}
		require.NoError(t, a.Validate())

		// Periodicity: past the stem, elements recur every loop length.
		if !a.IsFinite() {
			period := len(a.loopElems)
			head := a.Take(len(a.stemElems) + 4*period)
			for j := len(a.stemElems); j+period < len(head); j++ {
				require.Equal(t, head[j]+a.loopLen, head[j+period])
			}
		}

		ab := MustIntersect(a, b)
		ba := MustIntersect(b, a)
		require.True(t, ab.identical(ba), "a=%v b=%v", a, b)

		// Truncation: the result agrees with plain set intersection, both
		// inside the computed horizon and well beyond it.
		bound := ab.stemLen + ab.loopLen + 3*ab.loopLen
		inB := make(map[uint64]bool)
		for _, v := range b.Below(bound) {
			inB[v] = true
		}
		var want []uint64
		for _, v := range a.Below(bound) {
			if inB[v] {
				want = append(want, v)
			}
		}
		require.Equal(t, want, ab.Below(bound), "a=%v b=%v", a, b)
		require.NoError(t, ab.Validate())
	}
}

func TestIntersect_Associative(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 100; i++ {
		a, _ := randomUPS(r)
		b, _ := randomUPS(r)
		c, _ := randomUPS(r)
		left := MustIntersect(MustIntersect(a, b), c)
		right := MustIntersect(a, MustIntersect(b, c))
		eq, err := Equal(left, right)
		require.NoError(t, err)
		require.True(t, eq, "a=%v b=%v c=%v", a, b, c)
	}
}
