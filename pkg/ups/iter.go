package ups

import "iter"

// Iterator walks a UPS in increasing order. Each Iterator carries its own
// cursor, so several may run over the same set independently.
type Iterator struct {
	u      *UPS
	inLoop bool
	index  int
	offset uint64
	done   bool
}

// Iter returns a fresh iterator positioned before the smallest element.
func (u *UPS) Iter() *Iterator {
	return &Iterator{u: u}
}

// Next returns the next element. The boolean is false once the set is
// exhausted: after the stem of a finite set, or when the next element would
// not fit in a uint64.
func (it *Iterator) Next() (uint64, bool) {
	if it.done {
		return 0, false
	}
	if !it.inLoop {
		if it.index < len(it.u.stemElems) {
			v := it.u.stemElems[it.index]
			it.index++
			return v, true
		}
		if len(it.u.loopElems) == 0 {
			it.done = true
			return 0, false
		}
		it.inLoop, it.index = true, 0
	}
	if it.index == len(it.u.loopElems) {
		next, ok := addChecked(it.offset, it.u.loopLen)
		if !ok {
			it.done = true
			return 0, false
		}
		it.offset, it.index = next, 0
	}
	v, ok := addChecked(it.u.loopElems[it.index], it.offset)
	if !ok {
		it.done = true
		return 0, false
	}
	it.index++
	return v, true
}

// All returns the elements of the set in increasing order. The sequence is
// infinite unless the set is finite; stop ranging over it explicitly.
func (u *UPS) All() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		it := u.Iter()
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Below returns every element smaller than bound.
func (u *UPS) Below(bound uint64) []uint64 {
	var out []uint64
	for v := range u.All() {
		if v >= bound {
			break
		}
		out = append(out, v)
	}
	return out
}
