package ferrodex

import (
	"iter"
	"math/rand"
)

// ═══════════════════════════════════════════════════════════════════════════════
// ORDERED SET: a generic set ordered by a total-order comparator
// ═══════════════════════════════════════════════════════════════════════════════
// Set[T] is the ordered-set primitive the rest of the engine is built on: the
// index's postings lists and the query evaluator's intermediate results are
// all Set[string] values ordered by document path.
//
// The backing structure is a skip list, same shape as a classic search-engine
// posting list: a linked tower of nodes where higher levels skip over more
// elements, giving O(log n) search/insert while keeping a single sorted
// linked list at level 0. That bottom level is what makes Union/Intersection/
// Difference possible in O(|a|+|b|) by a single linear merge pass, instead of
// re-inserting one set's elements into the other one at a time.
// ═══════════════════════════════════════════════════════════════════════════════

const maxSetHeight = 32

// CompareFunc reports the relative order of a and b: negative if a<b, zero if
// a==b, positive if a>b. Two sets combined by Union/Intersection/Difference
// must share an equivalent comparator, or the result is undefined.
type CompareFunc[T any] func(a, b T) int

type setNode[T any] struct {
	elem T
	next []*setNode[T]
}

// Set is an ordered set of T, see CompareFunc for ordering.
type Set[T any] struct {
	cmp    CompareFunc[T]
	head   *setNode[T]
	height int
	size   int
}

// NewSet creates an empty set ordered by cmp.
func NewSet[T any](cmp CompareFunc[T]) *Set[T] {
	return &Set[T]{
		cmp:    cmp,
		head:   &setNode[T]{next: make([]*setNode[T], maxSetHeight)},
		height: 1,
	}
}

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int {
	return s.size
}

// search returns, for each level, the last node whose element is strictly
// less than elem (the "journey" of predecessors used by both lookup and
// insert).
func (s *Set[T]) search(elem T) (journey [maxSetHeight]*setNode[T]) {
	cur := s.head
	for level := s.height - 1; level >= 0; level-- {
		for cur.next[level] != nil && s.cmp(cur.next[level].elem, elem) < 0 {
			cur = cur.next[level]
		}
		journey[level] = cur
	}
	return journey
}

// Get returns the stored element equal to elem, if present.
func (s *Set[T]) Get(elem T) (T, bool) {
	journey := s.search(elem)
	next := journey[0].next[0]
	if next != nil && s.cmp(next.elem, elem) == 0 {
		return next.elem, true
	}
	var zero T
	return zero, false
}

// Contains reports whether elem is present in the set.
func (s *Set[T]) Contains(elem T) bool {
	_, ok := s.Get(elem)
	return ok
}

// Add inserts elem if it is not already present.
func (s *Set[T]) Add(elem T) {
	s.TryAdd(elem)
}

// TryAdd attempts to insert elem, returning the element that ends up stored
// at that key: the pre-existing equal element if one exists, or elem itself
// if it was just added. The boolean reports whether an insertion happened.
func (s *Set[T]) TryAdd(elem T) (T, bool) {
	journey := s.search(elem)
	if next := journey[0].next[0]; next != nil && s.cmp(next.elem, elem) == 0 {
		return next.elem, false
	}

	height := randomSetHeight()
	if height > s.height {
		for level := s.height; level < height; level++ {
			journey[level] = s.head
		}
		s.height = height
	}

	node := &setNode[T]{elem: elem, next: make([]*setNode[T], height)}
	for level := 0; level < height; level++ {
		node.next[level] = journey[level].next[level]
		journey[level].next[level] = node
	}
	s.size++
	return elem, true
}

func randomSetHeight() int {
	height := 1
	for height < maxSetHeight && rand.Int31()&1 == 1 {
		height++
	}
	return height
}

// All returns an in-order iterator over the set's elements. Safe to range
// over repeatedly as long as the set is not mutated concurrently with the
// iteration; iteration order is stable between calls when the set does not
// change.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for cur := s.head.next[0]; cur != nil; cur = cur.next[0] {
			if !yield(cur.elem) {
				return
			}
		}
	}
}

// Copy returns a structural copy of s sharing its comparator.
func (s *Set[T]) Copy() *Set[T] {
	elems := make([]T, 0, s.size)
	for e := range s.All() {
		elems = append(elems, e)
	}
	return buildSorted(s.cmp, elems)
}

// buildSorted constructs a Set in O(n) from an already-sorted, duplicate-free
// slice, by threading each level's "tail so far" instead of re-searching from
// the head for every insertion. This is what gives Union/Intersection/
// Difference their linear-time guarantee: the merge step below produces a
// sorted slice in O(|a|+|b|), and buildSorted turns it into a Set in O(n).
func buildSorted[T any](cmp CompareFunc[T], elems []T) *Set[T] {
	s := NewSet[T](cmp)
	if len(elems) == 0 {
		return s
	}

	tails := make([]*setNode[T], maxSetHeight)
	for level := range tails {
		tails[level] = s.head
	}
	maxHeight := 1

	for _, elem := range elems {
		height := randomSetHeight()
		if height > maxHeight {
			maxHeight = height
		}
		node := &setNode[T]{elem: elem, next: make([]*setNode[T], height)}
		for level := 0; level < height; level++ {
			tails[level].next[level] = node
			tails[level] = node
		}
	}
	s.height = maxHeight
	s.size = len(elems)
	return s
}

// merge walks a and b's in-order sequences once each, invoking keep for every
// distinct element in their merged order and telling it which side(s) held
// that element. This single pass is what backs Union, Intersection and
// Difference.
func merge[T any](a, b *Set[T], keep func(elem T, inA, inB bool)) {
	nextA, stopA := iter.Pull(a.All())
	defer stopA()
	nextB, stopB := iter.Pull(b.All())
	defer stopB()

	va, okA := nextA()
	vb, okB := nextB()
	for okA || okB {
		switch {
		case okA && (!okB || a.cmp(va, vb) < 0):
			keep(va, true, false)
			va, okA = nextA()
		case okB && (!okA || a.cmp(va, vb) > 0):
			keep(vb, false, true)
			vb, okB = nextB()
		default:
			keep(va, true, true)
			va, okA = nextA()
			vb, okB = nextB()
		}
	}
}

// Union returns a new set containing every element of a or b, in O(|a|+|b|).
// The result shares a's comparator.
func Union[T any](a, b *Set[T]) *Set[T] {
	out := make([]T, 0, a.Len()+b.Len())
	merge(a, b, func(elem T, inA, inB bool) {
		out = append(out, elem)
	})
	return buildSorted(a.cmp, out)
}

// Intersection returns a new set containing every element in both a and b,
// in O(|a|+|b|). The result shares a's comparator.
func Intersection[T any](a, b *Set[T]) *Set[T] {
	out := make([]T, 0, min(a.Len(), b.Len()))
	merge(a, b, func(elem T, inA, inB bool) {
		if inA && inB {
			out = append(out, elem)
		}
	})
	return buildSorted(a.cmp, out)
}

// Difference returns a new set containing every element of a that is not in
// b, in O(|a|+|b|). The result shares a's comparator.
func Difference[T any](a, b *Set[T]) *Set[T] {
	out := make([]T, 0, a.Len())
	merge(a, b, func(elem T, inA, inB bool) {
		if inA && !inB {
			out = append(out, elem)
		}
	})
	return buildSorted(a.cmp, out)
}
