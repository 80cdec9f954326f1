// Package pqueue implements a generic binary-heap priority queue whose
// ordering is fixed at construction to either minimum-at-top or
// maximum-at-top.
//
// The heap is stored as a dense slice representing a complete binary tree.
// For an element at index i, its children live at 2i+1 and 2i+2 and its
// parent at (i-1)/2.  The root has no parent.
//
package pqueue

import (
	"cmp"

	"github.com/chronos-tachyon/assert"
)

// Policy selects which element a Queue keeps at the top.
type Policy byte

const (
	// Min keeps the least element at the top.
	Min Policy = iota

	// Max keeps the greatest element at the top.
	Max
)

// String returns the name of this Policy.
func (p Policy) String() string {
	switch p {
	case Min:
		return "Min"
	case Max:
		return "Max"
	default:
		return "Policy(?)"
	}
}

// Queue is a binary heap.  The zero value is not usable; call New or NewFunc.
type Queue[T any] struct {
	xs     []T
	less   func(a, b T) bool
	policy Policy
}

// New returns an empty Queue of naturally ordered values.
func New[T cmp.Ordered](policy Policy) *Queue[T] {
	return NewFunc(policy, cmp.Less[T])
}

// NewFunc returns an empty Queue ordered by less, which must be a strict
// weak ordering.  Under Max, the queue prefers b over a when less(a, b).
//
func NewFunc[T any](policy Policy, less func(a, b T) bool) *Queue[T] {
	assert.Assertf(policy == Min || policy == Max, "invalid policy %d", byte(policy))
	assert.Assertf(less != nil, "less function is nil")
	return &Queue[T]{less: less, policy: policy}
}

// Policy returns the ordering policy chosen at construction.
func (q *Queue[T]) Policy() Policy {
	return q.policy
}

// Len returns the number of elements in the queue.
func (q *Queue[T]) Len() int {
	return len(q.xs)
}

// Peek returns the top element without removing it.  ok is false iff the
// queue is empty.
func (q *Queue[T]) Peek() (item T, ok bool) {
	if len(q.xs) == 0 {
		return item, false
	}
	return q.xs[0], true
}

// Push inserts item and restores the heap property by percolating it up.
func (q *Queue[T]) Push(item T) {
	q.xs = append(q.xs, item)
	q.percolateUp(len(q.xs) - 1)
}

// Pop removes and returns the top element.  ok is false iff the queue was
// empty.
func (q *Queue[T]) Pop() (item T, ok bool) {
	n := len(q.xs)
	if n == 0 {
		return item, false
	}

	item = q.xs[0]
	last := n - 1
	q.xs[0] = q.xs[last]

	var zero T
	q.xs[last] = zero
	q.xs = q.xs[:last]

	if last > 1 {
		q.percolateDown(0)
	}
	return item, true
}

// Check reports whether every element is not worse than its children.
func (q *Queue[T]) Check() bool {
	for i := 1; i < len(q.xs); i++ {
		p, _ := parent(i)
		if q.prefers(q.xs[i], q.xs[p]) {
			return false
		}
	}
	return true
}

// prefers reports whether a is strictly preferred over b under the policy.
func (q *Queue[T]) prefers(a, b T) bool {
	if q.policy == Max {
		return q.less(b, a)
	}
	return q.less(a, b)
}

func (q *Queue[T]) percolateUp(i int) {
	for {
		p, ok := parent(i)
		if !ok || !q.prefers(q.xs[i], q.xs[p]) {
			return
		}
		q.xs[i], q.xs[p] = q.xs[p], q.xs[i]
		i = p
	}
}

func (q *Queue[T]) percolateDown(i int) {
	n := len(q.xs)
	for {
		l, r := left(i), right(i)
		if l >= n {
			return
		}

		best := l
		if r < n && q.prefers(q.xs[r], q.xs[l]) {
			best = r
		}

		if !q.prefers(q.xs[best], q.xs[i]) {
			return
		}
		q.xs[i], q.xs[best] = q.xs[best], q.xs[i]
		i = best
	}
}

// parent returns the index of i's parent.  The root has none.
func parent(i int) (int, bool) {
	if i <= 0 {
		return 0, false
	}
	return (i - 1) / 2, true
}

func left(i int) int {
	return 2*i + 1
}

func right(i int) int {
	return 2*i + 2
}
