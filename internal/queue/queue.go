// Package queue implements a growable FIFO ring buffer.
package queue

const minCapacity = 4

// Queue is a FIFO queue. Zero value is not usable, use New.
type Queue[T any] struct {
	items []T
	head  int
	count int
}

// New creates a queue containing given items, first item is at the head.
func New[T any](items ...T) *Queue[T] {
	capacity := minCapacity
	for capacity < len(items) {
		capacity <<= 1
	}
	q := &Queue[T]{items: make([]T, capacity)}
	copy(q.items, items)
	q.count = len(items)
	return q
}

func (q *Queue[T]) IsEmpty() bool {
	return q.count == 0
}

func (q *Queue[T]) Len() int {
	return q.count
}

func (q *Queue[T]) index(offset int) int {
	return (q.head + offset) & (len(q.items) - 1)
}

func (q *Queue[T]) Append(item T) *Queue[T] {
	if q.count == len(q.items) {
		q.grow()
	}
	q.items[q.index(q.count)] = item
	q.count++
	return q
}

func (q *Queue[T]) Prepend(item T) *Queue[T] {
	if q.count == len(q.items) {
		q.grow()
	}
	q.head = q.index(len(q.items) - 1)
	q.items[q.head] = item
	q.count++
	return q
}

// First removes and returns the head item, the flag is false if the queue is empty.
func (q *Queue[T]) First() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}

	result := q.items[q.head]
	q.items[q.head] = zero
	q.head = q.index(1)
	q.count--
	return result, true
}

func (q *Queue[T]) grow() {
	items := make([]T, len(q.items)<<1)
	for i := 0; i < q.count; i++ {
		items[i] = q.items[q.index(i)]
	}
	q.items = items
	q.head = 0
}
