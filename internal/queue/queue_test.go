package queue

import (
	"fmt"
	"testing"

	. "github.com/cerfical/parsec/internal/test"
)

func TestEmpty(t *testing.T) {
	q := New[int]()
	ExpectBool(t, true, q.IsEmpty())
	ExpectInt(t, 0, q.Len())
	ExpectInt(t, minCapacity, len(q.items))

	i, f := q.First()
	ExpectInt(t, 0, i)
	ExpectBool(t, false, f)
}

// drain empties q and returns its items in FIFO order.
func drain(q *Queue[int]) []int {
	result := []int{}
	for !q.IsEmpty() {
		v, _ := q.First()
		result = append(result, v)
	}
	return result
}

func TestPrefilled(t *testing.T) {
	for l := 0; l <= 3*minCapacity; l++ {
		t.Run(fmt.Sprintf("%d elements", l), func(t *testing.T) {
			items := make([]int, l)
			for i := range items {
				items[i] = i
			}
			q := New(items...)
			ExpectInt(t, l, q.Len())
			Assert(t, len(q.items)&(len(q.items)-1) == 0, "capacity must be a power of 2, got %d", len(q.items))
			ExpectInts(t, items, drain(q))
		})
	}
}

func TestFifoOrder(t *testing.T) {
	q := New[int]()
	for i := 0; i < 10; i++ {
		q.Append(i)
	}
	for i := 0; i < 10; i++ {
		v, f := q.First()
		ExpectBool(t, true, f)
		ExpectInt(t, i, v)
	}
	ExpectBool(t, true, q.IsEmpty())
}

func TestWrapAround(t *testing.T) {
	q := New(1, 2, 3)
	q.First()
	q.First()
	q.Append(4)
	q.Append(5)
	q.Append(6)
	ExpectInt(t, minCapacity, len(q.items))

	q.Append(7)
	ExpectInt(t, minCapacity<<1, len(q.items))
	ExpectInts(t, []int{3, 4, 5, 6, 7}, drain(q))
}

func TestPrepend(t *testing.T) {
	q := New(2, 3)
	q.Prepend(1)
	q.Prepend(0)
	q.Prepend(-1)
	ExpectInt(t, 5, q.Len())

	v, f := q.First()
	ExpectBool(t, true, f)
	ExpectInt(t, -1, v)
	q.Append(4)
	ExpectInts(t, []int{0, 1, 2, 3, 4}, drain(q))
}
