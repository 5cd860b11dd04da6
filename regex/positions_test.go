package regex

import (
	"testing"

	. "github.com/cerfical/parsec/internal/test"
)

func TestConcatPositions(t *testing.T) {
	p := Analyze("X", Concat(leaf("a"), leaf("b")))
	ExpectInt(t, 3, p.Len())
	ExpectInt(t, 2, p.End())
	ExpectString(t, "a", string(p.Value(0)))
	ExpectString(t, "b", string(p.Value(1)))
	ExpectString(t, "X", string(p.Value(p.End())))
	ExpectBool(t, true, p.IsEnd(2))
	ExpectBool(t, false, p.Nullable())

	ExpectInts(t, []int{0}, p.Firstpos().ToSlice())
	ExpectInts(t, []int{1}, p.Lastpos().ToSlice())
	ExpectInts(t, []int{0}, p.Start().ToSlice())
	ExpectInts(t, []int{1}, p.Followpos(0).ToSlice())
	ExpectInts(t, []int{2}, p.Followpos(1).ToSlice())
	ExpectInts(t, []int{}, p.Followpos(2).ToSlice())
}

func TestStarPositions(t *testing.T) {
	p := Analyze("X", Star(leaf("a")))
	ExpectBool(t, true, p.Nullable())
	ExpectInts(t, []int{0, 1}, p.Start().ToSlice())
	ExpectInts(t, []int{0, 1}, p.Followpos(0).ToSlice())
}

func TestAltPositions(t *testing.T) {
	p := Analyze("X", Alternate(leaf("a"), leaf("b")))
	ExpectInts(t, []int{0, 1}, p.Start().ToSlice())
	ExpectInts(t, []int{0, 1}, p.Lastpos().ToSlice())
	ExpectInts(t, []int{2}, p.Followpos(0).ToSlice())
	ExpectInts(t, []int{2}, p.Followpos(1).ToSlice())
}

func TestRepeatedSubtreeGetsDisjointPositions(t *testing.T) {
	ab := Concat(leaf("a"), leaf("b"))
	p := Analyze("X", Concat(ab, ab))
	ExpectInt(t, 5, p.Len())
	ExpectString(t, "a", string(p.Value(2)))
	ExpectInts(t, []int{2}, p.Followpos(1).ToSlice())
	ExpectInts(t, []int{4}, p.Followpos(3).ToSlice())
}

func TestNestedClosures(t *testing.T) {
	// (a b)* c
	p := Analyze("X", Concat(Star(Concat(leaf("a"), leaf("b"))), leaf("c")))
	ExpectInts(t, []int{0, 2}, p.Start().ToSlice())
	ExpectInts(t, []int{1}, p.Followpos(0).ToSlice())
	ExpectInts(t, []int{0, 2}, p.Followpos(1).ToSlice())
	ExpectInts(t, []int{3}, p.Followpos(2).ToSlice())
}

func TestPlusAndOptional(t *testing.T) {
	// a+ b? c
	p := Analyze("X", Seq(Plus(leaf("a")), Optional(leaf("b")), leaf("c")))
	ExpectBool(t, false, p.Nullable())
	ExpectInts(t, []int{0}, p.Start().ToSlice())
	ExpectInts(t, []int{0, 1, 2}, p.Followpos(0).ToSlice())
	ExpectInts(t, []int{2}, p.Followpos(1).ToSlice())
	ExpectInts(t, []int{3}, p.Followpos(2).ToSlice())
	ExpectInts(t, []int{2}, p.Lastpos().ToSlice())
}

func TestNullableTail(t *testing.T) {
	// a b* c?
	p := Analyze("X", Seq(leaf("a"), Star(leaf("b")), Optional(leaf("c"))))
	ExpectInts(t, []int{1, 2, 3}, p.Followpos(0).ToSlice())
	ExpectInts(t, []int{1, 2, 3}, p.Followpos(1).ToSlice())
	ExpectInts(t, []int{3}, p.Followpos(2).ToSlice())
	ExpectInts(t, []int{0, 1, 2}, p.Lastpos().ToSlice())
}

func TestEmptyBody(t *testing.T) {
	p := Analyze("X", Empty())
	ExpectInt(t, 1, p.Len())
	ExpectBool(t, true, p.Nullable())
	ExpectInts(t, []int{0}, p.Start().ToSlice())
	ExpectInts(t, []int{}, p.Firstpos().ToSlice())

	p = Analyze("Y", nil)
	ExpectInt(t, 1, p.Len())
	ExpectString(t, "Y", string(p.Head()))
}

func TestResultsAreCopies(t *testing.T) {
	p := Analyze("X", leaf("a"))
	p.Followpos(0).Add(100)
	p.Start().Add(100)
	ExpectInts(t, []int{1}, p.Followpos(0).ToSlice())
	ExpectInts(t, []int{0}, p.Start().ToSlice())

	var follows []int
	p.EachFollow(0, func(next int) {
		follows = append(follows, next)
	})
	ExpectInts(t, []int{1}, follows)
}
