package source

import (
	"testing"

	. "github.com/cerfical/parsec/internal/test"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{-1, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
		"жж\nя": {
			{2, 1, 2},
			{4, 1, 3},
			{5, 2, 1},
			{7, 2, 2},
		},
	}

	for text, results := range samples {
		s := New("", []byte(text))
		for _, res := range results {
			l, c := s.LineCol(res.pos)
			Assert(t, l == res.line && c == res.col, "sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 2, 1},
		},
		"hello\nworld\n": {
			{0, 1, 1},
			{1, 1, 2},
			{6, 2, 1},
			{12, 2, 10},
			{12, 3, 1},
			{12, 4, 1},
		},
	}

	for text, results := range samples {
		s := New("", []byte(text))
		for _, res := range results {
			p := s.Pos(res.line, res.col)
			Assert(t, p == res.pos, "sample %q: expected %v, got pos: %d", text, res, p)
		}
	}
}

func TestNewPos(t *testing.T) {
	s := New("file", []byte("ab\ncd"))
	p := NewPos(s, 4)
	ExpectString(t, "file", p.SourceName())
	ExpectInt(t, 4, p.Pos())
	ExpectInt(t, 2, p.Line())
	ExpectInt(t, 2, p.Col())
	Assert(t, p.Source() == s, "source mismatch")
	ExpectString(t, "", Pos{}.SourceName())
}

func src(content string) *Source {
	return New(content, []byte(content))
}

func sourceChain(q *Queue) []string {
	var res []string
	for !q.IsEmpty() {
		content, pos := q.ContentPos()
		res = append(res, string(content[pos:]))
		q.NextSource()
	}
	return res
}

func expectChain(t *testing.T, expected, got []string) {
	t.Helper()
	Assert(t, len(expected) == len(got), "expected: %v, got: %v", expected, got)
	for i := range expected {
		Assert(t, expected[i] == got[i], "expected: %v, got: %v", expected, got)
	}
}

func TestSourceOrder(t *testing.T) {
	q := NewQueue()
	q.Append(src("bar")).Append(src("baz")).Prepend(src("foo"))
	expectChain(t, []string{"foo", "bar", "baz"}, sourceChain(q))
	Assert(t, q.Source() == nil, "no source expected after the last one")
	content, pos := q.ContentPos()
	ExpectInt(t, 0, len(content))
	ExpectInt(t, 0, pos)
}

func TestPrependResumesPosition(t *testing.T) {
	q := NewQueue().Append(src("hello")).Append(src("world"))
	q.Skip(3)
	q.Prepend(src("hi"))
	expectChain(t, []string{"hi", "lo", "world"}, sourceChain(q))
}

func TestManySources(t *testing.T) {
	q := NewQueue()
	q.Append(src("c")).Append(src("d")).Append(src("e")).Append(src("f")).
		Append(src("g")).Prepend(src("b")).Append(src("h")).Prepend(src("a"))
	expectChain(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, sourceChain(q))
}

func TestEmptySources(t *testing.T) {
	q := NewQueue()
	ExpectBool(t, true, q.IsEmpty())
	ExpectBool(t, true, q.AtEnd())

	q.Append(New("foo", nil))
	ExpectBool(t, false, q.IsEmpty())
	ExpectBool(t, true, q.AtEnd())
	ExpectString(t, "foo", q.Source().Name())

	q.Prepend(New("bar", nil))
	ExpectString(t, "bar", q.Source().Name())
	q.NextSource()
	ExpectString(t, "foo", q.Source().Name())
}

func TestSeekAndSkip(t *testing.T) {
	q := NewQueue().Append(src("foo"))
	q.Seek(4)
	ExpectInt(t, 3, q.Pos())
	ExpectBool(t, true, q.AtEnd())
	ExpectBool(t, false, q.IsEmpty())

	q.Seek(2)
	ExpectInt(t, 2, q.Pos())
	ExpectBool(t, false, q.AtEnd())

	q.Skip(4)
	ExpectInt(t, 3, q.Pos())

	q.Skip(-2)
	ExpectInt(t, 3, q.Pos())
	q.Seek(-1)
	ExpectInt(t, 0, q.Pos())

	q.Seek(2)
	sp := q.SourcePos()
	ExpectInt(t, 1, sp.Line())
	ExpectInt(t, 3, sp.Col())
}
