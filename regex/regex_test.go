package regex

import (
	"testing"

	. "github.com/cerfical/parsec/internal/test"
)

func leaf(s string) *Node {
	return Leaf(Symbol(s))
}

func TestNullable(t *testing.T) {
	samples := []struct {
		node     *Node
		nullable bool
	}{
		{Empty(), true},
		{leaf("a"), false},
		{Star(leaf("a")), true},
		{Optional(leaf("a")), true},
		{Plus(leaf("a")), false},
		{Plus(Star(leaf("a"))), true},
		{Concat(leaf("a"), Star(leaf("b"))), false},
		{Concat(Optional(leaf("a")), Star(leaf("b"))), true},
		{Alternate(leaf("a"), leaf("b")), false},
		{Alternate(leaf("a"), Empty()), true},
	}

	for _, sample := range samples {
		Assert(t, Nullable(sample.node) == sample.nullable, "%s: expecting nullable=%v", sample.node, sample.nullable)
	}
}

func TestLeafPanicsOnEmptySymbol(t *testing.T) {
	defer func() {
		Assert(t, recover() != nil, "panic expected")
	}()
	Leaf("")
}

func TestNilOperandsAreEmpty(t *testing.T) {
	n := Concat(nil, Star(nil))
	ExpectInt(t, int(EmptyNode), int(n.Left().Kind()))
	ExpectInt(t, int(EmptyNode), int(n.Right().Inner().Kind()))
}

func TestHelpers(t *testing.T) {
	ExpectInt(t, int(EmptyNode), int(Seq().Kind()))
	ExpectInt(t, int(EmptyNode), int(Alt().Kind()))
	ExpectInt(t, int(LeafNode), int(Seq(leaf("x")).Kind()))

	lit := Literal("if")
	ExpectInt(t, int(ConcatNode), int(lit.Kind()))
	ExpectString(t, "i", string(lit.Left().Value()))
	ExpectString(t, "f", string(lit.Right().Value()))
	ExpectInt(t, 2, Leaves(lit))
	ExpectInt(t, 4, Leaves(Concat(lit, lit)))
}

func TestString(t *testing.T) {
	samples := []struct {
		node     *Node
		expected string
	}{
		{Empty(), "()"},
		{leaf("Term"), "Term"},
		{leaf("+"), `\+`},
		{leaf("\n"), `\n`},
		{Seq(leaf("a"), leaf("b"), leaf("c")), "a b c"},
		{Alt(leaf("a"), leaf("b")), "a | b"},
		{Concat(leaf("a"), Alt(leaf("b"), leaf("c"))), "a (b | c)"},
		{Star(Concat(leaf("a"), leaf("b"))), "(a b)*"},
		{Plus(leaf("a")), "a+"},
		{Optional(Star(leaf("a"))), "(a*)?"},
		{Seq(leaf("Term"), Star(Seq(leaf("+"), leaf("Term")))), `Term (\+ Term)*`},
	}

	for _, sample := range samples {
		ExpectString(t, sample.expected, sample.node.String())
	}
}

func TestKindString(t *testing.T) {
	ExpectString(t, "concat", ConcatNode.String())
	ExpectString(t, "unknown", Kind(100).String())
}
