// Package regex defines immutable regular expression trees over grammar symbols.
//
// A tree is a closed variant: every Node has one of the Kind values below and
// every algorithm in this package switches over all of them.
package regex

import (
	"strings"
	"unicode/utf8"
)

// Symbol is an alphabet element: a character for token patterns or a grammar symbol name for rules.
// Symbols are compared by identity, empty Symbol denotes absence.
type Symbol string

func (s Symbol) IsEmpty() bool {
	return s == ""
}

type Kind int

const (
	EmptyNode Kind = iota
	LeafNode
	ConcatNode
	AltNode
	StarNode
	PlusNode
	OptNode
)

var kindNames = [...]string{"empty", "leaf", "concat", "alt", "star", "plus", "opt"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node is an immutable expression tree node.
// Unary nodes keep their operand in left.
type Node struct {
	kind        Kind
	value       Symbol
	left, right *Node
}

var emptyNode = &Node{kind: EmptyNode}

// Empty returns a node matching the empty string.
func Empty() *Node {
	return emptyNode
}

// Leaf returns a node matching a single symbol. Panics if s is empty.
func Leaf(s Symbol) *Node {
	if s.IsEmpty() {
		panic("regex: leaf with empty symbol")
	}
	return &Node{kind: LeafNode, value: s}
}

func orEmpty(n *Node) *Node {
	if n == nil {
		return emptyNode
	}
	return n
}

func Concat(left, right *Node) *Node {
	return &Node{kind: ConcatNode, left: orEmpty(left), right: orEmpty(right)}
}

func Alternate(left, right *Node) *Node {
	return &Node{kind: AltNode, left: orEmpty(left), right: orEmpty(right)}
}

func Star(n *Node) *Node {
	return &Node{kind: StarNode, left: orEmpty(n)}
}

func Plus(n *Node) *Node {
	return &Node{kind: PlusNode, left: orEmpty(n)}
}

func Optional(n *Node) *Node {
	return &Node{kind: OptNode, left: orEmpty(n)}
}

// Seq concatenates nodes left to right. Returns Empty for no nodes.
func Seq(nodes ...*Node) *Node {
	if len(nodes) == 0 {
		return emptyNode
	}

	result := orEmpty(nodes[0])
	for _, n := range nodes[1:] {
		result = Concat(result, n)
	}
	return result
}

// Alt combines nodes as alternatives. Returns Empty for no nodes.
func Alt(nodes ...*Node) *Node {
	if len(nodes) == 0 {
		return emptyNode
	}

	result := orEmpty(nodes[0])
	for _, n := range nodes[1:] {
		result = Alternate(result, n)
	}
	return result
}

// Literal returns a sequence of single character leaves.
func Literal(text string) *Node {
	leaves := make([]*Node, 0, len(text))
	for _, r := range text {
		leaves = append(leaves, Leaf(Symbol(string(r))))
	}
	return Seq(leaves...)
}

func (n *Node) Kind() Kind {
	return n.kind
}

// Value returns leaf symbol or empty symbol for other kinds.
func (n *Node) Value() Symbol {
	return n.value
}

func (n *Node) Left() *Node {
	return n.left
}

func (n *Node) Right() *Node {
	return n.right
}

// Inner returns the operand of Star, Plus, and Optional nodes.
func (n *Node) Inner() *Node {
	return n.left
}

// Nullable reports whether n matches the empty string.
func Nullable(n *Node) bool {
	switch n.kind {
	case EmptyNode, StarNode, OptNode:
		return true
	case LeafNode:
		return false
	case PlusNode:
		return Nullable(n.left)
	case ConcatNode:
		return Nullable(n.left) && Nullable(n.right)
	case AltNode:
		return Nullable(n.left) || Nullable(n.right)
	default:
		panic("regex: unknown node kind " + n.kind.String())
	}
}

// Leaves returns the number of leaves in the tree, counting every occurrence.
func Leaves(n *Node) int {
	switch n.kind {
	case EmptyNode:
		return 0
	case LeafNode:
		return 1
	case ConcatNode, AltNode:
		return Leaves(n.left) + Leaves(n.right)
	case StarNode, PlusNode, OptNode:
		return Leaves(n.left)
	default:
		panic("regex: unknown node kind " + n.kind.String())
	}
}

const (
	altPrec = iota
	concatPrec
	unaryPrec
	atomPrec
)

func precedence(n *Node) int {
	switch n.kind {
	case AltNode:
		return altPrec
	case ConcatNode:
		return concatPrec
	case StarNode, PlusNode, OptNode:
		return unaryPrec
	default:
		return atomPrec
	}
}

const metaChars = `\.+*?()|[]{}^$ "`

// SymbolString returns printable representation of a leaf symbol.
func SymbolString(s Symbol) string {
	if utf8.RuneCountInString(string(s)) == 1 {
		r, _ := utf8.DecodeRuneInString(string(s))
		switch {
		case strings.ContainsRune(metaChars, r):
			return `\` + string(s)
		case r == '\n':
			return `\n`
		case r == '\t':
			return `\t`
		case r == '\r':
			return `\r`
		}
	}
	return string(s)
}

// String renders the tree in regular expression syntax, sequence items are separated by spaces.
func (n *Node) String() string {
	var sb strings.Builder
	writeNode(&sb, n, altPrec)
	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node, minPrec int) {
	parens := precedence(n) < minPrec
	if parens {
		sb.WriteByte('(')
	}

	switch n.kind {
	case EmptyNode:
		sb.WriteString("()")
	case LeafNode:
		sb.WriteString(SymbolString(n.value))
	case ConcatNode:
		writeNode(sb, n.left, concatPrec)
		sb.WriteByte(' ')
		writeNode(sb, n.right, concatPrec)
	case AltNode:
		writeNode(sb, n.left, altPrec)
		sb.WriteString(" | ")
		writeNode(sb, n.right, altPrec)
	case StarNode:
		writeNode(sb, n.left, atomPrec)
		sb.WriteByte('*')
	case PlusNode:
		writeNode(sb, n.left, atomPrec)
		sb.WriteByte('+')
	case OptNode:
		writeNode(sb, n.left, atomPrec)
		sb.WriteByte('?')
	default:
		panic("regex: unknown node kind " + n.kind.String())
	}

	if parens {
		sb.WriteByte(')')
	}
}
