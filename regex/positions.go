package regex

import (
	"github.com/cerfical/parsec/internal/ints"
)

const none = -1

type arenaNode struct {
	kind                Kind
	value               Symbol
	left, right, parent int
	nullable            bool
	first, last         *ints.Set
}

// Positions holds position analysis of one rule body.
//
// The body is implicitly concatenated with an end marker leaf tagged with the head symbol.
// Leaves are numbered depth-first, left to right, starting from 0, so every occurrence
// gets its own position; the end marker always has the highest position.
// Nodes are kept in an arena, children always precede their parent and refer to it by index.
// Positions is immutable after Analyze returns.
type Positions struct {
	head   Symbol
	nodes  []arenaNode
	leaves []int
	body   int
	root   int
	follow []*ints.Set
}

// Analyze numbers leaves of body and computes nullable, firstpos, lastpos, and followpos.
func Analyze(head Symbol, body *Node) *Positions {
	p := &Positions{head: head}
	size := Leaves(orEmpty(body)) + 1
	p.nodes = make([]arenaNode, 0, size*2)
	p.leaves = make([]int, 0, size)

	p.body = p.add(orEmpty(body))
	end := p.addLeaf(head)
	p.root = p.addBinary(ConcatNode, p.body, end)

	p.follow = make([]*ints.Set, len(p.leaves))
	for pos := range p.leaves {
		p.follow[pos] = p.computeFollow(pos)
	}
	return p
}

func (p *Positions) add(n *Node) int {
	switch n.kind {
	case EmptyNode:
		return p.push(arenaNode{kind: EmptyNode, nullable: true, first: ints.NewSet(), last: ints.NewSet()})
	case LeafNode:
		return p.addLeaf(n.value)
	case ConcatNode, AltNode:
		left := p.add(n.left)
		right := p.add(n.right)
		return p.addBinary(n.kind, left, right)
	case StarNode, PlusNode, OptNode:
		return p.addUnary(n.kind, p.add(n.left))
	default:
		panic("regex: unknown node kind " + n.kind.String())
	}
}

func (p *Positions) push(an arenaNode) int {
	an.parent = none
	if an.kind == LeafNode || an.kind == EmptyNode {
		an.left, an.right = none, none
	}
	index := len(p.nodes)
	p.nodes = append(p.nodes, an)
	return index
}

func (p *Positions) addLeaf(value Symbol) int {
	pos := len(p.leaves)
	index := p.push(arenaNode{
		kind:  LeafNode,
		value: value,
		first: ints.NewSet(pos),
		last:  ints.NewSet(pos),
	})
	p.leaves = append(p.leaves, index)
	return index
}

func (p *Positions) addUnary(kind Kind, inner int) int {
	in := &p.nodes[inner]
	nullable := true
	if kind == PlusNode {
		nullable = in.nullable
	}
	index := p.push(arenaNode{
		kind:     kind,
		left:     inner,
		right:    none,
		nullable: nullable,
		first:    in.first,
		last:     in.last,
	})
	p.nodes[inner].parent = index
	return index
}

func (p *Positions) addBinary(kind Kind, left, right int) int {
	l, r := &p.nodes[left], &p.nodes[right]
	an := arenaNode{kind: kind, left: left, right: right}

	switch kind {
	case AltNode:
		an.nullable = l.nullable || r.nullable
		an.first = ints.Union(l.first, r.first)
		an.last = ints.Union(l.last, r.last)
	case ConcatNode:
		an.nullable = l.nullable && r.nullable
		an.first = l.first
		if l.nullable {
			an.first = ints.Union(l.first, r.first)
		}
		an.last = r.last
		if r.nullable {
			an.last = ints.Union(l.last, r.last)
		}
	}

	index := p.push(an)
	p.nodes[left].parent = index
	p.nodes[right].parent = index
	return index
}

// computeFollow walks from the leaf up to the root collecting positions that may follow it.
func (p *Positions) computeFollow(pos int) *ints.Set {
	result := ints.NewSet()
	child := p.leaves[pos]
	for parent := p.nodes[child].parent; parent != none; parent = p.nodes[parent].parent {
		n := &p.nodes[parent]
		switch n.kind {
		case StarNode, PlusNode:
			result.Union(p.nodes[n.left].first)
		case ConcatNode:
			if n.left == child {
				right := &p.nodes[n.right]
				result.Union(right.first)
				if !right.nullable {
					return result
				}
			}
		}
		child = parent
	}
	return result
}

// Head returns the symbol the body belongs to.
func (p *Positions) Head() Symbol {
	return p.head
}

// Len returns the number of positions including the end marker.
func (p *Positions) Len() int {
	return len(p.leaves)
}

// End returns the end marker position.
func (p *Positions) End() int {
	return len(p.leaves) - 1
}

func (p *Positions) IsEnd(pos int) bool {
	return pos == p.End()
}

// Value returns the symbol at pos, the end marker carries the head symbol.
func (p *Positions) Value(pos int) Symbol {
	return p.nodes[p.leaves[pos]].value
}

// Nullable reports whether the body matches the empty string.
func (p *Positions) Nullable() bool {
	return p.nodes[p.body].nullable
}

// Firstpos returns firstpos of the body.
func (p *Positions) Firstpos() *ints.Set {
	return p.nodes[p.body].first.Copy()
}

// Lastpos returns lastpos of the body.
func (p *Positions) Lastpos() *ints.Set {
	return p.nodes[p.body].last.Copy()
}

// Start returns firstpos of the body followed by the end marker.
// It contains the end marker if and only if the body is nullable.
func (p *Positions) Start() *ints.Set {
	return p.nodes[p.root].first.Copy()
}

// Followpos returns positions that may follow pos, the end marker is followed by nothing.
func (p *Positions) Followpos(pos int) *ints.Set {
	return p.follow[pos].Copy()
}

// EachFollow calls f for every position following pos without copying the set.
func (p *Positions) EachFollow(pos int, f func(next int)) {
	p.follow[pos].Each(f)
}

// EachStart calls f for every start position without copying the set.
func (p *Positions) EachStart(f func(pos int)) {
	p.nodes[p.root].first.Each(f)
}
