// Package grammar defines a named collection of symbol bodies used to build automata.
package grammar

import (
	"github.com/cerfical/parsec/regex"
)

// Symbol is a grammar symbol, compared by name. Empty symbol denotes absence.
type Symbol = regex.Symbol

// Grammar maps symbols to their bodies.
// Symbols are listed in declaration order; redefinition of a symbol adds an alternative to its body.
// A Grammar is built once and must not be modified while automata are built from it.
type Grammar struct {
	bodies map[Symbol]*regex.Node
	order  []Symbol
	root   Symbol
}

func New() *Grammar {
	return &Grammar{bodies: make(map[Symbol]*regex.Node)}
}

func (g *Grammar) add(s Symbol) bool {
	if _, has := g.bodies[s]; has {
		return false
	}

	g.bodies[s] = nil
	g.order = append(g.order, s)
	return true
}

// Define adds body to symbol s. If s already has a body, the result is the alternation of both.
// Panics if s is empty.
func (g *Grammar) Define(s Symbol, body *regex.Node) {
	if s.IsEmpty() {
		panic("grammar: empty symbol name")
	}
	if body == nil {
		body = regex.Empty()
	}

	g.add(s)
	if existing := g.bodies[s]; existing != nil {
		body = regex.Alternate(existing, body)
	}
	g.bodies[s] = body
}

// Declare adds symbol s with no body, so that it can be referenced from other bodies.
// Declaring an already known symbol changes nothing.
func (g *Grammar) Declare(s Symbol) {
	if s.IsEmpty() {
		panic("grammar: empty symbol name")
	}
	g.add(s)
}

// Resolve returns body of s, the flag is false if s has no body.
func (g *Grammar) Resolve(s Symbol) (*regex.Node, bool) {
	body := g.bodies[s]
	return body, body != nil
}

// Contains reports whether s is declared or defined.
func (g *Grammar) Contains(s Symbol) bool {
	_, has := g.bodies[s]
	return has
}

// HasBody reports whether s is defined with a body.
func (g *Grammar) HasBody(s Symbol) bool {
	return g.bodies[s] != nil
}

func (g *Grammar) SetRoot(s Symbol) {
	g.root = s
}

// Root returns root symbol or empty symbol if no root is set.
func (g *Grammar) Root() Symbol {
	return g.root
}

// Symbols returns all known symbols in declaration order.
func (g *Grammar) Symbols() []Symbol {
	result := make([]Symbol, len(g.order))
	copy(result, g.order)
	return result
}

// Bodied returns symbols that have bodies, in declaration order.
func (g *Grammar) Bodied() []Symbol {
	result := make([]Symbol, 0, len(g.order))
	for _, s := range g.order {
		if g.bodies[s] != nil {
			result = append(result, s)
		}
	}
	return result
}

func (g *Grammar) Len() int {
	return len(g.order)
}
