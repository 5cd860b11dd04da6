// Package automaton builds finite-state machines from grammars using position-based subset construction.
//
// In Lexer mode every body is a pattern over characters and the result is a DFA whose
// states carry match markers. In Parser mode bodies are expressions over grammar symbols;
// a reference to a symbol with a body adds that symbol's start items to the same state and
// produces a rule transition plus a backlink, so the result is a recursive-transition network.
package automaton

import (
	"sort"

	"github.com/cerfical/parsec/grammar"
)

// Mode selects how symbols expected by items are treated.
type Mode int

const (
	// Lexer mode treats every leaf value as a literal alphabet element.
	Lexer Mode = iota
	// Parser mode descends into bodies of referenced symbols.
	Parser
)

func (m Mode) String() string {
	switch m {
	case Lexer:
		return "lexer"
	case Parser:
		return "parser"
	default:
		return "unknown"
	}
}

// Item means "partway through Head's body, expecting the symbol at Pos".
// Pos equal to the end marker position means Head is fully matched.
type Item struct {
	Head grammar.Symbol
	Pos  int
}

// TransitionKind distinguishes terminal shifts from descents into referenced rules.
type TransitionKind int

const (
	TokenTransition TransitionKind = iota
	RuleTransition
)

type Transition struct {
	Label  grammar.Symbol
	Target int
	Kind   TransitionKind
}

// Backlink describes where Caller resumes once Rule, called at Caller's position Resume, is matched.
// Target is the state reached by the rule transition on Rule.
// Backlinks of a state follow the order of caller items, the first one is the active backlink.
type Backlink struct {
	Rule   grammar.Symbol
	Caller grammar.Symbol
	Resume int
	Target int
}

// State is an automaton state. States are read-only once built.
type State struct {
	id          int
	match       grammar.Symbol
	items       []Item
	transitions []Transition
	backlinks   []Backlink
}

func (st *State) ID() int {
	return st.id
}

// IsStart reports whether this is the start state, which is always state 0.
func (st *State) IsStart() bool {
	return st.id == 0
}

// Match returns the symbol matched in this state; the flag is false if nothing is matched.
func (st *State) Match() (grammar.Symbol, bool) {
	return st.match, !st.match.IsEmpty()
}

// Items returns the item set defining this state, ordered by declaration order of heads and by position.
func (st *State) Items() []Item {
	return append([]Item(nil), st.items...)
}

// Transitions returns all transitions ordered by label.
func (st *State) Transitions() []Transition {
	return append([]Transition(nil), st.transitions...)
}

func (st *State) filterTransitions(kind TransitionKind) []Transition {
	var result []Transition
	for _, t := range st.transitions {
		if t.Kind == kind {
			result = append(result, t)
		}
	}
	return result
}

// TokenTransitions returns transitions shifting terminal symbols.
func (st *State) TokenTransitions() []Transition {
	return st.filterTransitions(TokenTransition)
}

// RuleTransitions returns transitions taken after a referenced rule is matched.
func (st *State) RuleTransitions() []Transition {
	return st.filterTransitions(RuleTransition)
}

// Next returns target state for label; the flag is false if there is no such transition.
func (st *State) Next(label grammar.Symbol) (int, bool) {
	i := sort.Search(len(st.transitions), func(i int) bool {
		return st.transitions[i].Label >= label
	})
	if i < len(st.transitions) && st.transitions[i].Label == label {
		return st.transitions[i].Target, true
	}
	return 0, false
}

func (st *State) Backlinks() []Backlink {
	return append([]Backlink(nil), st.backlinks...)
}

// Active returns index of the backlink used when the caller is not known, or -1 if there are no backlinks.
// It is the backlink of the first caller in item order. Renderers that know the caller use Resolve.
func (st *State) Active() int {
	if len(st.backlinks) == 0 {
		return -1
	}
	return 0
}

// Resolve returns the state where caller resumes after rule is matched.
// Each caller is resolved separately even if several callers entered rule in this state.
func (st *State) Resolve(rule, caller grammar.Symbol) (int, bool) {
	for _, bl := range st.backlinks {
		if bl.Rule == rule && bl.Caller == caller {
			return bl.Target, true
		}
	}
	return 0, false
}

// Automaton owns the list of states. State 0 is the start state.
// An automaton built from a grammar without bodies has no states.
type Automaton struct {
	mode   Mode
	states []*State
}

func (a *Automaton) Mode() Mode {
	return a.mode
}

func (a *Automaton) Len() int {
	return len(a.states)
}

func (a *Automaton) IsEmpty() bool {
	return len(a.states) == 0
}

// State returns state by id, panics if id is out of range.
func (a *Automaton) State(id int) *State {
	return a.states[id]
}

func (a *Automaton) States() []*State {
	return append([]*State(nil), a.states...)
}

// Start returns the start state or nil if the automaton is empty.
func (a *Automaton) Start() *State {
	if len(a.states) == 0 {
		return nil
	}
	return a.states[0]
}
