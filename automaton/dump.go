package automaton

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/cerfical/parsec/grammar"
	"github.com/cerfical/parsec/regex"
)

// Walk passes states to sink in id order, stops at the first error.
func (a *Automaton) Walk(sink StateSink) error {
	for _, st := range a.states {
		if e := sink.State(st); e != nil {
			return e
		}
	}
	return nil
}

// Dump is a serializable snapshot of an automaton for renderers and code generators.
type Dump struct {
	Mode   string      `json:"mode"`
	States []StateDump `json:"states"`
}

type StateDump struct {
	ID          int              `json:"id"`
	Start       bool             `json:"start,omitempty"`
	Match       string           `json:"match,omitempty"`
	Transitions []TransitionDump `json:"transitions,omitempty"`
	Backlinks   []BacklinkDump   `json:"backlinks,omitempty"`
	// Active indexes Backlinks, the first caller in item order, -1 without backlinks.
	Active      int              `json:"active"`
}

type TransitionDump struct {
	Label  string `json:"label"`
	Target int    `json:"target"`
	Rule   bool   `json:"rule,omitempty"`
}

type BacklinkDump struct {
	Rule   string `json:"rule"`
	Caller string `json:"caller"`
	Resume int    `json:"resume"`
	Target int    `json:"target"`
}

type dumper struct {
	dump *Dump
}

func (d dumper) State(st *State) error {
	sd := StateDump{ID: st.id, Start: st.IsStart(), Match: string(st.match), Active: st.Active()}
	for _, t := range st.transitions {
		sd.Transitions = append(sd.Transitions, TransitionDump{string(t.Label), t.Target, t.Kind == RuleTransition})
	}
	for _, bl := range st.backlinks {
		sd.Backlinks = append(sd.Backlinks, BacklinkDump{string(bl.Rule), string(bl.Caller), bl.Resume, bl.Target})
	}
	d.dump.States = append(d.dump.States, sd)
	return nil
}

// Dump returns a snapshot of all states.
func (a *Automaton) Dump() *Dump {
	result := &Dump{Mode: a.mode.String(), States: []StateDump{}}
	_ = a.Walk(dumper{result})
	return result
}

// Printer writes human-readable state descriptions. Printer implements StateSink,
// so it can be attached to a Builder to trace construction.
type Printer struct {
	w    *bufio.Writer
	mode Mode
}

func NewPrinter(w io.Writer, mode Mode) *Printer {
	return &Printer{bufio.NewWriter(w), mode}
}

func (p *Printer) label(s grammar.Symbol) string {
	if p.mode == Lexer {
		return strconv.Quote(string(s))
	}
	return regex.SymbolString(s)
}

func (p *Printer) State(st *State) error {
	fmt.Fprintf(p.w, "state %d", st.id)
	if st.IsStart() {
		p.w.WriteString(" (start)")
	}
	p.w.WriteByte('\n')

	if m, has := st.Match(); has {
		fmt.Fprintf(p.w, "  match %s\n", m)
	}
	for _, t := range st.transitions {
		arrow := "->"
		if t.Kind == RuleTransition {
			arrow = "=>"
		}
		fmt.Fprintf(p.w, "  %s %s %d\n", p.label(t.Label), arrow, t.Target)
	}
	for i, bl := range st.backlinks {
		fmt.Fprintf(p.w, "  backlink %s from %s@%d -> %d", bl.Rule, bl.Caller, bl.Resume, bl.Target)
		if i == st.Active() {
			p.w.WriteString(" (active)")
		}
		p.w.WriteByte('\n')
	}
	return p.w.Flush()
}

// Fprint writes all states of a to w.
func Fprint(w io.Writer, a *Automaton) error {
	return a.Walk(NewPrinter(w, a.mode))
}
