package automaton

import (
	"sort"

	"github.com/tliron/commonlog"

	"github.com/cerfical/parsec/grammar"
	"github.com/cerfical/parsec/internal/bmap"
	"github.com/cerfical/parsec/internal/ints"
	"github.com/cerfical/parsec/internal/queue"
	"github.com/cerfical/parsec/regex"
)

// StateSink receives every state once construction of the state is finished.
// A non-nil error aborts construction and is returned by Build.
type StateSink interface {
	State(st *State) error
}

type rule struct {
	head   grammar.Symbol
	pos    *regex.Positions
	offset int
}

// Builder performs subset construction for one grammar.
// Builder keeps no state between Build calls, but a single Builder must not be used concurrently.
type Builder struct {
	grammar *grammar.Grammar
	mode    Mode
	limit   int
	sink    StateSink
	log     commonlog.Logger
}

type buildContext struct {
	*Builder
	rules     []rule
	ruleIndex map[grammar.Symbol]int
	owners    []int
	memo      *bmap.BMap[int]
	sets      []*ints.Set
	states    []*State
	pending   *queue.Queue[int]
}

func NewBuilder(g *grammar.Grammar, mode Mode) *Builder {
	return &Builder{grammar: g, mode: mode, log: commonlog.GetLogger("parsec.automaton")}
}

// SetLimit sets maximum number of states, 0 means no limit.
func (b *Builder) SetLimit(limit int) *Builder {
	b.limit = limit
	return b
}

func (b *Builder) SetSink(sink StateSink) *Builder {
	b.sink = sink
	return b
}

func (b *Builder) SetLogger(logger commonlog.Logger) *Builder {
	b.log = logger
	return b
}

// Build is a shortcut for NewBuilder(g, mode).Build().
func Build(g *grammar.Grammar, mode Mode) (*Automaton, error) {
	return NewBuilder(g, mode).Build()
}

// Build constructs the automaton. Construction stops at the first error.
func (b *Builder) Build() (*Automaton, error) {
	c := b.newContext()
	start := c.startSet()
	if start.IsEmpty() {
		b.log.Debugf("%s automaton: no items, no states", b.mode)
		return &Automaton{mode: b.mode}, nil
	}

	if _, e := c.intern(start); e != nil {
		return nil, e
	}
	for {
		id, fetched := c.pending.First()
		if !fetched {
			break
		}

		if e := c.process(id); e != nil {
			return nil, e
		}
	}

	b.log.Debugf("%s automaton: %d states", b.mode, len(c.states))
	return &Automaton{mode: b.mode, states: c.states}, nil
}

func (b *Builder) newContext() *buildContext {
	c := &buildContext{
		Builder:   b,
		ruleIndex: make(map[grammar.Symbol]int),
		memo:      bmap.New[int](0),
		pending:   queue.New[int](),
	}

	offset := 0
	for _, s := range b.grammar.Bodied() {
		body, _ := b.grammar.Resolve(s)
		p := regex.Analyze(s, body)
		c.ruleIndex[s] = len(c.rules)
		for i := 0; i < p.Len(); i++ {
			c.owners = append(c.owners, len(c.rules))
		}
		c.rules = append(c.rules, rule{s, p, offset})
		offset += p.Len()
	}
	return c
}

func (c *buildContext) decode(item int) (*rule, int) {
	r := &c.rules[c.owners[item]]
	return r, item - r.offset
}

func (c *buildContext) startSet() *ints.Set {
	result := ints.NewSet()
	for i := range c.rules {
		r := &c.rules[i]
		r.pos.EachStart(func(pos int) {
			result.Add(r.offset + pos)
		})
	}
	return result
}

// callee returns the rule referenced by the symbol expected at item, if any.
func (c *buildContext) callee(item int) (*rule, bool) {
	if c.mode != Parser {
		return nil, false
	}

	r, pos := c.decode(item)
	if r.pos.IsEnd(pos) {
		return nil, false
	}

	index, has := c.ruleIndex[r.pos.Value(pos)]
	if !has {
		return nil, false
	}
	return &c.rules[index], true
}

// closure adds start items of every rule referenced by items of set.
func (c *buildContext) closure(set *ints.Set) *ints.Set {
	if c.mode != Parser {
		return set
	}

	pending := queue.New(set.ToSlice()...)
	for {
		item, fetched := pending.First()
		if !fetched {
			break
		}

		callee, has := c.callee(item)
		if !has {
			continue
		}

		callee.pos.EachStart(func(pos int) {
			id := callee.offset + pos
			if !set.Contains(id) {
				set.Add(id)
				pending.Append(id)
			}
		})
	}
	return set
}

// intern returns state id for the item set, creating new state if the set is new.
func (c *buildContext) intern(set *ints.Set) (int, error) {
	set = c.closure(set)
	id, created := c.memo.Intern(set.Key(), func() int {
		return len(c.states)
	})
	if !created {
		return id, nil
	}

	if c.limit > 0 && id >= c.limit {
		return 0, stateLimitError(c.limit)
	}

	st := &State{id: id}
	set.Each(func(item int) {
		r, pos := c.decode(item)
		st.items = append(st.items, Item{r.head, pos})
	})
	c.states = append(c.states, st)
	c.sets = append(c.sets, set)
	c.pending.Append(id)
	c.log.Debugf("state %d: %d items", id, len(st.items))
	return id, nil
}

type pendingBacklink struct {
	rule, caller grammar.Symbol
	resume       int
}

func (c *buildContext) process(id int) error {
	st := c.states[id]
	successors := make(map[grammar.Symbol]*ints.Set)
	var labels []grammar.Symbol
	var backlinks []pendingBacklink
	var e error

	c.sets[id].Each(func(item int) {
		if e != nil {
			return
		}

		r, pos := c.decode(item)
		if r.pos.IsEnd(pos) {
			if !st.match.IsEmpty() && st.match != r.head {
				c.log.Debugf("state %d: %q conflicts with %q", id, r.head, st.match)
				e = conflictError(id, st.match, r.head)
				return
			}

			st.match = r.head
			return
		}

		v := r.pos.Value(pos)
		next, has := successors[v]
		if !has {
			next = ints.NewSet()
			successors[v] = next
			labels = append(labels, v)
		}
		r.pos.EachFollow(pos, func(follow int) {
			next.Add(r.offset + follow)
		})

		if _, calls := c.callee(item); calls {
			backlinks = append(backlinks, pendingBacklink{v, r.head, pos})
		}
	})
	if e != nil {
		return e
	}

	sort.Slice(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	})

	for _, label := range labels {
		target, e := c.intern(successors[label])
		if e != nil {
			return e
		}

		kind := TokenTransition
		if _, has := c.ruleIndex[label]; has && c.mode == Parser {
			kind = RuleTransition
		}
		st.transitions = append(st.transitions, Transition{label, target, kind})
	}

	for _, bl := range backlinks {
		target, _ := st.Next(bl.rule)
		st.backlinks = append(st.backlinks, Backlink{bl.rule, bl.caller, bl.resume, target})
	}

	if c.sink != nil {
		return c.sink.State(st)
	}
	return nil
}
