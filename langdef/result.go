package langdef

import (
	"strconv"

	"github.com/tliron/commonlog"

	"github.com/cerfical/parsec/automaton"
	"github.com/cerfical/parsec/grammar"
	"github.com/cerfical/parsec/regex"
	"github.com/cerfical/parsec/source"
)

// Result holds grammars extracted from a grammar description.
// Tokens bodies are expressions over single characters, Rules bodies are expressions over
// token and rule names. Every token is declared in Rules.
type Result struct {
	Tokens *grammar.Grammar
	Rules  *grammar.Grammar

	// Aside lists tokens skipped by lexer.
	Aside []grammar.Symbol
}

func newResult() *Result {
	return &Result{Tokens: grammar.New(), Rules: grammar.New()}
}

// Builders returns builders for the lexer and the parser automata.
func (r *Result) Builders() (lexerBuilder, parserBuilder *automaton.Builder) {
	return automaton.NewBuilder(r.Tokens, automaton.Lexer), automaton.NewBuilder(r.Rules, automaton.Parser)
}

// Build builds the lexer and the parser automata.
func (r *Result) Build() (lexerAutomaton, parserAutomaton *automaton.Automaton, e error) {
	lb, pb := r.Builders()
	lexerAutomaton, e = lb.Build()
	if e == nil {
		parserAutomaton, e = pb.Build()
	}
	if e != nil {
		return nil, nil, e
	}
	return
}

// IsAside reports whether tokens of type name are skipped by lexer.
func (r *Result) IsAside(name grammar.Symbol) bool {
	for _, s := range r.Aside {
		if s == name {
			return true
		}
	}
	return false
}

// LiteralName returns the token name used for a string literal appearing in rules.
func LiteralName(text string) grammar.Symbol {
	return grammar.Symbol(strconv.Quote(text))
}

type reference struct {
	name string
	pos  position
}

type definer struct {
	log       commonlog.Logger
	result    *Result
	tokens    map[string]bool
	rules     map[string]bool
	literals  map[string]bool
	refs      []reference
	firstRule string
	root      *reference
	aside     []reference
}

func newDefiner() *definer {
	return &definer{
		log:      commonlog.GetLogger("parsec.langdef"),
		result:   newResult(),
		tokens:   make(map[string]bool),
		rules:    make(map[string]bool),
		literals: make(map[string]bool),
	}
}

// Parse converts grammar description in tokens/rules notation.
//
//	tokens {
//		NUM = "[0-9]+";
//		WS = `[ \t\n]+`;
//	}
//	rules {
//		expr = term ("+" term)*;
//		term = NUM | "(" expr ")";
//	}
//	aside WS;
//	root expr;
//
// Token patterns use Go regexp syntax, literal strings in rules define tokens implicitly.
// The first rule is the root one unless a root directive is present.
func Parse(s *source.Source) (*Result, error) {
	return ParseString(s.Name(), string(s.Content()))
}

// ParseString is like Parse but takes source name and text.
func ParseString(name, text string) (*Result, error) {
	f, e := parseMeta(name, text)
	if e != nil {
		return nil, e
	}

	d := newDefiner()
	for _, sec := range f.Sections {
		if e = d.section(sec); e != nil {
			return nil, e
		}
	}
	if e = d.finish(); e != nil {
		return nil, e
	}
	return d.result, nil
}

func (d *definer) section(sec *metaSection) error {
	for _, td := range sec.Tokens {
		if e := d.defineToken(td); e != nil {
			return e
		}
	}
	for _, rd := range sec.Rules {
		if e := d.defineRule(rd); e != nil {
			return e
		}
	}
	if sec.Root != nil {
		d.root = &reference{sec.Root.Name, lexerPos(sec.Root.Pos)}
	}
	for _, n := range sec.Aside {
		d.aside = append(d.aside, reference{n.Name, lexerPos(n.Pos)})
	}
	return nil
}

func (d *definer) defineToken(td *tokenDef) error {
	pos := lexerPos(td.Pos)
	if d.rules[td.Name] {
		return nameKindError(pos, td.Name)
	}

	pattern, e := strconv.Unquote(td.Pattern)
	if e != nil {
		return escapeError(pos, td.Pattern)
	}
	body, e := compilePattern(pos, pattern)
	if e != nil {
		return e
	}

	d.tokens[td.Name] = true
	d.result.Tokens.Define(grammar.Symbol(td.Name), body)
	d.result.Rules.Declare(grammar.Symbol(td.Name))
	d.log.Debugf("token %s = %s", td.Name, body)
	return nil
}

func (d *definer) defineLiteral(pos position, quoted string) (grammar.Symbol, error) {
	text, e := strconv.Unquote(quoted)
	if e != nil {
		return "", escapeError(pos, quoted)
	}
	if text == "" {
		return "", emptyNameError(pos)
	}

	name := LiteralName(text)
	if !d.literals[text] {
		d.literals[text] = true
		d.result.Tokens.Define(name, regex.Literal(text))
		d.result.Rules.Declare(name)
		d.log.Debugf("literal token %s", name)
	}
	return name, nil
}

func (d *definer) defineRule(rd *ruleDef) error {
	pos := lexerPos(rd.Pos)
	if d.tokens[rd.Name] {
		return nameKindError(pos, rd.Name)
	}

	body := regex.Empty()
	if rd.Body != nil {
		var e error
		body, e = d.expression(rd.Body)
		if e != nil {
			return e
		}
	}

	if d.firstRule == "" {
		d.firstRule = rd.Name
	}
	d.rules[rd.Name] = true
	d.result.Rules.Define(grammar.Symbol(rd.Name), body)
	d.log.Debugf("rule %s = %s", rd.Name, body)
	return nil
}

func (d *definer) expression(x *metaExpr) (*regex.Node, error) {
	alts := make([]*regex.Node, len(x.Alts))
	for i, seq := range x.Alts {
		terms := make([]*regex.Node, len(seq.Terms))
		for j, t := range seq.Terms {
			n, e := d.term(t)
			if e != nil {
				return nil, e
			}
			terms[j] = n
		}
		alts[i] = regex.Seq(terms...)
	}
	return regex.Alt(alts...), nil
}

func (d *definer) term(t *metaTerm) (*regex.Node, error) {
	pos := lexerPos(t.Pos)
	var n *regex.Node
	switch {
	case t.Name != nil:
		d.refs = append(d.refs, reference{*t.Name, pos})
		n = regex.Leaf(grammar.Symbol(*t.Name))

	case t.Literal != nil:
		name, e := d.defineLiteral(pos, *t.Literal)
		if e != nil {
			return nil, e
		}
		n = regex.Leaf(name)

	case t.Group != nil:
		var e error
		n, e = d.expression(t.Group)
		if e != nil {
			return nil, e
		}

	default:
		n = regex.Empty()
	}

	switch t.Repeat {
	case "*":
		n = regex.Star(n)
	case "+":
		n = regex.Plus(n)
	case "?":
		n = regex.Optional(n)
	}
	return n, nil
}

func (d *definer) finish() error {
	for _, ref := range d.refs {
		if !d.tokens[ref.name] && !d.rules[ref.name] {
			return undefinedNameError(ref.pos, ref.name)
		}
	}

	for _, ref := range d.aside {
		if !d.tokens[ref.name] {
			return undefinedNameError(ref.pos, ref.name)
		}
		d.result.Aside = append(d.result.Aside, grammar.Symbol(ref.name))
	}

	root := d.firstRule
	if d.root != nil {
		if !d.rules[d.root.name] {
			return RootError(d.root.name)
		}
		root = d.root.name
	}
	if root != "" {
		d.result.Rules.SetRoot(grammar.Symbol(root))
	}
	return nil
}
