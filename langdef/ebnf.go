package langdef

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/cerfical/parsec"
	"github.com/cerfical/parsec/grammar"
	"github.com/cerfical/parsec/regex"
)

// ParseEBNF converts a grammar written in Go EBNF notation, root names the start production.
// Productions with lowercase names are lexical. Lexical productions referenced from syntactic
// ones become tokens, the rest are inlined into tokens that use them.
// Whitespace is not skipped implicitly, Result.Aside is empty.
func ParseEBNF(name string, src io.Reader, root string) (*Result, error) {
	g, e := ebnf.Parse(name, src)
	if e != nil {
		return nil, ebnfError(name, UnexpectedTokenError, e)
	}

	if prod, has := g[root]; !has || isLexical(prod.Name.String) {
		return nil, RootError(root)
	}
	if e = checkEBNF(g); e != nil {
		return nil, e
	}
	// only unreachable productions are left to report
	if e = ebnf.Verify(g, root); e != nil {
		return nil, ebnfError(name, UndefinedNameError, e)
	}

	c := &ebnfConverter{
		definer:   newDefiner(),
		grammar:   g,
		fragments: make(map[string]*regex.Node),
		expanding: make(map[string]bool),
	}
	return c.convert(root)
}

// ebnfError converts the first of the errors reported by ebnf.Parse or ebnf.Verify.
// They come as "file:line:col: message" texts.
func ebnfError(name string, code int, e error) *parsec.Error {
	text := e.Error()
	prefix := name
	if prefix == "" {
		prefix = "<input>"
	}

	var line, col int
	if rest, ok := strings.CutPrefix(text, prefix); ok {
		if n, _ := fmt.Sscanf(rest, ":%d:%d:", &line, &col); n == 2 {
			_, msg, _ := strings.Cut(rest, ": ")
			return parsec.FormatErrorPos(position{name, line, col}, code, "%s", msg)
		}
	}
	return parsec.FormatError(code, "%s", text)
}

func sortedProductions(g ebnf.Grammar) []*ebnf.Production {
	result := make([]*ebnf.Production, 0, len(g))
	for _, prod := range g {
		result = append(result, prod)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name.StringPos.Offset < result[j].Name.StringPos.Offset
	})
	return result
}

// checkEBNF reports undefined names, lexical productions referring to rules and malformed ranges,
// in source order.
func checkEBNF(g ebnf.Grammar) error {
	var check func(x ebnf.Expression, lexical bool) error
	check = func(x ebnf.Expression, lexical bool) error {
		var list []ebnf.Expression
		switch x := x.(type) {
		case *ebnf.Name:
			if _, has := g[x.String]; !has {
				return undefinedNameError(scannerPos(x.Pos()), x.String)
			}
			if lexical && !isLexical(x.String) {
				return lexicalRefError(scannerPos(x.Pos()), x.String)
			}
			return nil

		case *ebnf.Range:
			_, _, e := rangeBounds(x)
			return e

		case *ebnf.Group:
			return check(x.Body, lexical)
		case *ebnf.Option:
			return check(x.Body, lexical)
		case *ebnf.Repetition:
			return check(x.Body, lexical)
		case ebnf.Sequence:
			list = x
		case ebnf.Alternative:
			list = x
		}

		for _, item := range list {
			if e := check(item, lexical); e != nil {
				return e
			}
		}
		return nil
	}

	for _, prod := range sortedProductions(g) {
		if e := check(prod.Expr, isLexical(prod.Name.String)); e != nil {
			return e
		}
	}
	return nil
}

// rangeBounds returns the bounds of a "a" … "z" range, both single characters in increasing order.
func rangeBounds(x *ebnf.Range) (first, last rune, err error) {
	pos := scannerPos(x.Pos())
	text := x.Begin.String + "…" + x.End.String
	first, fsize := utf8.DecodeRuneInString(x.Begin.String)
	last, lsize := utf8.DecodeRuneInString(x.End.String)
	if fsize != len(x.Begin.String) || lsize != len(x.End.String) || fsize == 0 || lsize == 0 {
		return 0, 0, patternError(pos, text, "range bounds must be single characters")
	}
	if first >= last {
		return 0, 0, charRangeError(pos, text)
	}
	return first, last, nil
}

func isLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsLower(r)
}

type ebnfConverter struct {
	*definer
	grammar    ebnf.Grammar
	fragments  map[string]*regex.Node
	expanding  map[string]bool
	usedTokens []string
}

func (c *ebnfConverter) convert(root string) (*Result, error) {
	for _, prod := range sortedProductions(c.grammar) {
		if isLexical(prod.Name.String) {
			continue
		}

		body, e := c.syntactic(prod.Expr)
		if e != nil {
			return nil, e
		}
		c.result.Rules.Define(grammar.Symbol(prod.Name.String), body)
		c.log.Debugf("rule %s = %s", prod.Name.String, body)
	}

	for _, name := range c.usedTokens {
		body, e := c.fragment(name)
		if e != nil {
			return nil, e
		}
		c.result.Tokens.Define(grammar.Symbol(name), body)
		c.result.Rules.Declare(grammar.Symbol(name))
		c.log.Debugf("token %s = %s", name, body)
	}

	c.result.Rules.SetRoot(grammar.Symbol(root))
	return c.result, nil
}

func (c *ebnfConverter) syntactic(x ebnf.Expression) (*regex.Node, error) {
	switch x := x.(type) {
	case nil:
		return regex.Empty(), nil

	case *ebnf.Name:
		if isLexical(x.String) && !c.tokens[x.String] {
			c.tokens[x.String] = true
			c.usedTokens = append(c.usedTokens, x.String)
		}
		return regex.Leaf(grammar.Symbol(x.String)), nil

	case *ebnf.Token:
		if x.String == "" {
			return nil, emptyNameError(scannerPos(x.Pos()))
		}
		name := LiteralName(x.String)
		if !c.literals[x.String] {
			c.literals[x.String] = true
			c.result.Tokens.Define(name, regex.Literal(x.String))
			c.result.Rules.Declare(name)
		}
		return regex.Leaf(name), nil

	case *ebnf.Range:
		return nil, patternError(scannerPos(x.Pos()), x.Begin.String+"…"+x.End.String, "ranges are allowed in lexical productions only")

	default:
		return c.compound(x, c.syntactic)
	}
}

// compound converts operators shared by syntactic and lexical productions.
func (c *ebnfConverter) compound(x ebnf.Expression, conv func(ebnf.Expression) (*regex.Node, error)) (*regex.Node, error) {
	var list []ebnf.Expression
	switch x := x.(type) {
	case *ebnf.Group:
		return conv(x.Body)

	case *ebnf.Option:
		n, e := conv(x.Body)
		if e != nil {
			return nil, e
		}
		return regex.Optional(n), nil

	case *ebnf.Repetition:
		n, e := conv(x.Body)
		if e != nil {
			return nil, e
		}
		return regex.Star(n), nil

	case ebnf.Sequence:
		list = x
	case ebnf.Alternative:
		list = x
	default:
		return nil, patternError(scannerPos(x.Pos()), "", "unsupported expression")
	}

	nodes := make([]*regex.Node, len(list))
	for i, item := range list {
		n, e := conv(item)
		if e != nil {
			return nil, e
		}
		nodes[i] = n
	}
	if _, isSeq := x.(ebnf.Sequence); isSeq {
		return regex.Seq(nodes...), nil
	}
	return regex.Alt(nodes...), nil
}

// fragment returns the expanded body of a lexical production.
func (c *ebnfConverter) fragment(name string) (*regex.Node, error) {
	if n, has := c.fragments[name]; has {
		return n, nil
	}
	if c.expanding[name] {
		names := make([]string, 0, len(c.expanding))
		for n := range c.expanding {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, recursionError(names)
	}

	c.expanding[name] = true
	n, e := c.lexical(c.grammar[name].Expr)
	delete(c.expanding, name)
	if e != nil {
		return nil, e
	}
	c.fragments[name] = n
	return n, nil
}

func (c *ebnfConverter) lexical(x ebnf.Expression) (*regex.Node, error) {
	switch x := x.(type) {
	case nil:
		return regex.Empty(), nil

	case *ebnf.Name:
		return c.fragment(x.String)

	case *ebnf.Token:
		return regex.Literal(x.String), nil

	case *ebnf.Range:
		return c.charRange(x)

	default:
		return c.compound(x, c.lexical)
	}
}

func (c *ebnfConverter) charRange(x *ebnf.Range) (*regex.Node, error) {
	first, last, e := rangeBounds(x)
	if e != nil {
		return nil, e
	}

	size := int(last-first) + 1
	if size > maxClassSize {
		return nil, classError(scannerPos(x.Pos()), x.Begin.String+"…"+x.End.String, size)
	}
	nodes := make([]*regex.Node, 0, size)
	for r := first; r <= last; r++ {
		nodes = append(nodes, runeLeaf(r))
	}
	return regex.Alt(nodes...), nil
}
