package langdef

import (
	"regexp/syntax"
	"unicode"

	"github.com/cerfical/parsec"
	"github.com/cerfical/parsec/grammar"
	"github.com/cerfical/parsec/regex"
)

// maxClassSize limits the number of runes a character class may expand to.
const maxClassSize = 1024

type patternCompiler struct {
	pos     parsec.SourcePos
	pattern string
}

// compilePattern converts a token pattern to a regular expression over single-rune symbols.
// Patterns use Go regexp syntax without anchors and "any character" classes.
func compilePattern(pos parsec.SourcePos, pattern string) (*regex.Node, error) {
	re, e := syntax.Parse(pattern, syntax.Perl)
	if e != nil {
		return nil, syntaxError(pos, pattern, e)
	}

	pc := &patternCompiler{pos, pattern}
	return pc.convert(re)
}

func syntaxError(pos parsec.SourcePos, pattern string, e error) error {
	se, is := e.(*syntax.Error)
	if !is {
		return patternError(pos, pattern, e.Error())
	}

	switch se.Code {
	case syntax.ErrMissingParen, syntax.ErrUnexpectedParen:
		return parenError(pos, pattern)
	case syntax.ErrInvalidEscape, syntax.ErrInvalidUTF8:
		return escapeError(pos, pattern)
	case syntax.ErrInvalidCharRange:
		return charRangeError(pos, pattern)
	default:
		return patternError(pos, pattern, se.Error())
	}
}

func runeLeaf(r rune) *regex.Node {
	return regex.Leaf(grammar.Symbol(string(r)))
}

func (pc *patternCompiler) convert(re *syntax.Regexp) (*regex.Node, error) {
	switch re.Op {
	case syntax.OpEmptyMatch:
		return regex.Empty(), nil

	case syntax.OpLiteral:
		nodes := make([]*regex.Node, len(re.Rune))
		for i, r := range re.Rune {
			if re.Flags&syntax.FoldCase != 0 {
				nodes[i] = foldRune(r)
			} else {
				nodes[i] = runeLeaf(r)
			}
		}
		return regex.Seq(nodes...), nil

	case syntax.OpCharClass:
		return pc.class(re.Rune)

	case syntax.OpCapture:
		return pc.convert(re.Sub[0])

	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest:
		inner, e := pc.convert(re.Sub[0])
		if e != nil {
			return nil, e
		}
		switch re.Op {
		case syntax.OpStar:
			return regex.Star(inner), nil
		case syntax.OpPlus:
			return regex.Plus(inner), nil
		default:
			return regex.Optional(inner), nil
		}

	case syntax.OpRepeat:
		inner, e := pc.convert(re.Sub[0])
		if e != nil {
			return nil, e
		}
		return repeat(inner, re.Min, re.Max), nil

	case syntax.OpConcat, syntax.OpAlternate:
		nodes := make([]*regex.Node, len(re.Sub))
		for i, sub := range re.Sub {
			n, e := pc.convert(sub)
			if e != nil {
				return nil, e
			}
			nodes[i] = n
		}
		if re.Op == syntax.OpConcat {
			return regex.Seq(nodes...), nil
		}
		return regex.Alt(nodes...), nil

	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		return nil, patternError(pc.pos, pc.pattern, "any character class is not supported")

	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return nil, patternError(pc.pos, pc.pattern, "anchors are not supported")

	default:
		return nil, patternError(pc.pos, pc.pattern, "pattern never matches")
	}
}

func (pc *patternCompiler) class(ranges []rune) (*regex.Node, error) {
	size := 0
	for i := 0; i < len(ranges); i += 2 {
		size += int(ranges[i+1]-ranges[i]) + 1
		if size > maxClassSize {
			return nil, classError(pc.pos, pc.pattern, size)
		}
	}
	if size == 0 {
		return nil, patternError(pc.pos, pc.pattern, "empty character class")
	}

	nodes := make([]*regex.Node, 0, size)
	for i := 0; i < len(ranges); i += 2 {
		for r := ranges[i]; r <= ranges[i+1]; r++ {
			nodes = append(nodes, runeLeaf(r))
		}
	}
	return regex.Alt(nodes...), nil
}

func foldRune(r rune) *regex.Node {
	nodes := []*regex.Node{runeLeaf(r)}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		nodes = append(nodes, runeLeaf(f))
	}
	return regex.Alt(nodes...)
}

// repeat expands x{lo,hi}; hi < 0 means no upper bound.
func repeat(n *regex.Node, lo, hi int) *regex.Node {
	nodes := make([]*regex.Node, 0, lo+1)
	for i := 0; i < lo; i++ {
		nodes = append(nodes, n)
	}

	switch {
	case hi < 0:
		nodes = append(nodes, regex.Star(n))
	case hi > lo:
		tail := regex.Optional(n)
		for i := lo + 1; i < hi; i++ {
			tail = regex.Optional(regex.Concat(n, tail))
		}
		nodes = append(nodes, tail)
	}
	return regex.Seq(nodes...)
}
