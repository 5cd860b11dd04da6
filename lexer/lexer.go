// Package lexer defines lexical analyzer driven by a lexer automaton.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/cerfical/parsec"
	"github.com/cerfical/parsec/automaton"
	"github.com/cerfical/parsec/grammar"
	"github.com/cerfical/parsec/source"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	WrongCharError = parsec.LexicalErrors + iota

	// WrongAutomatonError indicates an attempt to create lexer for a parser automaton.
	WrongAutomatonError
)

// Lexer splits source text into tokens, each token is the longest prefix matched by the automaton.
// Lexer is immutable and may be used with different queues concurrently, but it affects queue state.
type Lexer struct {
	automaton *automaton.Automaton
	aside     map[grammar.Symbol]bool
}

// New creates new Lexer. Tokens named in aside are insignificant (e.g. whitespace),
// lexer skips them.
func New(a *automaton.Automaton, aside ...grammar.Symbol) (*Lexer, error) {
	if a.Mode() != automaton.Lexer {
		return nil, parsec.FormatError(WrongAutomatonError, "lexer requires %s automaton, got %s", automaton.Lexer, a.Mode())
	}

	l := &Lexer{automaton: a, aside: make(map[grammar.Symbol]bool, len(aside))}
	for _, s := range aside {
		l.aside[s] = true
	}
	return l, nil
}

func wrongCharError(pos source.Pos, content []byte) *parsec.Error {
	r, _ := utf8.DecodeRune(content)
	msg := fmt.Sprintf("wrong char %q (u+%x)", r, r)
	return parsec.NewError(WrongCharError, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// match returns the longest non-empty prefix of content matched by the automaton and shorter than limit.
func (l *Lexer) match(content []byte, limit int) (grammar.Symbol, int) {
	st := l.automaton.Start()
	if st == nil {
		return "", 0
	}

	var matched grammar.Symbol
	matchedLen := 0
	for offset := 0; ; {
		if m, has := st.Match(); has && offset > 0 {
			matched, matchedLen = m, offset
		}
		if offset >= len(content) {
			break
		}

		_, size := utf8.DecodeRune(content[offset:])
		if offset+size >= limit {
			break
		}
		target, has := st.Next(grammar.Symbol(content[offset : offset+size]))
		if !has {
			break
		}
		st = l.automaton.State(target)
		offset += size
	}
	return matched, matchedLen
}

func (l *Lexer) fetch(q *source.Queue) (*Token, error) {
	content, pos := q.ContentPos()
	content = content[pos:]
	sp := q.SourcePos()
	name, size := l.match(content, len(content)+1)
	if size == 0 {
		return nil, wrongCharError(sp, content)
	}

	q.Skip(size)
	return NewToken(name, string(content[:size]), sp), nil
}

// Next fetches token starting at current source position and advances current position.
// Returns nil token and parsec.Error and does not make any changes if there is a lexical error.
// Returns EoI token if queue is empty.
// Returns EoF token and discards current source if current position is at the end of current source.
func (l *Lexer) Next(q *source.Queue) (*Token, error) {
	for {
		if q.IsEmpty() {
			return EoiToken(), nil
		}

		if q.AtEnd() {
			src := q.Source()
			q.NextSource()
			return EofToken(src), nil
		}

		tok, e := l.fetch(q)
		if e != nil || !l.aside[tok.Type()] {
			return tok, e
		}
	}
}

// Shrink replaces tok, the last token fetched from current source of q, with the longest
// shorter token and moves current position accordingly.
// Returns nil and makes no changes if there is no such token.
func (l *Lexer) Shrink(q *source.Queue, tok *Token) *Token {
	if tok == nil || tok.Source() == nil || tok.Source() != q.Source() || len(tok.Text()) <= 1 {
		return nil
	}

	content := tok.Source().Content()[tok.Pos():]
	name, size := l.match(content, len(tok.Text()))
	if size == 0 {
		return nil
	}

	q.Seek(tok.Pos() + size)
	return NewToken(name, tok.Text()[:size], tok.pos)
}
