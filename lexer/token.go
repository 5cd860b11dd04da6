package lexer

import (
	"github.com/cerfical/parsec/grammar"
	"github.com/cerfical/parsec/source"
)

const (
	EofTokenName = "-end-of-file-"
	EoiTokenName = "-end-of-input-"
)

// Token is a lexeme fetched by Lexer. Token implements parsec.SourcePos.
type Token struct {
	typeName grammar.Symbol
	text     string
	pos      source.Pos
}

func NewToken(typeName grammar.Symbol, text string, pos source.Pos) *Token {
	return &Token{typeName, text, pos}
}

// Type returns the name of the matched token definition.
func (t *Token) Type() grammar.Symbol {
	return t.typeName
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) Source() *source.Source {
	return t.pos.Source()
}

func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

// Pos returns byte offset of the token in its source.
func (t *Token) Pos() int {
	return t.pos.Pos()
}

func (t *Token) Line() int {
	return t.pos.Line()
}

func (t *Token) Col() int {
	return t.pos.Col()
}

func (t *Token) IsEof() bool {
	return t.typeName == EofTokenName
}

func (t *Token) IsEoi() bool {
	return t.typeName == EoiTokenName
}

// EofToken marks the end of source s.
func EofToken(s *source.Source) *Token {
	return &Token{typeName: EofTokenName, pos: source.NewPos(s, s.Len())}
}

// EoiToken marks the end of input, i.e. there are no sources left.
func EoiToken() *Token {
	return &Token{typeName: EoiTokenName}
}
