/*
Package parsec is the core of a parser generator: it turns a grammar, written as
token and rule definitions whose bodies are regular expressions over grammar symbols,
into finite-state machines.

Consists of subpackages:
  - regex: immutable regular expression trees over symbols and position analysis
    (nullable, firstpos, lastpos, followpos);
  - grammar: named collection of symbol bodies;
  - automaton: subset construction producing a lexer DFA or a parser
    recursive-transition network, plus conflict diagnostics;
  - langdef: converts grammar descriptions (tokens/rules sections or EBNF) to grammars;
  - lexer: tokenizer driven by a lexer automaton;
  - source: source files and source queue used by lexer;
  - cmd/parsec: console utility building and dumping automata.

Typical usage is:

1. Describe grammar in the tokens/rules language and parse it using langdef.

2. Build the lexer and the parser automata with automaton.Build.

3. Walk automaton states or dump them for a code generator.
*/
package parsec

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	LangDefErrors   = 1   // used by langdef
	LexicalErrors   = 101 // used by lexer
	AutomatonErrors = 201 // used by automaton
)

// Error is the error type used by parsec subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name != "" {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		} else {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		}
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
