package langdef

import (
	"strings"

	"github.com/cerfical/parsec"
)

// Error codes used by langdef:
const (
	UnexpectedEofError = parsec.LangDefErrors + iota
	UnexpectedCharError
	UnexpectedTokenError
	InvalidEscapeError
	UnmatchedParenError
	CharRangeError
	WrongPatternError
	EmptyNameError
	NameKindError
	UndefinedNameError
	ClassTooLargeError
	RecursionError
	UnknownRootError
)

func eofError(pos parsec.SourcePos) *parsec.Error {
	return parsec.FormatErrorPos(pos, UnexpectedEofError, "unexpected end of file")
}

func unexpectedCharError(pos parsec.SourcePos, msg string) *parsec.Error {
	return parsec.FormatErrorPos(pos, UnexpectedCharError, "unexpected character: %s", msg)
}

func unexpectedTokenError(pos parsec.SourcePos, text string) *parsec.Error {
	return parsec.FormatErrorPos(pos, UnexpectedTokenError, "unexpected %q", text)
}

func escapeError(pos parsec.SourcePos, text string) *parsec.Error {
	return parsec.FormatErrorPos(pos, InvalidEscapeError, "invalid escape sequence in %s", text)
}

func parenError(pos parsec.SourcePos, pattern string) *parsec.Error {
	return parsec.FormatErrorPos(pos, UnmatchedParenError, "unmatched parenthesis in pattern %q", pattern)
}

func charRangeError(pos parsec.SourcePos, pattern string) *parsec.Error {
	return parsec.FormatErrorPos(pos, CharRangeError, "invalid character range in pattern %q", pattern)
}

func patternError(pos parsec.SourcePos, pattern, reason string) *parsec.Error {
	return parsec.FormatErrorPos(pos, WrongPatternError, "incorrect pattern %q (%s)", pattern, reason)
}

func emptyNameError(pos parsec.SourcePos) *parsec.Error {
	return parsec.FormatErrorPos(pos, EmptyNameError, "empty literal cannot be used as a token")
}

func nameKindError(pos parsec.SourcePos, name string) *parsec.Error {
	return parsec.FormatErrorPos(pos, NameKindError, "%q is defined both as a token and as a rule", name)
}

func lexicalRefError(pos parsec.SourcePos, name string) *parsec.Error {
	return parsec.FormatErrorPos(pos, NameKindError, "lexical production refers to rule %q", name)
}

func undefinedNameError(pos parsec.SourcePos, name string) *parsec.Error {
	return parsec.FormatErrorPos(pos, UndefinedNameError, "undefined name %q", name)
}

func classError(pos parsec.SourcePos, pattern string, size int) *parsec.Error {
	return parsec.FormatErrorPos(pos, ClassTooLargeError, "character class of %d runes in pattern %q exceeds %d", size, pattern, maxClassSize)
}

func recursionError(names []string) *parsec.Error {
	return parsec.FormatError(RecursionError, "recursive lexical productions: %s", strings.Join(names, ", "))
}

// RootError reports a root name that is missing or does not name a rule.
func RootError(name string) *parsec.Error {
	return parsec.FormatError(UnknownRootError, "root %q is not a rule", name)
}
