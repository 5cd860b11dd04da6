package automaton

import (
	"unicode/utf8"

	"github.com/cerfical/parsec/grammar"
)

// Match runs a Lexer mode automaton over input and returns the symbol matched by the longest
// matching prefix and its length in symbols. Returns zero length and empty symbol if no prefix matches.
func (a *Automaton) Match(input []grammar.Symbol) (grammar.Symbol, int, error) {
	if a.mode != Lexer {
		return "", 0, modeError("Match", a.mode)
	}

	i := 0
	return a.run(func() (grammar.Symbol, int, bool) {
		if i >= len(input) {
			return "", 0, false
		}
		i++
		return input[i-1], 1, true
	})
}

// MatchString is like Match but reads characters from text and returns the match length in bytes.
func (a *Automaton) MatchString(text string) (grammar.Symbol, int, error) {
	if a.mode != Lexer {
		return "", 0, modeError("MatchString", a.mode)
	}

	offset := 0
	return a.run(func() (grammar.Symbol, int, bool) {
		if offset >= len(text) {
			return "", 0, false
		}
		_, size := utf8.DecodeRuneInString(text[offset:])
		s := grammar.Symbol(text[offset : offset+size])
		offset += size
		return s, size, true
	})
}

func (a *Automaton) run(next func() (grammar.Symbol, int, bool)) (grammar.Symbol, int, error) {
	st := a.Start()
	if st == nil {
		return "", 0, nil
	}

	var matched grammar.Symbol
	length, matchedLength := 0, 0
	for {
		if m, has := st.Match(); has {
			matched, matchedLength = m, length
		}

		s, size, fetched := next()
		if !fetched {
			break
		}
		target, has := st.Next(s)
		if !has {
			break
		}
		st = a.states[target]
		length += size
	}
	return matched, matchedLength, nil
}
