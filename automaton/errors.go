package automaton

import (
	"github.com/cerfical/parsec"
	"github.com/cerfical/parsec/grammar"
)

// Error codes used by automaton:
const (
	// NameConflictError indicates that two different symbols are fully matched in the same state.
	NameConflictError = parsec.AutomatonErrors + iota

	// StateLimitError indicates that construction produced more states than the configured limit.
	StateLimitError

	// ModeError indicates an operation that is not supported by the automaton mode.
	ModeError
)

// ConflictError is returned when two rules match identically in some state.
// It unwraps to *parsec.Error with NameConflictError code.
type ConflictError struct {
	State         int
	First, Second grammar.Symbol
	err           *parsec.Error
}

func conflictError(state int, first, second grammar.Symbol) *ConflictError {
	return &ConflictError{
		State:  state,
		First:  first,
		Second: second,
		err:    parsec.FormatError(NameConflictError, "name conflict: %q and %q both match in state %d", first, second, state),
	}
}

func (e *ConflictError) Error() string {
	return e.err.Error()
}

func (e *ConflictError) Unwrap() error {
	return e.err
}

func stateLimitError(limit int) *parsec.Error {
	return parsec.FormatError(StateLimitError, "state limit of %d exceeded", limit)
}

func modeError(operation string, mode Mode) *parsec.Error {
	return parsec.FormatError(ModeError, "%s is not supported in %s mode", operation, mode)
}
