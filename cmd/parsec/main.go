/*
parsec is a console utility building lexer and parser automata from grammar descriptions.
Usage is

	parsec build [-f text|json] [-m both|lexer|parser] [-o <name>] <file>
	parsec check <file>
	parsec match [--files] <file> <input>...

Global flags:

--ebnf treats <file> as Go EBNF grammar, --root <name> is then required;

--limit <n> limits the number of states of each automaton;

-v increases log verbosity, may be repeated; --log-file <name> writes log to file.

Flags may be set with PARSEC_* environment variables (e.g. PARSEC_LIMIT) or in .parsec.yaml
config file in current directory.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
