package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cerfical/parsec/automaton"
)

type buildOutput struct {
	Lexer  *automaton.Dump `json:"lexer,omitempty"`
	Parser *automaton.Dump `json:"parser,omitempty"`
}

func (a *app) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Build automata and print their states",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := a.v.GetString("format")
			mode := a.v.GetString("mode")
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q", format)
			}
			if mode != "both" && mode != "lexer" && mode != "parser" {
				return fmt.Errorf("unknown mode %q", mode)
			}

			r, err := a.loadGrammar(args[0])
			if err != nil {
				return err
			}
			lexerAutomaton, parserAutomaton, err := a.buildAutomata(r)
			if err != nil {
				return err
			}
			if mode == "lexer" {
				parserAutomaton = nil
			} else if mode == "parser" {
				lexerAutomaton = nil
			}

			w := cmd.OutOrStdout()
			if outFileName := a.v.GetString("output"); outFileName != "" {
				f, err := os.Create(outFileName)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if format == "json" {
				return writeJSON(w, lexerAutomaton, parserAutomaton)
			}
			return writeText(w, lexerAutomaton, parserAutomaton)
		},
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", "text", "output format: text or json")
	flags.StringP("mode", "m", "both", "automata to output: both, lexer, or parser")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	for _, name := range []string{"format", "mode", "output"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}
	return cmd
}

func writeText(w io.Writer, automata ...*automaton.Automaton) error {
	for _, a := range automata {
		if a == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "# %s automaton, %d states\n", a.Mode(), a.Len()); err != nil {
			return err
		}
		if err := automaton.Fprint(w, a); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, lexerAutomaton, parserAutomaton *automaton.Automaton) error {
	var out buildOutput
	if lexerAutomaton != nil {
		out.Lexer = lexerAutomaton.Dump()
	}
	if parserAutomaton != nil {
		out.Parser = parserAutomaton.Dump()
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
