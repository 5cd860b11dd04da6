package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cerfical/parsec/lexer"
	"github.com/cerfical/parsec/source"
)

func (a *app) newMatchCmd() *cobra.Command {
	var inputFiles bool

	cmd := &cobra.Command{
		Use:   "match <file> <input>...",
		Short: "Split inputs into tokens",
		Long:  "Split inputs into tokens using the lexer automaton and print one token per line.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.loadGrammar(args[0])
			if err != nil {
				return err
			}
			lexerAutomaton, _, err := a.buildAutomata(r)
			if err != nil {
				return err
			}
			l, err := lexer.New(lexerAutomaton, r.Aside...)
			if err != nil {
				return err
			}

			q := source.NewQueue()
			for i, input := range args[1:] {
				if !inputFiles {
					q.Append(source.New(fmt.Sprintf("arg%d", i+1), []byte(input)))
					continue
				}

				content, err := os.ReadFile(input)
				if err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				q.Append(source.New(input, content))
			}

			w := cmd.OutOrStdout()
			for {
				tok, err := l.Next(q)
				if err != nil {
					return err
				}
				if tok.IsEoi() {
					return nil
				}
				if tok.IsEof() {
					fmt.Fprintf(w, "%s\t%s\n", tok.SourceName(), tok.Type())
					continue
				}
				fmt.Fprintf(w, "%s:%d:%d\t%s\t%q\n", tok.SourceName(), tok.Line(), tok.Col(), tok.Type(), tok.Text())
			}
		},
	}

	cmd.Flags().BoolVar(&inputFiles, "files", false, "treat inputs as file names")
	return cmd
}
