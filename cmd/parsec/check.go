package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Check that grammar builds without conflicts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.loadGrammar(args[0])
			if err != nil {
				return err
			}
			if _, _, err = a.buildAutomata(r); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
