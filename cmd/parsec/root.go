package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/cerfical/parsec/automaton"
	"github.com/cerfical/parsec/grammar"
	"github.com/cerfical/parsec/langdef"
	"github.com/cerfical/parsec/source"
)

// app holds configuration shared by subcommands.
type app struct {
	v   *viper.Viper
	log commonlog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:               "parsec",
		Short:             "Parser generator core",
		Long:              "parsec builds lexer and parser automata from grammar descriptions.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}

	flags := cmd.PersistentFlags()
	flags.CountP("verbose", "v", "increase log verbosity")
	flags.String("log-file", "", "log file (default: stderr)")
	flags.String("config", "", "config file (default: .parsec.yaml)")
	flags.Bool("ebnf", false, "grammar file uses Go EBNF notation")
	flags.String("root", "", "root rule name")
	flags.Int("limit", 0, "maximum number of states per automaton (0: no limit)")

	for _, name := range []string{"verbose", "log-file", "ebnf", "root", "limit"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(a.newBuildCmd(), a.newCheckCmd(), a.newMatchCmd())
	return cmd
}

func (a *app) initConfig(cmd *cobra.Command, args []string) error {
	a.v.SetEnvPrefix("PARSEC")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		a.v.SetConfigFile(configFile)
	} else {
		a.v.SetConfigName(".parsec")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	var logFile *string
	if path := a.v.GetString("log-file"); path != "" {
		logFile = &path
	}
	commonlog.Configure(a.v.GetInt("verbose"), logFile)
	a.log = commonlog.GetLogger("parsec")
	return nil
}

// loadGrammar parses grammar file according to configured notation.
func (a *app) loadGrammar(path string) (*langdef.Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grammar: %w", err)
	}

	root := a.v.GetString("root")
	if a.v.GetBool("ebnf") {
		if root == "" {
			return nil, errors.New("--root is required for EBNF grammars")
		}
		return langdef.ParseEBNF(path, bytes.NewReader(content), root)
	}

	r, err := langdef.Parse(source.New(path, content))
	if err != nil {
		return nil, err
	}
	if root != "" {
		if !r.Rules.HasBody(grammar.Symbol(root)) {
			return nil, langdef.RootError(root)
		}
		r.Rules.SetRoot(grammar.Symbol(root))
	}
	a.log.Infof("%s: %d tokens, %d rules", path, len(r.Tokens.Bodied()), len(r.Rules.Bodied()))
	return r, nil
}

// buildAutomata builds the lexer and the parser automata honoring the state limit.
func (a *app) buildAutomata(r *langdef.Result) (lexerAutomaton, parserAutomaton *automaton.Automaton, err error) {
	lb, pb := r.Builders()
	limit := a.v.GetInt("limit")
	lb.SetLimit(limit)
	pb.SetLimit(limit)

	if lexerAutomaton, err = lb.Build(); err != nil {
		return nil, nil, fmt.Errorf("lexer automaton: %w", err)
	}
	if parserAutomaton, err = pb.Build(); err != nil {
		return nil, nil, fmt.Errorf("parser automaton: %w", err)
	}
	a.log.Infof("%d lexer states, %d parser states", lexerAutomaton.Len(), parserAutomaton.Len())
	return lexerAutomaton, parserAutomaton, nil
}
