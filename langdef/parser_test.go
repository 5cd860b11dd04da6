package langdef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerfical/parsec"
	"github.com/cerfical/parsec/grammar"
	"github.com/cerfical/parsec/regex"
	"github.com/cerfical/parsec/source"
)

const calcGrammar = `
# arithmetic expressions
tokens {
	NUM = "[0-9]+";
	WS = ` + "`[ \\t\\n]+`" + `;
}
rules {
	expr = term ("+" term)*;
	term = NUM | "(" expr ")";
}
aside WS;
`

func requireCode(t *testing.T, code int, err error) *parsec.Error {
	t.Helper()
	var pe *parsec.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, code, pe.Code, "message: %s", pe.Message)
	return pe
}

func TestParse_CalcGrammar(t *testing.T) {
	r, err := Parse(source.New("calc", []byte(calcGrammar)))
	require.NoError(t, err)

	for _, name := range []grammar.Symbol{"NUM", "WS", `"+"`, `"("`, `")"`} {
		assert.True(t, r.Tokens.HasBody(name), "token %s", name)
		assert.True(t, r.Rules.Contains(name), "declared %s", name)
		assert.False(t, r.Rules.HasBody(name), "no rule body for %s", name)
	}
	assert.True(t, r.Rules.HasBody("expr"))
	assert.True(t, r.Rules.HasBody("term"))
	assert.Equal(t, grammar.Symbol("expr"), r.Rules.Root())
	assert.Equal(t, []grammar.Symbol{"WS"}, r.Aside)
	assert.True(t, r.IsAside("WS"))
	assert.False(t, r.IsAside("NUM"))
}

func TestParse_Empty(t *testing.T) {
	for _, text := range []string{"", "  \n", "# nothing\n// at all", "tokens {} rules {}"} {
		r, err := ParseString("empty", text)
		require.NoError(t, err, "input %q", text)
		assert.Equal(t, 0, r.Tokens.Len())
		assert.Equal(t, 0, r.Rules.Len())
		assert.Equal(t, grammar.Symbol(""), r.Rules.Root())
	}
}

func TestParse_RootDirective(t *testing.T) {
	r, err := ParseString("root", `rules { a = b; b = "x"; } root b;`)
	require.NoError(t, err)
	assert.Equal(t, grammar.Symbol("b"), r.Rules.Root())
}

func TestParse_RepeatedDefinitionsUnite(t *testing.T) {
	r, err := ParseString("union", `rules { a = "x"; a = "y"; }`)
	require.NoError(t, err)

	body, _ := r.Rules.Resolve("a")
	assert.Equal(t, regex.AltNode, body.Kind())
	assert.Equal(t, `"x" | "y"`, body.String())
}

func TestParse_EmptyBodies(t *testing.T) {
	r, err := ParseString("empty", `rules { a = ; b = () "x"; c = "y" | (); }`)
	require.NoError(t, err)

	for _, name := range []grammar.Symbol{"a", "c"} {
		body, _ := r.Rules.Resolve(name)
		assert.True(t, regex.Nullable(body), "%s must be nullable", name)
	}
	body, _ := r.Rules.Resolve("b")
	assert.False(t, regex.Nullable(body))
}

func TestParse_Repetitions(t *testing.T) {
	r, err := ParseString("rep", `rules { a = "x"* "y"+ "z"?; }`)
	require.NoError(t, err)

	body, _ := r.Rules.Resolve("a")
	assert.Equal(t, `"x"* "y"+ "z"?`, body.String())
}

func TestParse_Errors(t *testing.T) {
	samples := []struct {
		name string
		text string
		code int
	}{
		{"eof", "tokens {", UnexpectedEofError},
		{"eof in rule", "rules { a = (", UnexpectedEofError},
		{"eof in group", "rules { a = (b | ", UnexpectedEofError},
		{"eof after name", "rules { a = b", UnexpectedEofError},
		{"missing semicolon", `tokens { A = "a" }`, UnexpectedTokenError},
		{"unknown section", `grammar { }`, UnexpectedTokenError},
		{"bad char", `rules { a = "x"; } @`, UnexpectedCharError},
		{"bad string escape", `tokens { A = "\d"; }`, InvalidEscapeError},
		{"bad pattern escape", "tokens { A = `\\q`; }", InvalidEscapeError},
		{"unmatched paren", `tokens { A = "(a"; }`, UnmatchedParenError},
		{"unexpected paren", `tokens { A = "a)"; }`, UnmatchedParenError},
		{"char range", `tokens { A = "[z-a]"; }`, CharRangeError},
		{"any char", `tokens { A = "a."; }`, WrongPatternError},
		{"anchor", `tokens { A = "^a"; }`, WrongPatternError},
		{"large class", `tokens { A = "[^a]"; }`, ClassTooLargeError},
		{"empty literal", `rules { a = ""; }`, EmptyNameError},
		{"token then rule", `tokens { A = "a"; } rules { A = "b"; }`, NameKindError},
		{"rule then token", `rules { A = "b"; } tokens { A = "a"; }`, NameKindError},
		{"undefined", `rules { a = b; }`, UndefinedNameError},
		{"undefined aside", `tokens { A = "a"; } aside B;`, UndefinedNameError},
		{"aside rule", `rules { a = "x"; } aside a;`, UndefinedNameError},
		{"unknown root", `rules { a = "x"; } root b;`, UnknownRootError},
	}

	for _, sample := range samples {
		t.Run(sample.name, func(t *testing.T) {
			_, err := ParseString("sample", sample.text)
			requireCode(t, sample.code, err)
		})
	}
}

func TestParse_UnclosedGroupPosition(t *testing.T) {
	_, err := ParseString("group", "rules {\n  a = (\"x\" | \"y\"\n}")
	pe := requireCode(t, UnexpectedTokenError, err)
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, 1, pe.Col)
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := ParseString("pos", "rules {\n  a = b;\n}")
	pe := requireCode(t, UndefinedNameError, err)
	assert.Equal(t, "pos", pe.SourceName)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, 7, pe.Col)
	assert.Contains(t, pe.Message, "line 2 col 7")
}
