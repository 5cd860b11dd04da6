package langdef

import (
	"errors"
	"text/scanner"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/cerfical/parsec"
)

var metaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `(?:#|//)[^\n]*`},
	{Name: "String", Pattern: "\"(?:\\\\.|[^\"\\\\\\n])*\"|`[^`]*`"},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[=;|(){}*+?,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var metaParser = participle.MustBuild[metaFile](
	participle.Lexer(metaLexer),
	participle.Elide("Comment", "Whitespace"),
	// a branch that consumed a token is never abandoned, errors point at the failing token
	participle.UseLookahead(0),
)

type metaFile struct {
	Sections []*metaSection `@@*`
}

type metaSection struct {
	Tokens []*tokenDef `  "tokens" "{" @@* "}"`
	Rules  []*ruleDef  `| "rules" "{" @@* "}"`
	Root   *metaName   `| "root" @@ ";"`
	Aside  []*metaName `| "aside" @@ ("," @@)* ";"`
}

type metaName struct {
	Pos  lexer.Position
	Name string `@Ident`
}

type tokenDef struct {
	Pos     lexer.Position
	Name    string `@Ident "="`
	Pattern string `@String ";"`
}

type ruleDef struct {
	Pos  lexer.Position
	Name string    `@Ident "="`
	Body *metaExpr `@@? ";"`
}

type metaExpr struct {
	Alts []*metaSeq `@@ ("|" @@)*`
}

type metaSeq struct {
	Terms []*metaTerm `@@+`
}

// metaTerm with no name, literal, or group is an empty group "()".
type metaTerm struct {
	Pos     lexer.Position
	Name    *string   `( @Ident`
	Literal *string   `| @String`
	Group   *metaExpr `| "(" @@? ")" )`
	Repeat  string    `@("*" | "+" | "?")?`
}

// position locates definitions in grammar source, implements parsec.SourcePos.
type position struct {
	name      string
	line, col int
}

func (p position) SourceName() string {
	return p.name
}

func (p position) Line() int {
	return p.line
}

func (p position) Col() int {
	return p.col
}

func lexerPos(p lexer.Position) position {
	return position{p.Filename, p.Line, p.Column}
}

func scannerPos(p scanner.Position) position {
	return position{p.Filename, p.Line, p.Column}
}

func parseMeta(name, text string) (*metaFile, error) {
	f, e := metaParser.ParseString(name, text)
	if e != nil {
		return nil, metaError(e)
	}
	return f, nil
}

func metaError(e error) error {
	var ute *participle.UnexpectedTokenError
	if errors.As(e, &ute) {
		pos := lexerPos(ute.Unexpected.Pos)
		if ute.Unexpected.EOF() {
			return eofError(pos)
		}
		return unexpectedTokenError(pos, ute.Unexpected.Value)
	}

	var le *lexer.Error
	if errors.As(e, &le) {
		return unexpectedCharError(lexerPos(le.Pos), le.Msg)
	}

	var pe participle.Error
	if errors.As(e, &pe) {
		return parsec.FormatErrorPos(lexerPos(pe.Position()), UnexpectedTokenError, "%s", pe.Message())
	}
	return e
}
