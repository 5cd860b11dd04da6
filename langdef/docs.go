/*
Package langdef converts textual grammar descriptions to grammar.Grammar structures.

Two notations are supported. The native one consists of sections:

	tokens { NAME = "pattern"; ... }
	rules { name = expression; ... }
	aside NAME, ...;
	root name;

Sections may appear in any order and may be repeated. Line comments start with # or //.

Token patterns are string literals (double-quoted with Go escapes or back-quoted raw strings)
containing Go regular expressions. Supported are literals, character classes, groups, alternation,
repetitions (* + ? {n,m}), and the case-insensitive flag (?i). Character classes are expanded and
may contain at most 1024 characters. Anchors and the "any character" class are not supported.

Rule expressions consist of token and rule names, string literals, groups in parentheses,
postfix repetition operators (* + ?), juxtaposition (sequence), and alternation (|). An empty
group () matches the empty sequence, so does an empty rule body.
A string literal in a rule defines a token matching exactly that text, the token is named
as the quoted literal, e.g. "+" defines token named `"+"`.

Defining the same name more than once unites the definitions. A name may not be both
a token and a rule. Every name used in rules must be defined.

The other notation is Go EBNF (see golang.org/x/exp/ebnf), parsed with ParseEBNF.

Grammar description gives no priority to tokens: a literal token and a pattern token matching
the same text make the lexer automaton ambiguous, the builder reports it as a name conflict.
*/
package langdef
