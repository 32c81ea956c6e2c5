package fixture

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// sexprLexer tokenizes the tiny s-expression DSL demo programs and test
// fixtures are written in. It is deliberately minimal next to the
// multi-state lexer a real source language needs: parentheses,
// identifiers/keywords, integer literals, and whitespace/comments to
// elide.
var sexprLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `;[^\n]*`, nil},
		{"LParen", `\(`, nil},
		{"RParen", `\)`, nil},
		{"String", `"[^"]*"`, nil},
		{"Integer", `-?[0-9]+`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_!?]*`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
