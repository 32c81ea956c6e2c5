package fixture

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

var sexprParser = buildParser()

func buildParser() *participle.Parser[Node] {
	p, err := participle.Build[Node](
		participle.Lexer(sexprLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Errorf("fixture: failed to build s-expression parser: %w", err))
	}
	return p
}

// parseNode parses source into a single top-level Node. source is
// expected to hold exactly one s-expression, matching how every demo
// and test fixture in this repository is written.
func parseNode(sourceName, source string) (*Node, error) {
	return sexprParser.ParseString(sourceName, source)
}
