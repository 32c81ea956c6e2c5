package fixture

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Node is one s-expression: either an atom (an identifier, an integer
// literal, or a quoted string) or a parenthesized list of child nodes.
// Exactly one of the four fields is populated, decided by which
// alternative of the grammar matched.
type Node struct {
	Pos lexer.Position

	Ident *string `@Ident`
	Int   *string `| @Integer`
	Str   *string `| @String`
	List  []*Node `| "(" @@* ")"`
}

func (n *Node) isAtom() bool {
	return n.List == nil
}
