// Package expr is the AST structures and parser for the netlink filter
// expression dialect.
package expr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lytics/nlfilter/event"
	"github.com/lytics/nlfilter/lex"
)

var (
	_ Node = (*ComparisonNode)(nil)
	_ Node = (*BooleanNode)(nil)
	_ Node = (*UnaryNode)(nil)
	_ Node = (*IdentityNode)(nil)
	_ Node = (*StringNode)(nil)
	_ Node = (*NumberNode)(nil)
	_ Node = (*ArrayNode)(nil)
)

type (
	// Node is a node in the expression tree. The tree is acyclic, built
	// once by the parser, walked read-only by the compiler, and owned
	// exclusively by the Expression that produced it.
	Node interface {
		// String representation of the node, parseable back to itself
		String() string
		writeTo(w io.Writer)
	}

	// ComparisonNode joins two primaries with one of the comparison,
	// match, or membership operators. Comparisons do not chain.
	ComparisonNode struct {
		Op    lex.TokenType
		Left  Node
		Right Node
	}
	// BooleanNode is a binary AND/OR. Left-associative chains nest on
	// the left.
	BooleanNode struct {
		Op    lex.TokenType
		Left  Node
		Right Node
	}
	// UnaryNode is a NOT.
	UnaryNode struct {
		Arg Node
	}
	// IdentityNode references one field of the catalog. Text preserves
	// the identifier as written; Field is the resolved catalog entry.
	IdentityNode struct {
		Text  string
		Field event.FieldID
	}
	// StringNode is a quoted literal.
	StringNode struct {
		Text string
	}
	// NumberNode is an unsigned decimal literal held as signed 64-bit.
	NumberNode struct {
		Int64 int64
		Text  string
	}
	// ArrayNode is an ordered list of primaries, used only as the right
	// operand of IN.
	ArrayNode struct {
		Args []Node
	}
)

func (m *ComparisonNode) writeTo(w io.Writer) {
	m.Left.writeTo(w)
	io.WriteString(w, " "+m.Op.String()+" ")
	m.Right.writeTo(w)
}
func (m *ComparisonNode) String() string { return nodeString(m) }

func (m *BooleanNode) writeTo(w io.Writer) {
	io.WriteString(w, "(")
	m.Left.writeTo(w)
	io.WriteString(w, " "+m.Op.String()+" ")
	m.Right.writeTo(w)
	io.WriteString(w, ")")
}
func (m *BooleanNode) String() string { return nodeString(m) }

func (m *UnaryNode) writeTo(w io.Writer) {
	io.WriteString(w, "NOT ")
	m.Arg.writeTo(w)
}
func (m *UnaryNode) String() string { return nodeString(m) }

func (m *IdentityNode) writeTo(w io.Writer) { io.WriteString(w, m.Field.String()) }
func (m *IdentityNode) String() string      { return m.Field.String() }

func (m *StringNode) writeTo(w io.Writer) { io.WriteString(w, strconv.Quote(m.Text)) }
func (m *StringNode) String() string      { return strconv.Quote(m.Text) }

func (m *NumberNode) writeTo(w io.Writer) { io.WriteString(w, strconv.FormatInt(m.Int64, 10)) }
func (m *NumberNode) String() string      { return strconv.FormatInt(m.Int64, 10) }

func (m *ArrayNode) writeTo(w io.Writer) {
	io.WriteString(w, "[")
	for i, arg := range m.Args {
		if i != 0 {
			io.WriteString(w, ", ")
		}
		arg.writeTo(w)
	}
	io.WriteString(w, "]")
}
func (m *ArrayNode) String() string { return nodeString(m) }

func nodeString(n Node) string {
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

// SyntaxError is the single error a parse attempt reports: the first
// problem encountered, with its position in the source text.
type SyntaxError struct {
	Message string
	Offset  int
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d column %d: %s", e.Line, e.Column, e.Message)
}

// Expression wraps the result of one parse call: the original text, the
// tree (nil when invalid), and the error when invalid. Immutable once
// returned.
type Expression struct {
	Text  string
	Root  Node
	Valid bool
	Err   *SyntaxError
}

func (m *Expression) String() string {
	if !m.Valid || m.Root == nil {
		return m.Text
	}
	return m.Root.String()
}
