package vm

import (
	"fmt"

	"github.com/lytics/nlfilter/expr"
	"github.com/lytics/nlfilter/lex"
)

// Compile lowers a parsed expression to a bytecode program. It fails only
// on a malformed tree (an invalid expression, or IN whose right operand is
// not a list); every tree the parser produces from its own grammar
// compiles.
func Compile(exp *expr.Expression) (*Program, error) {
	if exp == nil || !exp.Valid || exp.Root == nil {
		return nil, fmt.Errorf("cannot compile invalid expression")
	}
	return CompileNode(exp.Root)
}

// CompileNode compiles a bare expression tree.
func CompileNode(node expr.Node) (*Program, error) {
	c := &compiler{prog: &Program{}}
	if err := c.compileNode(node); err != nil {
		return nil, err
	}
	c.prog.emit(OpReturn, 0)
	c.prog.SourceInstructionCount = len(c.prog.Instructions)
	return c.prog, nil
}

type compiler struct {
	prog *Program
}

var comparisonOps = map[lex.TokenType]Opcode{
	lex.TokenEqual:    OpEq,
	lex.TokenNE:       OpNe,
	lex.TokenLT:       OpLt,
	lex.TokenGT:       OpGt,
	lex.TokenLE:       OpLe,
	lex.TokenGE:       OpGe,
	lex.TokenMatch:    OpMatch,
	lex.TokenNotMatch: OpNotMatch,
}

func (c *compiler) compileNode(node expr.Node) error {
	switch n := node.(type) {
	case *expr.IdentityNode:
		c.prog.emit(OpPushField, int64(n.Field))
	case *expr.StringNode:
		c.prog.emit(OpPushString, c.prog.internString(n.Text))
	case *expr.NumberNode:
		c.prog.emit(OpPushNumber, n.Int64)
	case *expr.ComparisonNode:
		return c.compileComparison(n)
	case *expr.BooleanNode:
		return c.compileBoolean(n)
	case *expr.UnaryNode:
		if err := c.compileNode(n.Arg); err != nil {
			return err
		}
		c.prog.emit(OpNot, 0)
	case *expr.ArrayNode:
		return fmt.Errorf("list is only valid as the right operand of IN")
	default:
		return fmt.Errorf("unsupported node type: %T", node)
	}
	return nil
}

func (c *compiler) compileComparison(n *expr.ComparisonNode) error {
	if n.Op == lex.TokenIN {
		arr, ok := n.Right.(*expr.ArrayNode)
		if !ok {
			return fmt.Errorf("right operand of IN must be a list, got %T", n.Right)
		}
		if err := c.compileNode(n.Left); err != nil {
			return err
		}
		for _, item := range arr.Args {
			if err := c.compileNode(item); err != nil {
				return err
			}
		}
		c.prog.emit(OpIn, int64(len(arr.Args)))
		return nil
	}

	op, ok := comparisonOps[n.Op]
	if !ok {
		return fmt.Errorf("unsupported comparison operator %s", n.Op)
	}
	if err := c.compileNode(n.Left); err != nil {
		return err
	}
	if err := c.compileNode(n.Right); err != nil {
		return err
	}
	c.prog.emit(op, 0)
	return nil
}

// compileBoolean emits the short-circuit form of AND/OR: the left value
// stays on the stack and a conditional jump (which peeks, never pops)
// skips the right side when the left already decides the result. On the
// fall-through path the left boolean is popped before the right side runs,
// so the value left on the stack is always either the short-circuited left
// value or exactly the right-hand evaluation.
func (c *compiler) compileBoolean(n *expr.BooleanNode) error {
	if err := c.compileNode(n.Left); err != nil {
		return err
	}

	jumpOp := OpJumpIfFalse
	if n.Op == lex.TokenOr {
		jumpOp = OpJumpIfTrue
	}
	jumpIdx := c.prog.emit(jumpOp, 0)
	c.prog.emit(OpPop, 0)

	if err := c.compileNode(n.Right); err != nil {
		return err
	}

	// Offsets are relative to the instruction following the jump.
	c.prog.Instructions[jumpIdx].Arg = int64(len(c.prog.Instructions) - jumpIdx - 1)
	return nil
}
