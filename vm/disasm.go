package vm

import (
	"fmt"
	"strings"

	"github.com/lytics/nlfilter/event"
)

// Disassemble renders a program as human-readable text, one instruction
// per line with field ids and string-table indexes resolved.
func Disassemble(p *Program) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "; %d instructions, %d strings", len(p.Instructions), len(p.Strings))
	if p.OptimizationsApplied > 0 {
		fmt.Fprintf(&sb, ", %d optimizations applied", p.OptimizationsApplied)
	}
	sb.WriteByte('\n')

	for i, in := range p.Instructions {
		fmt.Fprintf(&sb, "%04d  ", i)
		switch in.Op {
		case OpPushField:
			fmt.Fprintf(&sb, "%-14s %s", in.Op, event.FieldID(in.Arg))
		case OpPushString:
			if in.Arg >= 0 && in.Arg < int64(len(p.Strings)) {
				fmt.Fprintf(&sb, "%-14s %q", in.Op, p.Strings[in.Arg])
			} else {
				fmt.Fprintf(&sb, "%-14s <bad index %d>", in.Op, in.Arg)
			}
		case OpPushNumber:
			fmt.Fprintf(&sb, "%-14s %d", in.Op, in.Arg)
		case OpIn:
			fmt.Fprintf(&sb, "%-14s %d items", in.Op, in.Arg)
		case OpJump, OpJumpIfFalse, OpJumpIfTrue:
			fmt.Fprintf(&sb, "%-14s %+d -> %04d", in.Op, in.Arg, i+1+int(in.Arg))
		default:
			sb.WriteString(in.Op.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
