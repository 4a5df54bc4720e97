// Package vm compiles filter expression trees to stack-machine bytecode
// and evaluates compiled programs against network events.
package vm

import "fmt"

// Opcode is the operation tag of one instruction.
type Opcode uint8

const (
	OpNop Opcode = iota
	OpPushField
	OpPushString
	OpPushNumber
	OpPop
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpMatch
	OpNotMatch
	OpIn
	OpAnd
	OpOr
	OpNot
	OpJump
	OpJumpIfFalse
	OpJumpIfTrue
	OpReturn
)

var opcodeNames = map[Opcode]string{
	OpNop:         "nop",
	OpPushField:   "push-field",
	OpPushString:  "push-string",
	OpPushNumber:  "push-number",
	OpPop:         "pop",
	OpEq:          "eq",
	OpNe:          "ne",
	OpLt:          "lt",
	OpGt:          "gt",
	OpLe:          "le",
	OpGe:          "ge",
	OpMatch:       "match",
	OpNotMatch:    "not-match",
	OpIn:          "in",
	OpAnd:         "and",
	OpOr:          "or",
	OpNot:         "not",
	OpJump:        "jump",
	OpJumpIfFalse: "jump-if-false",
	OpJumpIfTrue:  "jump-if-true",
	OpReturn:      "return",
}

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Opcode(%d)", uint8(op))
}

// Instruction is one stack-machine operation. Arg is opcode-dependent: a
// field id for push-field, a string-table index for push-string, the
// literal for push-number, a relative offset for the jumps (counted from
// the instruction following the jump), and an item count for in.
type Instruction struct {
	Op  Opcode
	Arg int64
}

func (in Instruction) String() string {
	switch in.Op {
	case OpPushField, OpPushString, OpPushNumber, OpIn:
		return fmt.Sprintf("%s %d", in.Op, in.Arg)
	case OpJump, OpJumpIfFalse, OpJumpIfTrue:
		return fmt.Sprintf("%s %+d", in.Op, in.Arg)
	}
	return in.Op.String()
}

// Program is one compiled filter: a linear instruction stream plus the
// deduplicated string constants it references. Compiled once, evaluated
// many times; immutable after compilation except for Optimize, which
// rewrites instructions in place without changing the stream length.
type Program struct {
	Instructions []Instruction
	Strings      []string

	// SourceInstructionCount is the stream length as emitted by the
	// compiler, before any optimizer rewrites.
	SourceInstructionCount int
	// OptimizationsApplied counts instruction rewrites performed by
	// Optimize over the program's lifetime.
	OptimizationsApplied int

	strIndex map[string]int64
}

// InstructionCount returns the current stream length.
func (p *Program) InstructionCount() int { return len(p.Instructions) }

// StringCount returns the number of unique string constants.
func (p *Program) StringCount() int { return len(p.Strings) }

// internString returns the table index for s, adding it on first use.
func (p *Program) internString(s string) int64 {
	if idx, ok := p.strIndex[s]; ok {
		return idx
	}
	if p.strIndex == nil {
		p.strIndex = make(map[string]int64)
	}
	idx := int64(len(p.Strings))
	p.Strings = append(p.Strings, s)
	p.strIndex[s] = idx
	return idx
}

func (p *Program) emit(op Opcode, arg int64) int {
	p.Instructions = append(p.Instructions, Instruction{Op: op, Arg: arg})
	return len(p.Instructions) - 1
}
