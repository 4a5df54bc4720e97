package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptimizeZeroOffsetJump(t *testing.T) {
	p := &Program{
		Instructions: []Instruction{
			{Op: OpPushNumber, Arg: 1},
			{Op: OpJump, Arg: 0},
			{Op: OpReturn},
		},
	}
	p.SourceInstructionCount = len(p.Instructions)

	applied := Optimize(p)
	assert.Equal(t, 1, applied)
	assert.Equal(t, OpNop, p.Instructions[1].Op)
	// instruction count never changes, jump offsets stay valid
	assert.Equal(t, p.SourceInstructionCount, len(p.Instructions))
	assert.Equal(t, 1, p.OptimizationsApplied)
}

func TestOptimizeLeavesRealJumps(t *testing.T) {
	p := &Program{
		Instructions: []Instruction{
			{Op: OpJump, Arg: 2},
			{Op: OpJumpIfFalse, Arg: 0},
			{Op: OpJumpIfTrue, Arg: 0},
			{Op: OpReturn},
		},
	}
	applied := Optimize(p)
	assert.Equal(t, 0, applied, "conditional jumps and non-zero offsets are untouched")
	assert.Equal(t, OpJump, p.Instructions[0].Op)
	assert.Equal(t, OpJumpIfFalse, p.Instructions[1].Op)
}

func TestOptimizeIdempotent(t *testing.T) {
	p := &Program{
		Instructions: []Instruction{
			{Op: OpJump, Arg: 0},
			{Op: OpJump, Arg: 0},
			{Op: OpReturn},
		},
	}
	first := Optimize(p)
	assert.Equal(t, 2, first)
	count := len(p.Instructions)

	second := Optimize(p)
	assert.Equal(t, 0, second, "a second pass finds nothing to do")
	assert.Equal(t, count, len(p.Instructions))
	assert.Equal(t, 2, p.OptimizationsApplied)
}

func TestOptimizeNil(t *testing.T) {
	assert.Equal(t, 0, Optimize(nil))
}
