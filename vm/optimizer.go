package vm

// Optimize rewrites the program in place and returns the number of
// instructions changed. Rewrites never add or remove instructions, so
// jump offsets computed at compile time stay valid; any future pass that
// wants to delete instructions must first rewrite every offset that spans
// the deletion.
//
// The one pass that does work today is a peephole replacing zero-offset
// unconditional jumps with nops. Dead-code elimination and constant
// folding are extension points: present, disabled, and bound by the same
// length-preservation rule.
func Optimize(p *Program) int {
	if p == nil {
		return 0
	}
	applied := 0
	for i := range p.Instructions {
		in := &p.Instructions[i]
		if in.Op == OpJump && in.Arg == 0 {
			in.Op = OpNop
			applied++
		}
	}
	applied += eliminateDeadCode(p)
	applied += foldConstants(p)
	p.OptimizationsApplied += applied
	return applied
}

// eliminateDeadCode would rewrite instructions that can never execute
// (eg code between an unconditional jump and its target) to nops.
func eliminateDeadCode(p *Program) int {
	return 0
}

// foldConstants would evaluate comparisons whose operands are both
// literals and rewrite them to a pushed result padded with nops.
func foldConstants(p *Program) int {
	return 0
}
