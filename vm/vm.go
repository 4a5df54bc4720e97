package vm

import (
	"time"

	"github.com/lytics/nlfilter/event"
	"github.com/lytics/nlfilter/value"
)

// Context holds the mutable state one evaluation needs: the operand
// stack, the regex cache, and profiling counters. Reusing a Context
// across evaluations amortizes regex compilation and stack allocation.
// A Context is owned by exactly one caller at a time; it is not safe for
// concurrent use.
type Context struct {
	stack      []value.Value
	regexCache map[string]*regexEntry

	// Profile accumulates whole-evaluation timings, fed by
	// EvaluateWithProfiling.
	Profile ProfileStats

	opcodeProfiling bool
	opcodeStats     map[Opcode]*OpcodeStat
}

func NewContext() *Context {
	return &Context{
		stack:      make([]value.Value, 0, 16),
		regexCache: make(map[string]*regexEntry),
	}
}

func (c *Context) push(v value.Value) {
	c.stack = append(c.stack, v)
}

// pop returns nil on an empty stack; the evaluator treats a nil as a
// non-boolean, ie false.
func (c *Context) pop() value.Value {
	if len(c.stack) == 0 {
		return nil
	}
	v := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return v
}

func (c *Context) peek() value.Value {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

// Evaluate runs a compiled program against one event and reports whether
// it matches. A nil ctx gets a disposable context for this call only,
// which forgoes regex-cache reuse. Evaluation is total: for any
// well-formed program and any event it returns a boolean and never
// fails, so a single unexpected event cannot abort the calling pipeline.
func Evaluate(p *Program, ev *event.NetworkEvent, ctx *Context) bool {
	if ctx == nil {
		ctx = NewContext()
	}
	ctx.stack = ctx.stack[:0]

	pc := 0
	for pc < len(p.Instructions) {
		in := p.Instructions[pc]
		pc++

		var opStart time.Time
		if ctx.opcodeProfiling {
			opStart = time.Now()
		}

		switch in.Op {
		case OpNop:

		case OpPushField:
			v, ok := event.Extract(ev, event.FieldID(in.Arg))
			if !ok {
				// Field unavailable for this event: the whole
				// expression is a non-match.
				ctx.recordOpcode(in.Op, opStart)
				return false
			}
			ctx.push(v)

		case OpPushString:
			if in.Arg < 0 || in.Arg >= int64(len(p.Strings)) {
				ctx.recordOpcode(in.Op, opStart)
				return false
			}
			ctx.push(value.NewStringValue(p.Strings[in.Arg]))

		case OpPushNumber:
			ctx.push(value.NewIntValue(in.Arg))

		case OpPop:
			ctx.pop()

		case OpEq, OpNe:
			r, l := ctx.pop(), ctx.pop()
			ctx.push(value.NewBoolValue(evalEquality(in.Op, l, r)))

		case OpLt, OpGt, OpLe, OpGe:
			r, l := ctx.pop(), ctx.pop()
			ctx.push(value.NewBoolValue(evalOrdering(in.Op, l, r)))

		case OpMatch, OpNotMatch:
			pattern, val := ctx.pop(), ctx.pop()
			ctx.push(value.NewBoolValue(ctx.evalMatch(in.Op, val, pattern)))

		case OpIn:
			count := int(in.Arg)
			found := false
			items := make([]value.Value, count)
			for i := count - 1; i >= 0; i-- {
				items[i] = ctx.pop()
			}
			probe := ctx.pop()
			for _, item := range items {
				if value.Equal(probe, item) {
					found = true
					break
				}
			}
			ctx.push(value.NewBoolValue(found))

		case OpAnd:
			r, l := ctx.pop(), ctx.pop()
			ctx.push(value.NewBoolValue(value.ValueToBool(l) && value.ValueToBool(r)))

		case OpOr:
			r, l := ctx.pop(), ctx.pop()
			ctx.push(value.NewBoolValue(value.ValueToBool(l) || value.ValueToBool(r)))

		case OpNot:
			ctx.push(value.NewBoolValue(!value.ValueToBool(ctx.pop())))

		case OpJump:
			// A backward offset past the program start is malformed;
			// abort as a non-match rather than index with a negative pc.
			pc += int(in.Arg)
			if pc < 0 {
				ctx.recordOpcode(in.Op, opStart)
				return false
			}

		case OpJumpIfFalse:
			// Conditional jumps peek, they do not pop.
			if !value.ValueToBool(ctx.peek()) {
				pc += int(in.Arg)
				if pc < 0 {
					ctx.recordOpcode(in.Op, opStart)
					return false
				}
			}

		case OpJumpIfTrue:
			if value.ValueToBool(ctx.peek()) {
				pc += int(in.Arg)
				if pc < 0 {
					ctx.recordOpcode(in.Op, opStart)
					return false
				}
			}

		case OpReturn:
			ctx.recordOpcode(in.Op, opStart)
			return value.ValueToBool(ctx.pop())
		}

		ctx.recordOpcode(in.Op, opStart)
	}

	// Instruction stream exhausted without a return: the top of stack,
	// if any, is the result.
	return value.ValueToBool(ctx.pop())
}

// EvaluateWithProfiling wraps Evaluate with a monotonic-clock measurement
// and folds it into the context's running count/min/max/total.
func EvaluateWithProfiling(p *Program, ev *event.NetworkEvent, ctx *Context) (bool, int64) {
	if ctx == nil {
		ctx = NewContext()
	}
	start := time.Now()
	matched := Evaluate(p, ev, ctx)
	elapsed := time.Since(start).Nanoseconds()
	ctx.Profile.record(elapsed)
	return matched, elapsed
}

// evalEquality implements eq/ne over a popped pair. Mismatched types
// yield false for both operators; there is no implicit coercion.
func evalEquality(op Opcode, l, r value.Value) bool {
	if l == nil || r == nil || l.Type() != r.Type() {
		return false
	}
	eq := value.Equal(l, r)
	if op == OpNe {
		return !eq
	}
	return eq
}

// evalOrdering implements lt/gt/le/ge: ordinal for a string pair,
// numeric for an int pair, false for anything else.
func evalOrdering(op Opcode, l, r value.Value) bool {
	if l == nil || r == nil {
		return false
	}
	cmp, ok := value.Compare(l, r)
	if !ok {
		return false
	}
	switch op {
	case OpLt:
		return cmp < 0
	case OpGt:
		return cmp > 0
	case OpLe:
		return cmp <= 0
	case OpGe:
		return cmp >= 0
	}
	return false
}

// evalMatch implements match/not-match. Both operands must be strings;
// the pattern is compiled through the context's regex cache, and a
// pattern that fails to compile never matches, for either operator.
func (c *Context) evalMatch(op Opcode, val, pattern value.Value) bool {
	vs, ok := value.ValueToString(val)
	if !ok {
		return false
	}
	ps, ok := value.ValueToString(pattern)
	if !ok {
		return false
	}
	re := c.regexFor(ps)
	if re == nil {
		return false
	}
	matched := re.MatchString(vs)
	if op == OpNotMatch {
		return !matched
	}
	return matched
}
