// Package filter is the public surface of the netlink filter language:
// parse, validate, compile, evaluate. The alert engine, event hooks, and
// the named-filter Manager all consume filters through this package.
package filter

import (
	"fmt"

	"github.com/lytics/nlfilter/event"
	"github.com/lytics/nlfilter/expr"
	"github.com/lytics/nlfilter/vm"
)

// Filter is one reusable compiled filter: the parsed expression plus its
// optimized bytecode. Compile once, evaluate against many events.
type Filter struct {
	Expr    *expr.Expression
	Program *vm.Program
}

// Parse parses filter text without compiling it.
func Parse(text string) *expr.Expression {
	return expr.Parse(text)
}

// Validate checks that text parses, returning nil or the syntax error.
// It is the parse-only convenience for callers that never evaluate, such
// as config linting and the CLI.
func Validate(text string) error {
	exp := expr.Parse(text)
	if !exp.Valid {
		return exp.Err
	}
	return nil
}

// Compile runs the full parse, compile, optimize pipeline. A parse or
// compile error is returned to the caller and must prevent the filter
// from being activated; errors are never raised mid-evaluation.
func Compile(text string) (*Filter, error) {
	exp := expr.Parse(text)
	if !exp.Valid {
		return nil, fmt.Errorf("parse %q: %w", text, exp.Err)
	}
	prog, err := vm.Compile(exp)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", text, err)
	}
	vm.Optimize(prog)
	return &Filter{Expr: exp, Program: prog}, nil
}

// MustCompile compiles or panics; for filters known valid at build time.
func MustCompile(text string) *Filter {
	f, err := Compile(text)
	if err != nil {
		panic(fmt.Sprintf("nlfilter: MustCompile: %v", err))
	}
	return f
}

// Matches evaluates the filter against one event. ctx may be nil for
// one-shot use; passing a reused context amortizes regex compilation.
func (f *Filter) Matches(ev *event.NetworkEvent, ctx *vm.Context) bool {
	return vm.Evaluate(f.Program, ev, ctx)
}

// MatchesProfiled evaluates under the context's profiling counters and
// also returns the elapsed nanoseconds for this evaluation.
func (f *Filter) MatchesProfiled(ev *event.NetworkEvent, ctx *vm.Context) (bool, int64) {
	return vm.EvaluateWithProfiling(f.Program, ev, ctx)
}

// Disassemble renders the filter's bytecode as text.
func (f *Filter) Disassemble() string {
	return vm.Disassemble(f.Program)
}

func (f *Filter) String() string {
	return f.Expr.Text
}
