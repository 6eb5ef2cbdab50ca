// Package filter compiles capture predicates.
//
// A predicate is an expression over the request's method, path, query, and
// response status, e.g. `method == "POST" && status >= 400`. The capture
// stage evaluates it at request exit to decide whether the request is
// recorded into the capture store.
package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is the evaluation context a predicate runs against.
type Env struct {
	Method string `expr:"method"`
	Path   string `expr:"path"`
	Query  string `expr:"query"`
	Status int    `expr:"status"`
}

// Filter is a compiled capture predicate. The nil filter matches everything.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile builds a filter from an expression. The expression must evaluate
// to a boolean.
func Compile(source string) (*Filter, error) {
	program, err := expr.Compile(source, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid capture filter %q: %w", source, err)
	}
	return &Filter{source: source, program: program}, nil
}

// Match evaluates the predicate against env. Evaluation errors count as a
// non-match so a bad predicate can never flood the store.
func (f *Filter) Match(env Env) bool {
	if f == nil {
		return true
	}
	out, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}
	b, ok := out.(bool)
	return ok && b
}

// Source returns the original expression text.
func (f *Filter) Source() string {
	if f == nil {
		return ""
	}
	return f.source
}
