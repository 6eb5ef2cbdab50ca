package body

import (
	"fmt"
	"sort"

	"github.com/ohler55/ojg/jp"
)

// Extractor pulls configured JSONPath values out of decoded payloads.
// Expressions are compiled once at construction.
type Extractor struct {
	paths []compiledPath
}

type compiledPath struct {
	key  string
	expr jp.Expr
}

// NewExtractor compiles a map of state key to JSONPath expression. Keys are
// sorted so extraction order is stable.
func NewExtractor(paths map[string]string) (*Extractor, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	e := &Extractor{paths: make([]compiledPath, 0, len(keys))}
	for _, k := range keys {
		expr, err := jp.ParseString(paths[k])
		if err != nil {
			return nil, fmt.Errorf("invalid JSONPath for %q: %w", k, err)
		}
		e.paths = append(e.paths, compiledPath{key: k, expr: expr})
	}
	return e, nil
}

// Apply evaluates every expression against data and returns the first match
// per key. Keys whose expression matches nothing are omitted. A nil
// extractor extracts nothing.
func (e *Extractor) Apply(data any) map[string]any {
	if e == nil || data == nil {
		return nil
	}

	var out map[string]any
	for _, p := range e.paths {
		got := p.expr.Get(data)
		if len(got) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[p.key] = got[0]
	}
	return out
}
