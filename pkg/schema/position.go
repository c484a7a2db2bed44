// Package schema implements the template/schema parser and evaluator:
// a small domain-specific language that expands parameterized schema
// files into concrete SQL or XML text by resolving attribute references,
// evaluating conditional blocks, and executing inline directives that
// mutate the attribute environment.
package schema

import "fmt"

// Position identifies a location in a source buffer for diagnostics.
// Line and Column are 1-based; Line is comment-adjusted so it refers to
// the original file's line number even though comment-only lines never
// make it into the in-memory buffer.
type Position struct {
	Origin string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Origin != "" {
		return fmt.Sprintf("%s:%d:%d", p.Origin, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
