// Package transform contains the formatting passes and the machinery that
// resolves, configures, orders and runs them: the descriptor catalog, the
// parameter merge rules, the loader and the pipeline.
package transform

import (
	"rftidy/internal/model"
)

// Config carries run-wide formatting settings into every transformer.
type Config struct {
	SpaceCount int // cells separator width used when rendering dirty statements

	// StartLine/EndLine restrict which lines a transformer may mutate
	// (1-based, inclusive, 0 means unbounded). Honoring the range is part
	// of each transformer's contract; the pipeline does not enforce it.
	StartLine int
	EndLine   int
}

// InRange reports whether a statement at the given original line may be
// mutated. Synthesized statements (line 0) follow their surroundings and
// are always allowed.
func (c Config) InRange(line int) bool {
	if line == 0 {
		return true
	}
	if c.StartLine > 0 && line < c.StartLine {
		return false
	}
	end := c.EndLine
	if end == 0 {
		end = c.StartLine // --startline alone limits the run to that line
	}
	if end > 0 && line > end {
		return false
	}
	return true
}

// Limited reports whether a line range restriction is active.
func (c Config) Limited() bool {
	return c.StartLine > 0 || c.EndLine > 0
}

// Transformer is one independent formatting pass. Apply mutates the
// document in place and must restrict its edits to cfg's line range.
// Transformers run against one document at a time; implementations must
// not keep state across files unless their descriptor marks them Stateful.
type Transformer interface {
	Apply(doc *model.File, cfg Config) error
}
