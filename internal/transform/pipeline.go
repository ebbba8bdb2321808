package transform

import (
	"fmt"

	"rftidy/internal/model"
)

// Pipeline applies an ordered invocation list to one document at a time.
type Pipeline struct {
	Invocations []Invocation
	Config      Config
}

// NewPipeline builds a pipeline for a resolved invocation list.
func NewPipeline(invocations []Invocation, cfg Config) *Pipeline {
	if cfg.SpaceCount <= 0 {
		cfg.SpaceCount = 4
	}
	return &Pipeline{Invocations: invocations, Config: cfg}
}

// Run mutates doc in place, applying every pass strictly in invocation
// order; each pass sees the previous pass's output on the same document
// instance. The document is owned by the caller for the duration of the
// run and must not be shared with concurrent runs.
func (p *Pipeline) Run(doc *model.File) error {
	for _, inv := range p.Invocations {
		if err := inv.Transformer.Apply(doc, p.Config); err != nil {
			return fmt.Errorf("%s: %w", inv.Descriptor.Name, err)
		}
	}
	return nil
}

// Stateful reports whether any loaded pass accumulates cross-file state.
// Callers must process files serially when it returns true.
func (p *Pipeline) Stateful() bool {
	for _, inv := range p.Invocations {
		if inv.Descriptor.Stateful {
			return true
		}
	}
	return false
}
