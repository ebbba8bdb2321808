package transform

import (
	"sort"

	"rftidy/internal/recommend"
)

// Invocation is one resolved, configured pass in execution order.
type Invocation struct {
	Descriptor  Descriptor
	Transformer Transformer
	Params      map[string]string
}

// LoadOptions configures catalog resolution.
type LoadOptions struct {
	// AllowDisabled includes disabled-by-default passes in implicit runs.
	// Used by listing and documentation commands.
	AllowDisabled bool
}

// Load resolves user directives into the ordered invocation list.
//
// With an explicit selection the result preserves the user's order and
// includes disabled-by-default passes that were asked for by name. Without
// one, the full catalog runs in declaration order, skipping disabled
// entries unless opts.AllowDisabled is set.
//
// Loading is fail-fast: the first resolution, configuration or
// instantiation failure aborts the whole load with a nil result, before
// any file is touched. Unknown names carry a ranked recommendation.
func Load(cat *Catalog, selection, configure []Selection, fileParams map[string][]string, opts LoadOptions) ([]Invocation, error) {
	configureByName := make(map[string][]string, len(configure))
	for _, c := range configure {
		if _, ok := cat.Lookup(c.Name); !ok {
			return nil, resolutionError(cat, c.Name)
		}
		configureByName[c.Name] = append(configureByName[c.Name], c.Params...)
	}
	// configuration-file directives for unknown names are typos too
	fileNames := make([]string, 0, len(fileParams))
	for name := range fileParams {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)
	for _, name := range fileNames {
		if _, ok := cat.Lookup(name); !ok {
			return nil, resolutionError(cat, name)
		}
	}

	var invocations []Invocation
	add := func(desc Descriptor, inline []string) error {
		params, err := MergeParams(desc.Name, fileParams[desc.Name], configureByName[desc.Name], inline)
		if err != nil {
			return err
		}
		tr, err := desc.Factory(params)
		if err != nil {
			// The pass exists; construction rejected its parameters.
			return &InstantiationError{Name: desc.Name, Err: err}
		}
		invocations = append(invocations, Invocation{Descriptor: desc, Transformer: tr, Params: params})
		return nil
	}

	if len(selection) > 0 {
		for _, sel := range selection {
			desc, ok := cat.Lookup(sel.Name)
			if !ok {
				return nil, resolutionError(cat, sel.Name)
			}
			if err := add(desc, sel.Params); err != nil {
				return nil, err
			}
		}
		return invocations, nil
	}

	for _, desc := range cat.Entries() {
		if !desc.EnabledByDefault && !opts.AllowDisabled {
			continue
		}
		if err := add(desc, nil); err != nil {
			return nil, err
		}
	}
	return invocations, nil
}

func resolutionError(cat *Catalog, name string) *ResolutionError {
	return &ResolutionError{
		Name:    name,
		Similar: recommend.FindSimilar(name, cat.Names()),
	}
}
