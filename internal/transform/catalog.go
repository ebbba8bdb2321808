package transform

import (
	"fmt"
)

// Factory builds a transformer instance from its merged parameters.
// Rejecting a parameter here surfaces as an InstantiationError.
type Factory func(params map[string]string) (Transformer, error)

// Descriptor identifies one formatting pass in a catalog.
type Descriptor struct {
	Name string

	// EnabledByDefault controls whether implicit full-catalog runs include
	// the pass. Disabled passes still run when selected explicitly.
	EnabledByDefault bool

	// Stateful marks passes that accumulate cross-file state. Their
	// presence in a run disables cross-file parallelism.
	Stateful bool

	// Doc is the pass documentation, shown by `describe` after markup
	// stripping.
	Doc string

	Factory Factory
}

// Catalog is an ordered registry of transformer descriptors. The built-in
// catalog is constructed once at startup by DefaultCatalog and passed by
// reference to the loader; it is never ambient global state.
//
// External transformers hook in through Register: a build that wraps rftidy
// as a library registers extra descriptors on its catalog before loading.
type Catalog struct {
	entries []Descriptor
	byName  map[string]int
}

// NewCatalog builds an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]int)}
}

// Register appends a descriptor. Names must be unique within the catalog.
func (c *Catalog) Register(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("catalog: descriptor without a name")
	}
	if d.Factory == nil {
		return fmt.Errorf("catalog: descriptor %s without a factory", d.Name)
	}
	if _, ok := c.byName[d.Name]; ok {
		return fmt.Errorf("catalog: duplicate transformer name %s", d.Name)
	}
	c.byName[d.Name] = len(c.entries)
	c.entries = append(c.entries, d)
	return nil
}

// Lookup returns the descriptor for a name.
func (c *Catalog) Lookup(name string) (Descriptor, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return c.entries[i], true
}

// Entries returns descriptors in declaration order. The returned slice is
// shared; callers must not modify it.
func (c *Catalog) Entries() []Descriptor {
	return c.entries
}

// Names returns catalog names in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, d := range c.entries {
		names[i] = d.Name
	}
	return names
}

// DefaultCatalog builds the built-in catalog. Declaration order is the
// execution order of implicit runs.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, d := range []Descriptor{
		normalizeSeparatorsDescriptor(),
		discardEmptySectionsDescriptor(),
		orderSectionsDescriptor(),
		removeEmptySettingsDescriptor(),
		normalizeAssignmentsDescriptor(),
		orderSettingsDescriptor(),
		orderSettingsSectionDescriptor(),
		alignSettingsSectionDescriptor(),
		alignVariablesSectionDescriptor(),
		normalizeNewLinesDescriptor(),
		normalizeSectionHeaderNameDescriptor(),
		normalizeSettingNameDescriptor(),
		replaceRunKeywordIfDescriptor(),
		splitTooLongLineDescriptor(),
		smartSortKeywordsDescriptor(),
	} {
		if err := c.Register(d); err != nil {
			panic(err) // duplicate built-in name is a programming error
		}
	}
	return c
}
