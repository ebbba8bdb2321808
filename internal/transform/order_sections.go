package transform

import (
	"fmt"

	"rftidy/internal/model"
)

type orderSections struct {
	order []model.SectionType
}

func orderSectionsDescriptor() Descriptor {
	return Descriptor{
		Name:             "OrderSections",
		EnabledByDefault: true,
		Doc: `Merges duplicated sections and orders them canonically.

Default order is ` + "``" + `comments,settings,variables,testcases,keywords` + "``" + `;
override it with the ` + "``" + `order` + "``" + ` parameter. Duplicated sections of the same
type merge into the first occurrence. Content before the first section
header and unrecognized sections keep their position. The transformer is
skipped entirely when a line range is set.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params, "order"); err != nil {
				return nil, err
			}
			names := listParam(params, "order", []string{"comments", "settings", "variables", "testcases", "keywords"})
			order, err := sectionOrder(names)
			if err != nil {
				return nil, err
			}
			return orderSections{order: order}, nil
		},
	}
}

func sectionOrder(names []string) ([]model.SectionType, error) {
	byName := map[string]model.SectionType{
		"comments":  model.SectionComments,
		"settings":  model.SectionSettings,
		"variables": model.SectionVariables,
		"testcases": model.SectionTestCases,
		"tasks":     model.SectionTasks,
		"keywords":  model.SectionKeywords,
	}
	var order []model.SectionType
	seen := make(map[model.SectionType]bool)
	for _, name := range names {
		t, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("parameter order: unknown section name %q", name)
		}
		if seen[t] {
			return nil, fmt.Errorf("parameter order: duplicated section name %q", name)
		}
		seen[t] = true
		order = append(order, t)
	}
	// Tasks sections follow test cases unless placed explicitly.
	if !seen[model.SectionTasks] {
		withTasks := make([]model.SectionType, 0, len(order)+1)
		for _, t := range order {
			withTasks = append(withTasks, t)
			if t == model.SectionTestCases {
				withTasks = append(withTasks, model.SectionTasks)
			}
		}
		order = withTasks
	}
	return order, nil
}

func (t orderSections) Apply(doc *model.File, cfg Config) error {
	if cfg.Limited() {
		return nil
	}
	merged := make(map[model.SectionType]*model.Section)
	var reordered []*model.Section

	appendMerged := func(sec *model.Section) bool {
		first, ok := merged[sec.Type]
		if !ok {
			return false
		}
		if first == sec {
			return true
		}
		first.Body = append(first.Body, sec.Body...)
		return true
	}

	// headerless leading content stays first
	for _, sec := range doc.Sections {
		if sec.Header == nil {
			reordered = append(reordered, sec)
		}
	}
	for _, want := range t.order {
		for _, sec := range doc.Sections {
			if sec.Header == nil || sec.Type != want {
				continue
			}
			if appendMerged(sec) {
				continue
			}
			merged[sec.Type] = sec
			reordered = append(reordered, sec)
		}
	}
	// sections left out of the order, and unrecognized ones, keep their
	// original relative order at the end
	inOrder := make(map[model.SectionType]bool, len(t.order))
	for _, want := range t.order {
		inOrder[want] = true
	}
	for _, sec := range doc.Sections {
		if sec.Header != nil && !inOrder[sec.Type] {
			reordered = append(reordered, sec)
		}
	}
	doc.Sections = reordered
	return nil
}
