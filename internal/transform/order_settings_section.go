package transform

import (
	"fmt"
	"strings"

	"rftidy/internal/model"
)

type orderSettingsSection struct {
	groupOrder []string
}

// settingsGroups maps every recognized suite setting to its group.
var settingsGroups = map[string]string{
	"documentation": "documentation",
	"metadata":      "documentation",

	"library":   "imports",
	"resource":  "imports",
	"variables": "imports",

	"suite setup":    "settings",
	"suite teardown": "settings",
	"test setup":     "settings",
	"test teardown":  "settings",
	"test template":  "settings",
	"test timeout":   "settings",
	"task setup":     "settings",
	"task teardown":  "settings",
	"task template":  "settings",
	"task timeout":   "settings",

	"force tags":   "tags",
	"default tags": "tags",
	"test tags":    "tags",
	"keyword tags": "tags",
}

func orderSettingsSectionDescriptor() Descriptor {
	return Descriptor{
		Name:             "OrderSettingsSection",
		EnabledByDefault: true,
		Doc: `Groups and orders the ` + "``" + `*** Settings ***` + "``" + ` section.

Settings are gathered into groups - ` + "``" + `documentation` + "``" + ` (Documentation,
Metadata), ` + "``" + `imports` + "``" + ` (Library, Resource, Variables), ` + "``" + `settings` + "``" + ` (suite
and test setups, teardowns, templates, timeouts) and ` + "``" + `tags` + "``" + ` - emitted in
` + "``" + `group_order` + "``" + `. Within a group the original order is kept. Comments stick
to the statement below them. Unknown settings go last. Skipped for
sections crossing a line-range boundary.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params, "group_order"); err != nil {
				return nil, err
			}
			order := listParam(params, "group_order", []string{"documentation", "imports", "settings", "tags"})
			for _, g := range order {
				switch g {
				case "documentation", "imports", "settings", "tags":
				default:
					return nil, fmt.Errorf("parameter group_order: unknown group %q", g)
				}
			}
			return orderSettingsSection{groupOrder: order}, nil
		},
	}
}

func (t orderSettingsSection) Apply(doc *model.File, cfg Config) error {
	for _, sec := range doc.SectionsOf(model.SectionSettings) {
		if !sectionInRange(sec, cfg) {
			continue
		}
		t.orderSection(sec)
	}
	return nil
}

// settingUnit is one setting statement plus the comments directly above it
// and the continuation lines below it.
type settingUnit struct {
	comments []*model.Statement
	stmt     *model.Statement
	cont     []*model.Statement
	group    string
}

func (t orderSettingsSection) orderSection(sec *model.Section) {
	var units []settingUnit
	var pending []*model.Statement
	for _, st := range sec.Body {
		if st.IsEmpty() {
			continue // blank layout is NormalizeNewLines' job
		}
		if st.IsComment() {
			pending = append(pending, st)
			continue
		}
		if strings.HasPrefix(st.First(), "...") && len(units) > 0 {
			last := &units[len(units)-1]
			last.cont = append(last.cont, st)
			continue
		}
		group := settingsGroups[strings.ToLower(st.First())]
		units = append(units, settingUnit{comments: pending, stmt: st, group: group})
		pending = nil
	}

	body := make([]*model.Statement, 0, len(sec.Body))
	emit := func(u settingUnit) {
		body = append(body, u.comments...)
		body = append(body, u.stmt)
		body = append(body, u.cont...)
	}
	for _, group := range t.groupOrder {
		for _, u := range units {
			if u.group == group {
				emit(u)
			}
		}
	}
	for _, u := range units {
		if u.group == "" {
			emit(u)
		}
	}
	body = append(body, pending...)
	sec.Body = body
}
