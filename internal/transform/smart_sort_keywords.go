package transform

import (
	"sort"
	"strings"

	"rftidy/internal/model"
)

type smartSortKeywords struct {
	caseInsensitive         bool
	ignoreLeadingUnderscore bool
}

func smartSortKeywordsDescriptor() Descriptor {
	return Descriptor{
		Name:             "SmartSortKeywords",
		EnabledByDefault: false,
		Doc: `Sorts keywords alphabetically. *Disabled by default* - run it
explicitly with ` + "``" + `--transform SmartSortKeywords` + "``" + `.

` + "``" + `case_insensitive` + "``" + ` (default true) folds case for comparison and
` + "``" + `ignore_leading_underscore` + "``" + ` (default false) skips leading underscores,
so ` + "``" + `_private` + "``" + ` can sort next to ` + "``" + `Private` + "``" + `. A comment run directly above
a keyword moves with it. Combine with ` + "``" + `NormalizeNewLines` + "``" + ` to fix up
blank lines after sorting. Skipped when a line range is set.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params, "case_insensitive", "ignore_leading_underscore"); err != nil {
				return nil, err
			}
			t := smartSortKeywords{}
			var err error
			if t.caseInsensitive, err = boolParam(params, "case_insensitive", true); err != nil {
				return nil, err
			}
			if t.ignoreLeadingUnderscore, err = boolParam(params, "ignore_leading_underscore", false); err != nil {
				return nil, err
			}
			return t, nil
		},
	}
}

// keywordUnit is one keyword with its attached comment header lines.
type keywordUnit struct {
	stmts []*model.Statement
	name  string
}

func (t smartSortKeywords) Apply(doc *model.File, cfg Config) error {
	if cfg.Limited() {
		return nil
	}
	for _, sec := range doc.SectionsOf(model.SectionKeywords) {
		lead, units := groupKeywords(sec.Body)
		sort.SliceStable(units, func(i, j int) bool {
			return t.sortKey(units[i].name) < t.sortKey(units[j].name)
		})
		body := make([]*model.Statement, 0, len(sec.Body))
		body = append(body, lead...)
		for _, u := range units {
			body = append(body, u.stmts...)
		}
		sec.Body = body
	}
	return nil
}

// groupKeywords splits a keywords section body into the statements before
// the first keyword and one unit per keyword. Comments immediately above a
// keyword name (no blank line in between) belong to that keyword.
func groupKeywords(body []*model.Statement) (lead []*model.Statement, units []keywordUnit) {
	var pending []*model.Statement // comment run that may announce the next keyword
	appendCurrent := func(stmts ...*model.Statement) {
		if len(units) == 0 {
			lead = append(lead, stmts...)
			return
		}
		last := &units[len(units)-1]
		last.stmts = append(last.stmts, stmts...)
	}
	for _, st := range body {
		switch {
		case !st.Indented() && !st.IsEmpty() && !st.IsComment():
			unit := keywordUnit{name: st.First()}
			unit.stmts = append(unit.stmts, pending...)
			unit.stmts = append(unit.stmts, st)
			pending = nil
			units = append(units, unit)
		case st.IsComment() && !st.Indented():
			pending = append(pending, st)
		default:
			appendCurrent(pending...)
			pending = nil
			appendCurrent(st)
		}
	}
	appendCurrent(pending...)
	return lead, units
}

func (t smartSortKeywords) sortKey(name string) string {
	if t.caseInsensitive {
		name = strings.ToLower(name)
	}
	if t.ignoreLeadingUnderscore {
		name = strings.TrimLeft(name, "_")
	}
	return name
}
