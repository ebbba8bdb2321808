package transform

import (
	"regexp"
	"strings"

	"rftidy/internal/model"
)

type normalizeAssignments struct {
	signType string
}

func normalizeAssignmentsDescriptor() Descriptor {
	return Descriptor{
		Name:             "NormalizeAssignments",
		EnabledByDefault: true,
		Doc: `Normalizes the assignment sign.

Applies to ` + "``" + `*** Variables ***` + "``" + ` entries and to assignments in test and
keyword steps. ` + "``" + `equal_sign_type` + "``" + ` selects the style: ` + "``" + `remove` + "``" + ` (default)
strips the sign, ` + "``" + `equal_sign` + "``" + ` uses ` + "``" + `${var}=` + "``" + ` and
` + "``" + `space_and_equal_sign` + "``" + ` uses ` + "``" + `${var} =` + "``" + `.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params, "equal_sign_type"); err != nil {
				return nil, err
			}
			signType, err := enumParam(params, "equal_sign_type", "remove",
				"remove", "equal_sign", "space_and_equal_sign")
			if err != nil {
				return nil, err
			}
			return normalizeAssignments{signType: signType}, nil
		},
	}
}

var assignmentPattern = regexp.MustCompile(`^([$@&]\{[^}]*\})\s*=?$`)

func (t normalizeAssignments) Apply(doc *model.File, cfg Config) error {
	for _, sec := range doc.Sections {
		switch sec.Type {
		case model.SectionVariables:
			for _, st := range sec.Body {
				if cfg.InRange(st.Line) {
					t.normalizeCell(st, firstVisibleIndex(st))
				}
			}
		case model.SectionTestCases, model.SectionTasks, model.SectionKeywords:
			for _, st := range sec.Body {
				if !st.Indented() || !cfg.InRange(st.Line) {
					continue
				}
				// the sign may sit only on the last assignment cell;
				// earlier targets always lose theirs
				last := lastAssignmentIndex(st)
				for i := 0; i < last; i++ {
					if st.Cells[i] == "" {
						continue
					}
					bare := normalizeAssignments{signType: "remove"}
					bare.normalizeCell(st, i)
				}
				t.normalizeCell(st, last)
			}
		}
	}
	return nil
}

func (t normalizeAssignments) normalizeCell(st *model.Statement, idx int) {
	if idx < 0 {
		return
	}
	m := assignmentPattern.FindStringSubmatch(st.Cells[idx])
	if m == nil {
		return
	}
	variable := m[1]
	want := variable
	switch t.signType {
	case "equal_sign":
		want = variable + "="
	case "space_and_equal_sign":
		want = variable + " ="
	}
	if st.Cells[idx] == want {
		return
	}
	st.Cells[idx] = want
	st.Touch()
}

func firstVisibleIndex(st *model.Statement) int {
	for i, c := range st.Cells {
		if c != "" {
			return i
		}
	}
	return -1
}

// lastAssignmentIndex finds the last leading cell that looks like an
// assignment target; -1 when the step assigns nothing.
func lastAssignmentIndex(st *model.Statement) int {
	last := -1
	for i, c := range st.Cells {
		if c == "" {
			continue
		}
		if strings.HasPrefix(c, "#") {
			break
		}
		if assignmentPattern.MatchString(c) {
			last = i
			continue
		}
		break
	}
	return last
}
