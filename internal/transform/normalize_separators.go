package transform

import (
	"rftidy/internal/model"
)

type normalizeSeparators struct{}

func normalizeSeparatorsDescriptor() Descriptor {
	return Descriptor{
		Name:             "NormalizeSeparators",
		EnabledByDefault: true,
		Doc: `Normalizes separators and indentation.

All separators are rewritten to the configured separator width
(` + "``" + `--spacecount` + "``" + `, 4 spaces by default). Indentation follows structure:
one level inside a test or keyword, one more inside each ` + "``" + `IF` + "``" + `, ` + "``" + `FOR` + "``" + `,
` + "``" + `WHILE` + "``" + ` or ` + "``" + `TRY` + "``" + ` block. Trailing separators are removed.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params); err != nil {
				return nil, err
			}
			return normalizeSeparators{}, nil
		},
	}
}

var blockOpeners = map[string]bool{
	"IF": true, "FOR": true, "WHILE": true, "TRY": true,
}

var blockBranches = map[string]bool{
	"ELSE": true, "ELSE IF": true, "EXCEPT": true, "FINALLY": true,
}

func (normalizeSeparators) Apply(doc *model.File, cfg Config) error {
	for _, sec := range doc.Sections {
		if sec.Header != nil {
			reindent(sec.Header, 0, cfg)
		}
		blocks := sec.Type == model.SectionTestCases ||
			sec.Type == model.SectionTasks ||
			sec.Type == model.SectionKeywords
		depth := 0
		for _, st := range sec.Body {
			if st.IsEmpty() {
				continue
			}
			if !st.Indented() {
				depth = 0
				reindent(st, 0, cfg)
				continue
			}
			if !blocks {
				reindent(st, 1, cfg)
				continue
			}
			first := st.First()
			switch {
			case first == "END":
				if depth > 0 {
					depth--
				}
				reindent(st, 1+depth, cfg)
			case blockBranches[first]:
				reindent(st, max(depth, 1), cfg)
			default:
				reindent(st, 1+depth, cfg)
				if blockOpeners[first] {
					depth++
				}
			}
		}
	}
	return nil
}

// reindent rewrites a statement to the canonical form for its level:
// level leading separators, no trailing separators.
func reindent(st *model.Statement, level int, cfg Config) {
	if !cfg.InRange(st.Line) {
		return
	}
	cells := st.Cells
	for len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	st.Cells = append(make([]string, level), cells...)
	st.Touch()
}
