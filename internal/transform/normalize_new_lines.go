package transform

import (
	"fmt"

	"rftidy/internal/model"
)

type normalizeNewLines struct {
	sectionLines     int
	consecutiveLines int
}

func normalizeNewLinesDescriptor() Descriptor {
	return Descriptor{
		Name:             "NormalizeNewLines",
		EnabledByDefault: true,
		Doc: `Normalizes blank lines.

Runs of blank lines inside a section collapse to ` + "``" + `consecutive_lines` + "``" + `
(default 1) and sections are separated by exactly ` + "``" + `section_lines` + "``" + `
(default 1) blank lines. Trailing blank lines at the end of the file are
removed. Only blank lines inside the configured line range are touched.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params, "section_lines", "consecutive_lines"); err != nil {
				return nil, err
			}
			t := normalizeNewLines{}
			var err error
			if t.sectionLines, err = intParam(params, "section_lines", 1); err != nil {
				return nil, err
			}
			if t.consecutiveLines, err = intParam(params, "consecutive_lines", 1); err != nil {
				return nil, err
			}
			if t.sectionLines < 0 || t.consecutiveLines < 0 {
				return nil, fmt.Errorf("section_lines and consecutive_lines must not be negative")
			}
			return t, nil
		},
	}
}

func (t normalizeNewLines) Apply(doc *model.File, cfg Config) error {
	for i, sec := range doc.Sections {
		sec.Body = t.collapseRuns(sec.Body, cfg)
		sec.Body = t.trimSectionTail(sec.Body, cfg, i == len(doc.Sections)-1)
	}
	return nil
}

// collapseRuns shortens every in-range run of blank statements to the
// consecutive_lines limit.
func (t normalizeNewLines) collapseRuns(body []*model.Statement, cfg Config) []*model.Statement {
	kept := body[:0]
	run := 0
	for _, st := range body {
		if st.IsEmpty() && cfg.InRange(st.Line) {
			run++
			if run > t.consecutiveLines {
				continue
			}
		} else if !st.IsEmpty() {
			run = 0
		}
		kept = append(kept, st)
	}
	return kept
}

// trimSectionTail makes the section end with exactly section_lines blank
// statements, or none for the last section of the file.
func (t normalizeNewLines) trimSectionTail(body []*model.Statement, cfg Config, last bool) []*model.Statement {
	end := len(body)
	for end > 0 && body[end-1].IsEmpty() {
		if !cfg.InRange(body[end-1].Line) {
			return body // the boundary is outside the range, keep as is
		}
		end--
	}
	if cfg.Limited() && end < len(body) {
		// only adjust a boundary the range fully covers
		for _, st := range body[end:] {
			if !cfg.InRange(st.Line) {
				return body
			}
		}
	}
	body = body[:end]
	if last {
		return body
	}
	for i := 0; i < t.sectionLines; i++ {
		body = append(body, model.NewStatement())
	}
	return body
}
