package transform

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"rftidy/internal/model"
)

// Column alignment pads cells with trailing spaces so that the configured
// cell separator starts at the same column on every statement of a
// section. Padding is invisible to Robot Framework (it only widens the
// separator) and disappears on reparse, so aligned output stays stable.

type alignSettingsSection struct {
	upToColumn int
}

func alignSettingsSectionDescriptor() Descriptor {
	return Descriptor{
		Name:             "AlignSettingsSection",
		EnabledByDefault: true,
		Doc: `Aligns ` + "``" + `*** Settings ***` + "``" + ` sections into columns.

The first ` + "``" + `up_to_column` + "``" + ` columns (default 2) are padded to the width of
the widest cell in that column. Comments and continuation lines are left
untouched.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params, "up_to_column"); err != nil {
				return nil, err
			}
			upTo, err := intParam(params, "up_to_column", 2)
			if err != nil {
				return nil, err
			}
			return alignSettingsSection{upToColumn: upTo}, nil
		},
	}
}

func (t alignSettingsSection) Apply(doc *model.File, cfg Config) error {
	for _, sec := range doc.SectionsOf(model.SectionSettings) {
		alignSectionColumns(sec, t.upToColumn, cfg)
	}
	return nil
}

type alignVariablesSection struct {
	upToColumn int
}

func alignVariablesSectionDescriptor() Descriptor {
	return Descriptor{
		Name:             "AlignVariablesSection",
		EnabledByDefault: true,
		Doc: `Aligns ` + "``" + `*** Variables ***` + "``" + ` sections into columns.

The first ` + "``" + `up_to_column` + "``" + ` columns (default 2) are padded to the width of
the widest cell in that column. Comments and continuation lines are left
untouched.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params, "up_to_column"); err != nil {
				return nil, err
			}
			upTo, err := intParam(params, "up_to_column", 2)
			if err != nil {
				return nil, err
			}
			return alignVariablesSection{upToColumn: upTo}, nil
		},
	}
}

func (t alignVariablesSection) Apply(doc *model.File, cfg Config) error {
	for _, sec := range doc.SectionsOf(model.SectionVariables) {
		alignSectionColumns(sec, t.upToColumn, cfg)
	}
	return nil
}

func alignSectionColumns(sec *model.Section, upToColumn int, cfg Config) {
	if upToColumn < 1 {
		upToColumn = 1
	}
	widths := make([]int, upToColumn)
	aligned := 0
	for _, st := range sec.Body {
		if !alignable(st, cfg) {
			continue
		}
		aligned++
		for i, cell := range st.Cells {
			if i >= upToColumn || i == len(st.Cells)-1 {
				break
			}
			if w := runewidth.StringWidth(strings.TrimRight(cell, " ")); w > widths[i] {
				widths[i] = w
			}
		}
	}
	if aligned == 0 {
		return
	}
	for _, st := range sec.Body {
		if !alignable(st, cfg) {
			continue
		}
		changed := false
		for i := range st.Cells {
			if i >= upToColumn || i == len(st.Cells)-1 {
				break
			}
			padded := padCell(st.Cells[i], widths[i])
			if padded != st.Cells[i] {
				st.Cells[i] = padded
				changed = true
			}
		}
		if changed {
			st.Touch()
		}
	}
}

func alignable(st *model.Statement, cfg Config) bool {
	if !cfg.InRange(st.Line) || st.IsEmpty() || st.IsComment() {
		return false
	}
	return !strings.HasPrefix(st.First(), "...")
}

func padCell(cell string, width int) string {
	cell = strings.TrimRight(cell, " ")
	if pad := width - runewidth.StringWidth(cell); pad > 0 {
		return cell + strings.Repeat(" ", pad)
	}
	return cell
}
