package transform

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rftidy/internal/model"
)

type normalizeSectionHeaderName struct {
	uppercase bool
}

func normalizeSectionHeaderNameDescriptor() Descriptor {
	return Descriptor{
		Name:             "NormalizeSectionHeaderName",
		EnabledByDefault: true,
		Doc: `Normalizes section header names.

` + "``" + `*** settings ***` + "``" + ` becomes ` + "``" + `*** Settings ***` + "``" + `, singular forms become
plural. Set ` + "``" + `uppercase=true` + "``" + ` for ` + "``" + `*** SETTINGS ***` + "``" + ` style. Headers not
recognized as standard sections are left alone.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params, "uppercase"); err != nil {
				return nil, err
			}
			upper, err := boolParam(params, "uppercase", false)
			if err != nil {
				return nil, err
			}
			return normalizeSectionHeaderName{uppercase: upper}, nil
		},
	}
}

var headerTitle = cases.Title(language.English)

func (t normalizeSectionHeaderName) Apply(doc *model.File, cfg Config) error {
	for _, sec := range doc.Sections {
		if sec.Header == nil || sec.Type == model.SectionUnknown || !cfg.InRange(sec.Header.Line) {
			continue
		}
		name := sec.Type.String()
		if t.uppercase {
			name = strings.ToUpper(name)
		} else {
			name = headerTitle.String(strings.ToLower(name))
		}
		want := "*** " + name + " ***"
		if sec.Header.First() == want && len(sec.Header.Cells) == 1 {
			continue
		}
		// comments after the header marker survive on the same line
		tail := sec.Header.Args()
		sec.Header.Cells = append([]string{want}, tail...)
		sec.Header.Touch()
	}
	return nil
}
