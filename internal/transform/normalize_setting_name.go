package transform

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rftidy/internal/model"
)

type normalizeSettingName struct{}

func normalizeSettingNameDescriptor() Descriptor {
	return Descriptor{
		Name:             "NormalizeSettingName",
		EnabledByDefault: true,
		Doc: `Normalizes setting name casing.

` + "``" + `library` + "``" + ` becomes ` + "``" + `Library` + "``" + `, ` + "``" + `suite setup` + "``" + ` becomes ` + "``" + `Suite Setup` + "``" + `
and ` + "``" + `[tags]` + "``" + ` becomes ` + "``" + `[Tags]` + "``" + `. Unknown setting names are not touched.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params); err != nil {
				return nil, err
			}
			return normalizeSettingName{}, nil
		},
	}
}

var settingTitle = cases.Title(language.English)

func (normalizeSettingName) Apply(doc *model.File, cfg Config) error {
	for _, sec := range doc.Sections {
		switch sec.Type {
		case model.SectionSettings:
			for _, st := range sec.Body {
				if cfg.InRange(st.Line) {
					normalizeSuiteSetting(st)
				}
			}
		case model.SectionTestCases, model.SectionTasks, model.SectionKeywords:
			for _, st := range sec.Body {
				if cfg.InRange(st.Line) {
					normalizeBracketedSetting(st)
				}
			}
		}
	}
	return nil
}

func normalizeSuiteSetting(st *model.Statement) {
	idx := firstVisibleIndex(st)
	if idx < 0 {
		return
	}
	name := st.Cells[idx]
	trimmed := strings.TrimRight(name, " ")
	if _, known := settingsGroups[strings.ToLower(trimmed)]; !known {
		return
	}
	// alignment padding survives, only the casing changes
	want := settingTitle.String(strings.ToLower(trimmed)) + name[len(trimmed):]
	if name != want {
		st.Cells[idx] = want
		st.Touch()
	}
}

func normalizeBracketedSetting(st *model.Statement) {
	idx := firstVisibleIndex(st)
	if idx < 0 {
		return
	}
	trimmed := strings.TrimRight(st.Cells[idx], " ")
	if !isBracketedSetting(trimmed) {
		return
	}
	name := strings.Trim(trimmed, "[]")
	if !knownBlockSettings[strings.ToLower(name)] {
		return
	}
	want := "[" + settingTitle.String(strings.ToLower(name)) + "]" + st.Cells[idx][len(trimmed):]
	if st.Cells[idx] != want {
		st.Cells[idx] = want
		st.Touch()
	}
}
