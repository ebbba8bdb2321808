package transform

import (
	"strings"

	"rftidy/internal/model"
)

type removeEmptySettings struct{}

func removeEmptySettingsDescriptor() Descriptor {
	return Descriptor{
		Name:             "RemoveEmptySettings",
		EnabledByDefault: true,
		Doc: `Removes settings that carry no value.

Covers statements in ` + "``" + `*** Settings ***` + "``" + ` sections and bracketed settings
such as ` + "``" + `[Tags]` + "``" + ` inside test cases and keywords. A setting name followed
by no arguments does nothing and is dropped.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params); err != nil {
				return nil, err
			}
			return removeEmptySettings{}, nil
		},
	}
}

func (removeEmptySettings) Apply(doc *model.File, cfg Config) error {
	for _, sec := range doc.Sections {
		switch sec.Type {
		case model.SectionSettings:
			sec.Body = dropEmptySettings(sec.Body, cfg, false)
		case model.SectionTestCases, model.SectionTasks, model.SectionKeywords:
			sec.Body = dropEmptySettings(sec.Body, cfg, true)
		}
	}
	return nil
}

func dropEmptySettings(body []*model.Statement, cfg Config, bracketedOnly bool) []*model.Statement {
	kept := body[:0]
	for _, st := range body {
		if cfg.InRange(st.Line) && isEmptySetting(st, bracketedOnly) {
			continue
		}
		kept = append(kept, st)
	}
	return kept
}

func isEmptySetting(st *model.Statement, bracketedOnly bool) bool {
	name := st.First()
	if name == "" || strings.HasPrefix(name, "#") {
		return false
	}
	if bracketedOnly && !isBracketedSetting(name) {
		return false
	}
	for _, arg := range st.Args() {
		if arg != "" {
			return false
		}
	}
	return true
}

func isBracketedSetting(name string) bool {
	return strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]")
}
