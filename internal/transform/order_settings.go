package transform

import (
	"fmt"
	"strings"

	"rftidy/internal/model"
)

type orderSettings struct {
	keywordBefore []string
	keywordAfter  []string
	testBefore    []string
	testAfter     []string
}

func orderSettingsDescriptor() Descriptor {
	return Descriptor{
		Name:             "OrderSettings",
		EnabledByDefault: true,
		Doc: `Orders bracketed settings inside test cases and keywords.

Settings named in ` + "``" + `test_before` + "``" + `/` + "``" + `keyword_before` + "``" + ` move to the top of
the block in the given order, ` + "``" + `test_after` + "``" + `/` + "``" + `keyword_after` + "``" + ` to the
bottom; other statements keep their relative order. Defaults follow the
conventional layout: documentation and tags first, teardown last. Blocks
crossing the line-range boundary are left alone.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params,
				"keyword_before", "keyword_after", "test_before", "test_after"); err != nil {
				return nil, err
			}
			t := orderSettings{
				keywordBefore: listParam(params, "keyword_before", []string{"documentation", "tags", "timeout", "arguments"}),
				keywordAfter:  listParam(params, "keyword_after", []string{"teardown", "return"}),
				testBefore:    listParam(params, "test_before", []string{"documentation", "tags", "template", "timeout", "setup"}),
				testAfter:     listParam(params, "test_after", []string{"teardown"}),
			}
			for _, names := range [][]string{t.keywordBefore, t.keywordAfter, t.testBefore, t.testAfter} {
				if err := validSettingNames(names); err != nil {
					return nil, err
				}
			}
			return t, nil
		},
	}
}

var knownBlockSettings = map[string]bool{
	"documentation": true,
	"tags":          true,
	"template":      true,
	"timeout":       true,
	"setup":         true,
	"teardown":      true,
	"arguments":     true,
	"return":        true,
}

func validSettingNames(names []string) error {
	for _, name := range names {
		if !knownBlockSettings[name] {
			return fmt.Errorf("unknown setting name %q", name)
		}
	}
	return nil
}

func (t orderSettings) Apply(doc *model.File, cfg Config) error {
	for _, sec := range doc.Sections {
		var before, after []string
		switch sec.Type {
		case model.SectionTestCases, model.SectionTasks:
			before, after = t.testBefore, t.testAfter
		case model.SectionKeywords:
			before, after = t.keywordBefore, t.keywordAfter
		default:
			continue
		}
		lead, blocks := sec.Blocks()
		for i := range blocks {
			if blockInRange(blocks[i], cfg) {
				blocks[i].Body = orderBlockSettings(blocks[i].Body, before, after)
			}
		}
		sec.SetBlocks(lead, blocks)
	}
	return nil
}

func blockInRange(b model.Block, cfg Config) bool {
	if !cfg.Limited() {
		return true
	}
	if !cfg.InRange(b.Header.Line) {
		return false
	}
	for _, st := range b.Body {
		if !cfg.InRange(st.Line) {
			return false
		}
	}
	return true
}

func orderBlockSettings(body []*model.Statement, before, after []string) []*model.Statement {
	settings := make(map[string]*model.Statement)
	rest := make([]*model.Statement, 0, len(body))
	ordered := make(map[*model.Statement]bool)
	for _, name := range append(append([]string{}, before...), after...) {
		for _, st := range body {
			if ordered[st] || settingName(st) != name {
				continue
			}
			settings[name] = st
			ordered[st] = true
			break
		}
	}
	// trailing blank lines stay trailing so block spacing survives
	trailing := len(body)
	for trailing > 0 && body[trailing-1].IsEmpty() {
		trailing--
	}
	for _, st := range body[:trailing] {
		if !ordered[st] {
			rest = append(rest, st)
		}
	}

	out := make([]*model.Statement, 0, len(body))
	for _, name := range before {
		if st, ok := settings[name]; ok {
			out = append(out, st)
		}
	}
	out = append(out, rest...)
	for _, name := range after {
		if st, ok := settings[name]; ok {
			out = append(out, st)
		}
	}
	out = append(out, body[trailing:]...)
	return out
}

// settingName returns the lowercase bracketed-setting name of a statement,
// or "" when it is not a setting.
func settingName(st *model.Statement) string {
	first := st.First()
	if !isBracketedSetting(first) {
		return ""
	}
	return strings.ToLower(strings.Trim(first, "[]"))
}
