package transform

import (
	"rftidy/internal/model"
)

type discardEmptySections struct {
	allowOnlyComments bool
}

func discardEmptySectionsDescriptor() Descriptor {
	return Descriptor{
		Name:             "DiscardEmptySections",
		EnabledByDefault: true,
		Doc: `Removes sections with no content.

A section counts as empty when its body holds only blank lines. Sections
containing nothing but comments are kept unless ` + "``" + `allow_only_comments` + "``" + ` is
set to false.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params, "allow_only_comments"); err != nil {
				return nil, err
			}
			allow, err := boolParam(params, "allow_only_comments", true)
			if err != nil {
				return nil, err
			}
			return discardEmptySections{allowOnlyComments: allow}, nil
		},
	}
}

func (t discardEmptySections) Apply(doc *model.File, cfg Config) error {
	kept := doc.Sections[:0]
	for _, sec := range doc.Sections {
		if sec.Header == nil || !sectionInRange(sec, cfg) {
			kept = append(kept, sec)
			continue
		}
		if sec.IsEmpty() || (!t.allowOnlyComments && sec.IsCommentsOnly()) {
			continue
		}
		kept = append(kept, sec)
	}
	doc.Sections = kept
	return nil
}

// sectionInRange reports whether every line of the section falls inside
// the configured line range.
func sectionInRange(sec *model.Section, cfg Config) bool {
	if !cfg.Limited() {
		return true
	}
	if sec.Header != nil && !cfg.InRange(sec.Header.Line) {
		return false
	}
	for _, st := range sec.Body {
		if !cfg.InRange(st.Line) {
			return false
		}
	}
	return true
}
