package transform

import (
	"github.com/mattn/go-runewidth"

	"rftidy/internal/model"
)

type splitTooLongLine struct {
	lineLength int
}

func splitTooLongLineDescriptor() Descriptor {
	return Descriptor{
		Name:             "SplitTooLongLine",
		EnabledByDefault: true,
		Doc: `Splits statements longer than ` + "``" + `line_length` + "``" + ` (default 120).

Arguments that do not fit move to continuation lines marked with ` + "``" + `...` + "``" + `.
Section headers and comment lines are never split.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params, "line_length"); err != nil {
				return nil, err
			}
			length, err := intParam(params, "line_length", 120)
			if err != nil {
				return nil, err
			}
			if length < 1 {
				return nil, errLineLength
			}
			return splitTooLongLine{lineLength: length}, nil
		},
	}
}

type constError string

func (e constError) Error() string { return string(e) }

const errLineLength = constError("parameter line_length must be positive")

func (t splitTooLongLine) Apply(doc *model.File, cfg Config) error {
	for _, sec := range doc.Sections {
		var body []*model.Statement
		changed := false
		for _, st := range sec.Body {
			if !cfg.InRange(st.Line) || !t.tooLong(st, cfg) || !splittable(st) {
				body = append(body, st)
				continue
			}
			body = append(body, t.split(st, cfg)...)
			changed = true
		}
		if changed {
			sec.Body = body
		}
	}
	return nil
}

func (t splitTooLongLine) tooLong(st *model.Statement, cfg Config) bool {
	return runewidth.StringWidth(st.Render(cfg.SpaceCount)) > t.lineLength
}

func splittable(st *model.Statement) bool {
	if st.IsEmpty() || st.IsComment() {
		return false
	}
	args := 0
	for _, arg := range st.Args() {
		if arg != "" {
			args++
		}
	}
	return args > 0
}

// split greedily packs arguments onto the statement and its continuation
// lines, each capped at line_length. Every line carries at least one cell
// so splitting always terminates.
func (t splitTooLongLine) split(st *model.Statement, cfg Config) []*model.Statement {
	var indent []string
	for _, c := range st.Cells {
		if c != "" {
			break
		}
		indent = append(indent, "")
	}
	head := append(append([]string{}, indent...), st.First())
	args := st.Args()

	var out []*model.Statement
	current := st
	cells := head
	flush := func() {
		current.Cells = cells
		current.Touch()
		out = append(out, current)
		current = model.NewStatement()
		cells = append(append([]string{}, indent...), "...")
	}
	width := func(cs []string) int {
		line := model.NewStatement(cs...)
		return runewidth.StringWidth(line.Render(cfg.SpaceCount))
	}
	for _, arg := range args {
		if arg == "" {
			continue
		}
		next := append(append([]string{}, cells...), arg)
		if width(next) > t.lineLength && len(cells) > len(indent)+1 {
			flush()
			next = append(append([]string{}, cells...), arg)
		}
		cells = next
	}
	flush()
	return out
}
