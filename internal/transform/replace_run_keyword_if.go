package transform

import (
	"strings"

	"rftidy/internal/model"
)

type replaceRunKeywordIf struct{}

func replaceRunKeywordIfDescriptor() Descriptor {
	return Descriptor{
		Name:             "ReplaceRunKeywordIf",
		EnabledByDefault: true,
		Doc: `Replaces ` + "``" + `Run Keyword If` + "``" + ` calls with ` + "``" + `IF` + "``" + ` blocks.

` + "``" + `ELSE IF` + "``" + ` and ` + "``" + `ELSE` + "``" + ` arguments become block branches and a branch
calling ` + "``" + `Run Keywords` + "``" + ` splits into one statement per keyword. An
assignment without an ` + "``" + `ELSE` + "``" + ` branch gains one assigning ` + "``" + `${None}` + "``" + `,
preserving the original return value. Calls with unrecognized shapes,
including ones carrying trailing comments, are left unchanged. Statements
crossing the line-range boundary are left alone.`,
		Factory: func(params map[string]string) (Transformer, error) {
			if err := rejectUnknownParams(params); err != nil {
				return nil, err
			}
			return replaceRunKeywordIf{}, nil
		},
	}
}

func (t replaceRunKeywordIf) Apply(doc *model.File, cfg Config) error {
	for _, sec := range doc.Sections {
		switch sec.Type {
		case model.SectionTestCases, model.SectionTasks, model.SectionKeywords:
		default:
			continue
		}
		sec.Body = t.rewriteBody(sec.Body, cfg)
	}
	return nil
}

// rewriteBody walks statements together with their `...` continuations and
// replaces every well-formed Run Keyword If call in place.
func (t replaceRunKeywordIf) rewriteBody(body []*model.Statement, cfg Config) []*model.Statement {
	out := make([]*model.Statement, 0, len(body))
	for i := 0; i < len(body); {
		j := i + 1
		for j < len(body) && isContinuation(body[j]) {
			j++
		}
		group := body[i:j]
		if repl, ok := t.rewrite(group, cfg); ok {
			out = append(out, repl...)
		} else {
			out = append(out, group...)
		}
		i = j
	}
	return out
}

func isContinuation(st *model.Statement) bool {
	return st.Indented() && st.First() == "..."
}

// rkiBranch is one arm of the rewritten block. An empty condition marks
// the final ELSE.
type rkiBranch struct {
	condition string
	call      []string
}

func (t replaceRunKeywordIf) rewrite(group []*model.Statement, cfg Config) ([]*model.Statement, bool) {
	head := group[0]
	if !head.Indented() {
		return nil, false
	}
	if cfg.Limited() {
		for _, st := range group {
			if !cfg.InRange(st.Line) {
				return nil, false
			}
		}
	}

	var tokens []string
	for i, st := range group {
		seenMarker := i == 0 // only continuations carry a `...` marker
		for _, c := range st.Cells {
			if c == "" {
				continue
			}
			if !seenMarker {
				seenMarker = true
				continue
			}
			if strings.HasPrefix(c, "#") {
				return nil, false
			}
			tokens = append(tokens, c)
		}
	}

	var assign []string
	for len(tokens) > 0 && assignmentPattern.MatchString(tokens[0]) {
		assign = append(assign, tokens[0])
		tokens = tokens[1:]
	}
	if len(tokens) == 0 || normalizedKeywordName(tokens[0]) != "runkeywordif" {
		return nil, false
	}
	branches, ok := parseRKIBranches(tokens[1:])
	if !ok {
		return nil, false
	}

	depth := 0
	for depth < len(head.Cells) && head.Cells[depth] == "" {
		depth++
	}
	indent := make([]string, depth)
	bodyIndent := make([]string, depth+1)
	newLine := func(prefix []string, cells ...string) *model.Statement {
		return model.NewStatement(append(append([]string{}, prefix...), cells...)...)
	}

	var out []*model.Statement
	hasElse := false
	for i, b := range branches {
		switch {
		case i == 0:
			out = append(out, newLine(indent, "IF", b.condition))
		case b.condition != "":
			out = append(out, newLine(indent, "ELSE IF", b.condition))
		default:
			hasElse = true
			out = append(out, newLine(indent, "ELSE"))
		}
		calls, ok := expandRKICall(b.call, assign)
		if !ok {
			return nil, false
		}
		for _, call := range calls {
			out = append(out, newLine(bodyIndent, call...))
		}
	}
	if len(assign) > 0 && !hasElse {
		out = append(out, newLine(indent, "ELSE"))
		none := append(append([]string{}, assign...), "Set Variable")
		for range assign {
			none = append(none, "${None}")
		}
		out = append(out, newLine(bodyIndent, none...))
	}
	out = append(out, newLine(indent, "END"))
	return out, true
}

// parseRKIBranches splits the argument list on ELSE IF / ELSE markers. An
// IF or ELSE IF arm needs a condition plus a keyword call; ELSE must come
// last and needs a call.
func parseRKIBranches(args []string) ([]rkiBranch, bool) {
	var branches []rkiBranch
	kind := "IF"
	var seg []string
	flush := func() bool {
		if kind == "ELSE" {
			if len(seg) < 1 {
				return false
			}
			branches = append(branches, rkiBranch{call: seg})
			return true
		}
		if len(seg) < 2 {
			return false
		}
		branches = append(branches, rkiBranch{condition: seg[0], call: seg[1:]})
		return true
	}
	sawElse := false
	for _, a := range args {
		if a == "ELSE" || a == "ELSE IF" {
			if sawElse || !flush() {
				return nil, false
			}
			kind = a
			sawElse = a == "ELSE"
			seg = nil
			continue
		}
		seg = append(seg, a)
	}
	if !flush() {
		return nil, false
	}
	return branches, true
}

// expandRKICall turns one branch call into block-body statements. A
// `Run Keywords` call becomes one statement per keyword: arguments are
// grouped by AND separators, or each taken as a bare keyword when no AND
// is present.
func expandRKICall(call, assign []string) ([][]string, bool) {
	if normalizedKeywordName(call[0]) != "runkeywords" {
		return [][]string{append(append([]string{}, assign...), call...)}, true
	}
	if len(assign) > 0 || len(call) < 2 {
		return nil, false
	}
	rest := call[1:]
	hasAnd := false
	for _, a := range rest {
		if a == "AND" {
			hasAnd = true
			break
		}
	}
	var calls [][]string
	if !hasAnd {
		for _, a := range rest {
			calls = append(calls, []string{a})
		}
		return calls, true
	}
	var cur []string
	for _, a := range rest {
		if a != "AND" {
			cur = append(cur, a)
			continue
		}
		if len(cur) == 0 {
			return nil, false
		}
		calls = append(calls, cur)
		cur = nil
	}
	if len(cur) == 0 {
		return nil, false
	}
	return append(calls, cur), true
}

// normalizedKeywordName folds a keyword name the way Robot Framework
// matches it: case, spaces and underscores are ignored and a library
// prefix is dropped.
func normalizedKeywordName(name string) string {
	name = strings.ToLower(name)
	name = strings.NewReplacer(" ", "", "_", "").Replace(name)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
