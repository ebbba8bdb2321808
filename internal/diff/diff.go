// Package diff renders a unified diff between the original and the
// formatted contents of one file, for the --diff output mode.
package diff

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const contextLines = 3

var (
	addColor    = color.New(color.FgGreen)
	deleteColor = color.New(color.FgRed)
	hunkColor   = color.New(color.FgCyan)
)

// Unified returns a unified diff of a against b, or "" when equal.
func Unified(a, b []byte, fromLabel, toLabel string) string {
	aLines := splitLines(a)
	bLines := splitLines(b)
	ops := diffOps(aLines, bLines)
	if len(ops) == 0 {
		return ""
	}
	hunks := groupHunks(ops)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n", fromLabel)
	fmt.Fprintf(&sb, "+++ %s\n", toLabel)
	for _, h := range hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.aStart+1, h.aLen, h.bStart+1, h.bLen)
		for _, op := range h.ops {
			switch op.kind {
			case opEqual:
				sb.WriteString(" " + op.text + "\n")
			case opDelete:
				sb.WriteString("-" + op.text + "\n")
			case opInsert:
				sb.WriteString("+" + op.text + "\n")
			}
		}
	}
	return sb.String()
}

// Colorize highlights a unified diff for terminal display. With colorize
// false the text is returned unchanged.
func Colorize(text string, colorize bool) string {
	if !colorize || text == "" {
		return text
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = addColor.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = deleteColor.Sprint(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkColor.Sprint(line)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

type opKind uint8

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

type op struct {
	kind opKind
	text string
	// original line indexes, -1 when the side does not apply
	aIndex, bIndex int
}

// diffOps computes an edit script via longest common subsequence. Returns
// nil when the inputs are equal.
func diffOps(a, b []string) []op {
	n, m := len(a), len(b)
	if n == m {
		equal := true
		for i := range a {
			if a[i] != b[i] {
				equal = false
				break
			}
		}
		if equal {
			return nil
		}
	}
	// lcs[i][j] = LCS length of a[i:], b[j:]
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}
	var ops []op
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			ops = append(ops, op{kind: opEqual, text: a[i], aIndex: i, bIndex: j})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, op{kind: opDelete, text: a[i], aIndex: i, bIndex: -1})
			i++
		default:
			ops = append(ops, op{kind: opInsert, text: b[j], aIndex: -1, bIndex: j})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, op{kind: opDelete, text: a[i], aIndex: i, bIndex: -1})
	}
	for ; j < m; j++ {
		ops = append(ops, op{kind: opInsert, text: b[j], aIndex: -1, bIndex: j})
	}
	return ops
}

type hunk struct {
	aStart, aLen int
	bStart, bLen int
	ops          []op
}

// groupHunks folds the edit script into hunks, keeping contextLines of
// equal lines around every change and splitting where context runs apart.
func groupHunks(ops []op) []hunk {
	keep := make([]bool, len(ops))
	for i, o := range ops {
		if o.kind == opEqual {
			continue
		}
		for j := max(0, i-contextLines); j <= min(len(ops)-1, i+contextLines); j++ {
			keep[j] = true
		}
	}
	var hunks []hunk
	for i := 0; i < len(ops); {
		if !keep[i] {
			i++
			continue
		}
		j := i
		for j < len(ops) && keep[j] {
			j++
		}
		hunks = append(hunks, makeHunk(ops[i:j]))
		i = j
	}
	return hunks
}

func makeHunk(ops []op) hunk {
	h := hunk{aStart: -1, bStart: -1, ops: ops}
	for _, o := range ops {
		if o.aIndex >= 0 {
			if h.aStart < 0 {
				h.aStart = o.aIndex
			}
			h.aLen++
		}
		if o.bIndex >= 0 {
			if h.bStart < 0 {
				h.bStart = o.bIndex
			}
			h.bLen++
		}
	}
	if h.aStart < 0 {
		h.aStart = 0
	}
	if h.bStart < 0 {
		h.bStart = 0
	}
	return h
}

func splitLines(data []byte) []string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
