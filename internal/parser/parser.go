// Package parser turns Robot Framework source bytes into the document
// model. Parsing is line-based: `*** Name ***` lines open sections, and
// cells inside a line are separated by a tab or by two or more spaces.
package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"rftidy/internal/model"
)

// SyntaxError describes a per-file parse failure. Files that fail to parse
// are reported and skipped; they never abort the rest of a batch.
type SyntaxError struct {
	Path string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// Parse builds the document model for one source file.
func Parse(path string, data []byte) (*model.File, error) {
	if !utf8.Valid(data) {
		return nil, &SyntaxError{Path: path, Line: badLine(data), Msg: "file is not valid UTF-8"}
	}
	text := string(data)
	lineSep := "\n"
	if strings.Count(text, "\r\n")*2 > strings.Count(text, "\n") {
		lineSep = "\r\n"
	}

	file := &model.File{Path: path, LineSep: lineSep}
	current := &model.Section{Type: model.SectionUnknown}

	flush := func() {
		if current.Header != nil || len(current.Body) > 0 {
			file.Sections = append(file.Sections, current)
		}
	}

	for i, raw := range splitLines(text) {
		line := i + 1
		if strings.ContainsRune(raw, 0) {
			return nil, &SyntaxError{Path: path, Line: line, Msg: "NUL byte in source"}
		}
		if isSectionHeader(raw) {
			flush()
			header := model.FromRaw(raw, splitCells(raw), line)
			current = &model.Section{
				Header: header,
				Type:   model.TypeForHeader(header.First()),
			}
			continue
		}
		current.Body = append(current.Body, model.FromRaw(raw, splitCells(raw), line))
	}
	flush()
	return file, nil
}

// isSectionHeader matches section openers. Robot recognizes any
// non-indented line starting with `*` as a header, canonical or not.
func isSectionHeader(line string) bool {
	return strings.HasPrefix(line, "*")
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// splitCells breaks a line into cells on tabs or runs of 2+ spaces. A
// leading separator yields an empty first cell marking indentation.
func splitCells(line string) []string {
	line = strings.TrimRight(line, " \t")
	if line == "" {
		return nil
	}
	var cells []string
	cur := strings.Builder{}
	spaces := 0
	flush := func() {
		cells = append(cells, cur.String())
		cur.Reset()
	}
	for _, r := range line {
		switch {
		case r == '\t':
			spaces = 0
			flush()
		case r == ' ':
			spaces++
			if spaces == 2 {
				// retroactively drop the single space already buffered
				s := cur.String()
				cur.Reset()
				cur.WriteString(strings.TrimSuffix(s, " "))
				flush()
			}
			if spaces < 2 {
				cur.WriteRune(' ')
			}
		default:
			spaces = 0
			cur.WriteRune(r)
		}
	}
	flush()
	return cells
}

func badLine(data []byte) int {
	line := 1
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			return line
		}
		if r == '\n' {
			line++
		}
		data = data[size:]
	}
	return line
}
