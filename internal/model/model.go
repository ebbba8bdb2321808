// Package model holds the in-memory document model for Robot Framework
// source files. A file is a list of sections, a section is a header plus a
// flat list of statements, and a statement is a list of cells. Transformers
// mutate the model in place; rendering reproduces untouched statements
// byte-for-byte and emits canonical separators only for statements that
// were marked dirty.
package model

import (
	"strings"
)

// SectionType classifies a section by its header name.
type SectionType uint8

const (
	SectionUnknown SectionType = iota
	SectionComments
	SectionSettings
	SectionVariables
	SectionTestCases
	SectionTasks
	SectionKeywords
)

func (t SectionType) String() string {
	switch t {
	case SectionComments:
		return "Comments"
	case SectionSettings:
		return "Settings"
	case SectionVariables:
		return "Variables"
	case SectionTestCases:
		return "Test Cases"
	case SectionTasks:
		return "Tasks"
	case SectionKeywords:
		return "Keywords"
	}
	return "Unknown"
}

// TypeForHeader maps a raw `*** Name ***` header to a section type.
// Matching is case-insensitive and tolerates singular forms.
func TypeForHeader(header string) SectionType {
	name := strings.Trim(header, "* \t")
	name = strings.ToLower(strings.ReplaceAll(name, " ", ""))
	switch name {
	case "comment", "comments":
		return SectionComments
	case "setting", "settings":
		return SectionSettings
	case "variable", "variables":
		return SectionVariables
	case "testcase", "testcases":
		return SectionTestCases
	case "task", "tasks":
		return SectionTasks
	case "keyword", "keywords":
		return SectionKeywords
	}
	return SectionUnknown
}

// Statement is one logical line. Cells are separated by the cell separator
// (two or more spaces, or a tab); an empty first cell marks an indented line.
type Statement struct {
	Cells []string
	Line  int // 1-based line in the original file, 0 for synthesized statements

	raw   string
	dirty bool
}

// NewStatement builds a synthesized (always dirty) statement.
func NewStatement(cells ...string) *Statement {
	return &Statement{Cells: cells, dirty: true}
}

// FromRaw builds a statement backed by its original source text.
func FromRaw(raw string, cells []string, line int) *Statement {
	return &Statement{Cells: cells, Line: line, raw: raw}
}

// Touch marks the statement dirty so Render emits canonical separators.
// Every transformer that edits Cells must call Touch.
func (s *Statement) Touch() {
	s.dirty = true
}

// Dirty reports whether the statement was mutated since parsing.
func (s *Statement) Dirty() bool {
	return s.dirty
}

// Raw returns the original source text, or "" for synthesized statements.
func (s *Statement) Raw() string {
	return s.raw
}

// IsEmpty reports whether the statement holds no visible content.
func (s *Statement) IsEmpty() bool {
	for _, c := range s.Cells {
		if c != "" {
			return false
		}
	}
	return true
}

// IsComment reports whether the first visible cell is a comment marker.
func (s *Statement) IsComment() bool {
	for _, c := range s.Cells {
		if c == "" {
			continue
		}
		return strings.HasPrefix(c, "#")
	}
	return false
}

// Indented reports whether the statement starts with a separator.
func (s *Statement) Indented() bool {
	return len(s.Cells) > 0 && s.Cells[0] == ""
}

// First returns the first visible cell, or "".
func (s *Statement) First() string {
	for _, c := range s.Cells {
		if c != "" {
			return c
		}
	}
	return ""
}

// Args returns the cells after the first visible one.
func (s *Statement) Args() []string {
	for i, c := range s.Cells {
		if c != "" {
			return s.Cells[i+1:]
		}
	}
	return nil
}

// Render returns the statement text using a separator of spaceCount spaces.
// Untouched statements reproduce their original text exactly.
func (s *Statement) Render(spaceCount int) string {
	if !s.dirty {
		return s.raw
	}
	if s.IsEmpty() {
		return ""
	}
	sep := strings.Repeat(" ", spaceCount)
	return strings.Join(s.Cells, sep)
}

// Section is one `*** ... ***` section. Header is nil for content that
// precedes the first header in a file.
type Section struct {
	Header *Statement
	Type   SectionType
	Body   []*Statement
}

// NewSection builds a section with a synthesized canonical header.
func NewSection(t SectionType) *Section {
	return &Section{
		Header: NewStatement("*** " + t.String() + " ***"),
		Type:   t,
	}
}

// IsEmpty reports whether the body holds only blank statements.
func (s *Section) IsEmpty() bool {
	for _, st := range s.Body {
		if !st.IsEmpty() {
			return false
		}
	}
	return true
}

// IsCommentsOnly reports whether every visible body statement is a comment.
func (s *Section) IsCommentsOnly() bool {
	seen := false
	for _, st := range s.Body {
		if st.IsEmpty() {
			continue
		}
		if !st.IsComment() {
			return false
		}
		seen = true
	}
	return seen
}

// Block is one named block inside a test case or keyword section: the
// non-indented name line plus every statement up to the next name line.
type Block struct {
	Header *Statement
	Body   []*Statement
}

// Name returns the block's name line content.
func (b Block) Name() string {
	return b.Header.First()
}

// Blocks splits the section body into leading statements (comments and
// blank lines before the first named block) and the named blocks. Blank
// lines after a block stay attached to it so reordering keeps spacing.
func (s *Section) Blocks() (lead []*Statement, blocks []Block) {
	for _, st := range s.Body {
		if !st.Indented() && !st.IsEmpty() && !st.IsComment() {
			blocks = append(blocks, Block{Header: st})
			continue
		}
		if len(blocks) == 0 {
			lead = append(lead, st)
			continue
		}
		last := &blocks[len(blocks)-1]
		last.Body = append(last.Body, st)
	}
	return lead, blocks
}

// SetBlocks rebuilds the section body from leading statements and blocks.
func (s *Section) SetBlocks(lead []*Statement, blocks []Block) {
	body := make([]*Statement, 0, len(s.Body))
	body = append(body, lead...)
	for _, b := range blocks {
		body = append(body, b.Header)
		body = append(body, b.Body...)
	}
	s.Body = body
}

// File is the document model for one source file.
type File struct {
	Path     string
	LineSep  string // "\n" or "\r\n"
	Sections []*Section
}

// Statements visits every statement in document order.
func (f *File) Statements(fn func(*Statement)) {
	for _, sec := range f.Sections {
		if sec.Header != nil {
			fn(sec.Header)
		}
		for _, st := range sec.Body {
			fn(st)
		}
	}
}

// SectionsOf returns the sections of the given type, in document order.
func (f *File) SectionsOf(t SectionType) []*Section {
	var out []*Section
	for _, sec := range f.Sections {
		if sec.Type == t {
			out = append(out, sec)
		}
	}
	return out
}

// Render serializes the document. Statements render one per line; the file
// always ends with a line separator unless it is completely empty.
func (f *File) Render(spaceCount int) []byte {
	sep := f.LineSep
	if sep == "" {
		sep = "\n"
	}
	var sb strings.Builder
	write := func(st *Statement) {
		sb.WriteString(st.Render(spaceCount))
		sb.WriteString(sep)
	}
	for _, section := range f.Sections {
		if section.Header != nil {
			write(section.Header)
		}
		for _, st := range section.Body {
			write(st)
		}
	}
	return []byte(sb.String())
}
