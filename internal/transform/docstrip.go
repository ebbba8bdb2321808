package transform

import (
	"regexp"
	"strings"
)

// Transformer documentation is written with lightweight reST markup so it
// can be published as rendered docs. StripMarkup flattens it for terminal
// display. Stripping never fails: markup we do not recognize passes
// through unchanged, and the result never influences formatting.

var (
	docDoubleBacktick = regexp.MustCompile("``([^`]+)``")
	docRole           = regexp.MustCompile(":[a-zA-Z]+:`([^`]+)`")
	docSingleBacktick = regexp.MustCompile("`([^`]+)`")
	docBold           = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	docEmphasis       = regexp.MustCompile(`\*([^*\n]+)\*`)
	docDirective      = regexp.MustCompile(`(?m)^\s*\.\. [a-zA-Z]+::.*$`)
)

// StripMarkup renders raw transformer documentation as plain text.
func StripMarkup(doc string) string {
	out := docDirective.ReplaceAllString(doc, "")
	out = docDoubleBacktick.ReplaceAllString(out, "$1")
	out = docRole.ReplaceAllString(out, "$1")
	out = docSingleBacktick.ReplaceAllString(out, "$1")
	out = docBold.ReplaceAllString(out, "$1")
	out = docEmphasis.ReplaceAllString(out, "$1")
	return strings.Trim(out, "\n")
}
