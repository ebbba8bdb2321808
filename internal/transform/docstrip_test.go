package transform

import (
	"strings"
	"testing"
)

func TestStripMarkup(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"run ``--transform`` to select", "run --transform to select"},
		{"see :ref:`configuration` for details", "see configuration for details"},
		{"`inline` code", "inline code"},
		{"**strong** and *emphasized*", "strong and emphasized"},
		{"kept\n.. note:: dropped\nalso kept", "kept\n\nalso kept"},
		{"plain text stays", "plain text stays"},
	}
	for _, c := range cases {
		if got := StripMarkup(c.in); got != c.want {
			t.Fatalf("StripMarkup(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStripMarkupTrimsSurroundingBlankLines(t *testing.T) {
	if got := StripMarkup("\n\nbody\n"); got != "body" {
		t.Fatalf("got %q", got)
	}
}

func TestCatalogDocsSurviveStripping(t *testing.T) {
	for _, d := range DefaultCatalog().Entries() {
		stripped := StripMarkup(d.Doc)
		if stripped == "" {
			t.Fatalf("%s: documentation stripped to nothing", d.Name)
		}
		if strings.Contains(stripped, "``") {
			t.Fatalf("%s: markup left in %q", d.Name, stripped)
		}
	}
}
