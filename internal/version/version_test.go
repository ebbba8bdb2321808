package version

import (
	"strings"
	"testing"
)

func TestVersionDefaults(t *testing.T) {
	if Number == "" {
		t.Fatal("Number must have a default value")
	}
	if strings.Count(Number, ".") != 2 {
		t.Fatalf("Number does not look like a semantic version: %q", Number)
	}
	// Number feeds cache keys, so it must stay free of terminal styling.
	if strings.ContainsRune(Number, 0x1b) {
		t.Fatalf("Number carries escape sequences: %q", Number)
	}
	if Version == "" {
		t.Fatal("Version must have a default value")
	}
	// GitCommit and BuildDate stay empty unless set via -ldflags
	if GitCommit != "" || BuildDate != "" {
		t.Fatalf("optional build metadata set by default: %q %q", GitCommit, BuildDate)
	}
}

func TestStyledKeepsUnparseableNumbers(t *testing.T) {
	if got := styled("dev"); got != "dev" {
		t.Fatalf("styled(%q) = %q", "dev", got)
	}
}
