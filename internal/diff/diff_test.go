package diff

import (
	"strings"
	"testing"
)

func TestUnifiedEqualInputs(t *testing.T) {
	data := []byte("a\nb\nc\n")
	if got := Unified(data, data, "x", "y"); got != "" {
		t.Fatalf("equal inputs produced a diff:\n%s", got)
	}
}

func TestUnifiedSimpleChange(t *testing.T) {
	a := []byte("one\ntwo\nthree\n")
	b := []byte("one\n2\nthree\n")
	got := Unified(a, b, "a.robot", "a.robot")
	want := "--- a.robot\n" +
		"+++ a.robot\n" +
		"@@ -1,3 +1,3 @@\n" +
		" one\n" +
		"-two\n" +
		"+2\n" +
		" three\n"
	if got != want {
		t.Fatalf("diff mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestUnifiedInsertionAndDeletion(t *testing.T) {
	a := []byte("keep\ndrop\n")
	b := []byte("keep\nadded\n")
	got := Unified(a, b, "a", "b")
	if !strings.Contains(got, "-drop\n") || !strings.Contains(got, "+added\n") {
		t.Fatalf("edit lines missing:\n%s", got)
	}
}

func TestUnifiedSplitsDistantChanges(t *testing.T) {
	var aLines, bLines []string
	for i := 0; i < 30; i++ {
		aLines = append(aLines, "ctx")
		bLines = append(bLines, "ctx")
	}
	aLines[0], bLines[0] = "first-old", "first-new"
	aLines[29], bLines[29] = "last-old", "last-new"
	a := []byte(strings.Join(aLines, "\n") + "\n")
	b := []byte(strings.Join(bLines, "\n") + "\n")

	got := Unified(a, b, "a", "b")
	if n := strings.Count(got, "@@ -"); n != 2 {
		t.Fatalf("expected 2 hunks, got %d:\n%s", n, got)
	}
	if !strings.HasPrefix(got, "--- a\n+++ b\n@@ -1,") {
		t.Fatalf("first hunk header wrong:\n%s", got)
	}
}

func TestUnifiedContextWindow(t *testing.T) {
	a := []byte("1\n2\n3\n4\n5\n6\n7\n8\n9\n")
	b := []byte("1\n2\n3\n4\nX\n6\n7\n8\n9\n")
	got := Unified(a, b, "a", "b")
	if strings.Contains(got, " 1\n") || strings.Contains(got, " 9\n") {
		t.Fatalf("context exceeds window:\n%s", got)
	}
	for _, line := range []string{" 2\n", " 4\n", "-5\n", "+X\n", " 6\n", " 8\n"} {
		if !strings.Contains(got, line) {
			t.Fatalf("missing %q:\n%s", line, got)
		}
	}
	if !strings.Contains(got, "@@ -2,7 +2,7 @@\n") {
		t.Fatalf("hunk header wrong:\n%s", got)
	}
}

func TestUnifiedNormalizesCRLF(t *testing.T) {
	a := []byte("one\r\ntwo\r\n")
	b := []byte("one\ntwo\n")
	if got := Unified(a, b, "a", "b"); got != "" {
		t.Fatalf("line separator alone produced a diff:\n%s", got)
	}
}

func TestColorizeDisabled(t *testing.T) {
	text := "--- a\n+++ b\n@@ -1,1 +1,1 @@\n-x\n+y\n"
	if got := Colorize(text, false); got != text {
		t.Fatalf("disabled colorize altered text")
	}
}

func TestColorizeKeepsLineCount(t *testing.T) {
	text := "--- a\n+++ b\n@@ -1,1 +1,1 @@\n-x\n+y\n"
	got := Colorize(text, true)
	if strings.Count(got, "\n") != strings.Count(text, "\n") {
		t.Fatalf("colorize changed line structure:\n%q", got)
	}
}
