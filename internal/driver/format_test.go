package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rftidy/internal/transform"
)

func newTestPipeline(t *testing.T, names ...string) *transform.Pipeline {
	t.Helper()
	var selection []transform.Selection
	for _, name := range names {
		selection = append(selection, transform.Selection{Name: name})
	}
	invs, err := transform.Load(transform.DefaultCatalog(), selection, nil, nil, transform.LoadOptions{})
	if err != nil {
		t.Fatalf("load pipeline: %v", err)
	}
	return transform.NewPipeline(invs, transform.Config{})
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func readBack(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestFormatPathsOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.robot", "*** settings ***\nLibrary    X\n")

	results, err := FormatPaths(context.Background(), []string{path}, Options{
		Pipeline:  newTestPipeline(t, "NormalizeSectionHeaderName"),
		Overwrite: true,
	})
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if len(results) != 1 || !results[0].Changed || results[0].Err != nil {
		t.Fatalf("results = %+v", results)
	}
	if got := readBack(t, path); got != "*** Settings ***\nLibrary    X\n" {
		t.Fatalf("file not rewritten: %q", got)
	}
}

func TestFormatPathsCheckNeverWrites(t *testing.T) {
	dir := t.TempDir()
	src := "*** settings ***\n"
	path := writeSource(t, dir, "a.robot", src)

	results, err := FormatPaths(context.Background(), []string{path}, Options{
		Pipeline:  newTestPipeline(t, "NormalizeSectionHeaderName"),
		Check:     true,
		Overwrite: true, // check wins
	})
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if !results[0].Changed {
		t.Fatalf("check did not report the change: %+v", results[0])
	}
	if got := readBack(t, path); got != src {
		t.Fatalf("check mode wrote to the file: %q", got)
	}
}

func TestFormatPathsNoOverwriteLeavesFile(t *testing.T) {
	dir := t.TempDir()
	src := "*** settings ***\n"
	path := writeSource(t, dir, "a.robot", src)

	results, err := FormatPaths(context.Background(), []string{path}, Options{
		Pipeline: newTestPipeline(t, "NormalizeSectionHeaderName"),
	})
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if !results[0].Changed {
		t.Fatalf("change not reported")
	}
	if got := readBack(t, path); got != src {
		t.Fatalf("file written without overwrite: %q", got)
	}
}

func TestFormatPathsDiff(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.robot", "*** settings ***\n")

	results, err := FormatPaths(context.Background(), []string{path}, Options{
		Pipeline: newTestPipeline(t, "NormalizeSectionHeaderName"),
		Check:    true,
		Diff:     true,
	})
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	d := results[0].Diff
	if !strings.Contains(d, "-*** settings ***") || !strings.Contains(d, "+*** Settings ***") {
		t.Fatalf("diff missing edits:\n%s", d)
	}
	if !strings.Contains(d, path) {
		t.Fatalf("diff missing file label:\n%s", d)
	}
}

func TestFormatPathsOutput(t *testing.T) {
	dir := t.TempDir()
	src := "*** settings ***\n"
	path := writeSource(t, dir, "a.robot", src)
	out := filepath.Join(dir, "formatted.robot")

	_, err := FormatPaths(context.Background(), []string{path}, Options{
		Pipeline: newTestPipeline(t, "NormalizeSectionHeaderName"),
		Output:   out,
	})
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if got := readBack(t, out); got != "*** Settings ***\n" {
		t.Fatalf("output file: %q", got)
	}
	if got := readBack(t, path); got != src {
		t.Fatalf("source modified despite --output: %q", got)
	}
}

func TestFormatPathsOutputRequiresSingleFile(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.robot", "*** Settings ***\n")
	b := writeSource(t, dir, "b.robot", "*** Settings ***\n")

	_, err := FormatPaths(context.Background(), []string{a, b}, Options{
		Pipeline: newTestPipeline(t, "NormalizeSectionHeaderName"),
		Output:   filepath.Join(dir, "out.robot"),
	})
	if err == nil {
		t.Fatalf("expected error for --output with two files")
	}
}

func TestFormatPathsIsolatesParseFailures(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.robot", "*** Settings ***\nLib\x00rary\n")
	good := writeSource(t, dir, "good.robot", "*** settings ***\n")

	results, err := FormatPaths(context.Background(), []string{dir}, Options{
		Pipeline:  newTestPipeline(t, "NormalizeSectionHeaderName"),
		Overwrite: true,
	})
	if err != nil {
		t.Fatalf("a parse failure aborted the batch: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	byPath := make(map[string]FormatResult)
	for _, r := range results {
		byPath[r.Path] = r
	}
	if byPath[bad].Err == nil {
		t.Fatalf("parse failure not recorded for %s", bad)
	}
	if byPath[good].Err != nil || !byPath[good].Changed {
		t.Fatalf("good file not processed: %+v", byPath[good])
	}
	if got := readBack(t, good); got != "*** Settings ***\n" {
		t.Fatalf("good file not rewritten: %q", got)
	}
}

func TestFormatPathsLineSeparator(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.robot", "*** Settings ***\nLibrary    X\n")

	results, err := FormatPaths(context.Background(), []string{path}, Options{
		Pipeline:      newTestPipeline(t, "NormalizeSectionHeaderName"),
		Overwrite:     true,
		LineSeparator: "windows",
	})
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if !results[0].Changed {
		t.Fatalf("separator change not detected")
	}
	if got := readBack(t, path); got != "*** Settings ***\r\nLibrary    X\r\n" {
		t.Fatalf("CRLF not applied: %q", got)
	}
}

func TestFormatPathsEvents(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.robot", "*** Settings ***\n")
	writeSource(t, dir, "b.robot", "*** settings ***\n")

	events := make(chan Event, 16)
	_, err := FormatPaths(context.Background(), []string{dir}, Options{
		Pipeline: newTestPipeline(t, "NormalizeSectionHeaderName"),
		Check:    true,
		Jobs:     1,
		Events:   events,
	})
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	starts, dones := 0, 0
	for ev := range events { // the driver closes the channel
		switch ev.Kind {
		case EventStart:
			starts++
		case EventDone:
			dones++
		case EventFailed:
			t.Fatalf("unexpected failure event for %s: %v", ev.Path, ev.Err)
		}
	}
	if starts != 2 || dones != 2 {
		t.Fatalf("events: %d starts, %d dones", starts, dones)
	}
}

func TestFormatPathsNoSources(t *testing.T) {
	dir := t.TempDir()
	_, err := FormatPaths(context.Background(), []string{dir}, Options{
		Pipeline: newTestPipeline(t, "NormalizeSectionHeaderName"),
	})
	if err == nil {
		t.Fatalf("expected error for an empty directory")
	}
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.robot", "")
	b := writeSource(t, dir, "b.resource", "")
	writeSource(t, dir, "notes.txt", "")
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	c := writeSource(t, filepath.Join(dir, "sub"), "c.robot", "")

	files, err := CollectFiles([]string{dir})
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	want := []string{a, b, c}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files = %v, want %v", files, want)
		}
	}
}

func TestCollectFilesExplicitAndDeduplicated(t *testing.T) {
	dir := t.TempDir()
	txt := writeSource(t, dir, "notes.txt", "")
	a := writeSource(t, dir, "a.robot", "")

	files, err := CollectFiles([]string{txt, a, a})
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v", files)
	}
}

func TestCollectFilesMissingPath(t *testing.T) {
	if _, err := CollectFiles([]string{"/no/such/path.robot"}); err == nil {
		t.Fatalf("expected error for a missing path")
	}
}
