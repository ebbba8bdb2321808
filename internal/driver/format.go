// Package driver orchestrates a formatting run: collecting source files,
// parsing them, applying the transformer pipeline and handling the
// overwrite, diff and check output modes. Setup failures abort the run
// before any file is read; per-file failures are isolated.
package driver

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"rftidy/internal/diff"
	"rftidy/internal/model"
	"rftidy/internal/parser"
	"rftidy/internal/transform"
)

// Options configures a formatting run.
type Options struct {
	Pipeline *transform.Pipeline

	Check     bool   // report would-change status, never write
	Diff      bool   // render a unified diff per changed file
	Overwrite bool   // write changes back (ignored in check mode)
	Output    string // write the result here instead of in place (single source file only)

	LineSeparator string // "native", "unix" or "windows"
	ColorDiff     bool

	Jobs  int    // max concurrent files, 0 means GOMAXPROCS
	Cache *Cache // optional clean-file cache, may be nil

	// Events receives per-file progress when non-nil. The channel is
	// closed when the run finishes.
	Events chan<- Event
}

// FormatResult captures the outcome for a single file.
type FormatResult struct {
	Path    string
	Changed bool
	Err     error
	Diff    string
}

// Event is one progress notification.
type Event struct {
	Kind    EventKind
	Path    string
	Changed bool
	Err     error
}

// EventKind classifies progress events.
type EventKind uint8

const (
	EventStart EventKind = iota
	EventDone
	EventFailed
)

// SourceExtensions lists the file extensions treated as Robot Framework
// sources when directories are walked.
var SourceExtensions = []string{".robot", ".resource"}

// FormatPaths formats the given files and directories (recursively
// collecting Robot Framework sources). Results come back in collection
// order, one per file, with per-file failures recorded in place.
func FormatPaths(ctx context.Context, paths []string, opts Options) ([]FormatResult, error) {
	if opts.Events != nil {
		defer close(opts.Events)
	}
	if opts.Pipeline == nil {
		return nil, errors.New("format: no pipeline configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := CollectFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}
	if opts.Output != "" && len(files) > 1 {
		return nil, errors.New("format: --output requires a single source file")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if opts.Pipeline.Stateful() {
		// a cross-file stateful pass forbids parallel documents
		jobs = 1
	}

	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(opts.Events, Event{Kind: EventStart, Path: path})
			results[i] = formatSingleFile(path, opts)
			kind := EventDone
			if results[i].Err != nil {
				kind = EventFailed
			}
			emit(opts.Events, Event{Kind: kind, Path: path, Changed: results[i].Changed, Err: results[i].Err})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatSingleFile(path string, opts Options) FormatResult {
	result := FormatResult{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	var key Digest
	if opts.Cache != nil {
		key = CleanKey(data, opts.Pipeline, opts.LineSeparator)
		if opts.Cache.IsClean(key) {
			return result
		}
	}

	doc, err := parser.Parse(path, data)
	if err != nil {
		result.Err = err
		return result
	}
	applyLineSeparator(doc, opts.LineSeparator)
	if err := opts.Pipeline.Run(doc); err != nil {
		result.Err = err
		return result
	}

	formatted := doc.Render(opts.Pipeline.Config.SpaceCount)
	result.Changed = !bytes.Equal(data, formatted)

	if opts.Diff && result.Changed {
		result.Diff = diff.Colorize(
			diff.Unified(data, formatted, path, path+" (formatted)"),
			opts.ColorDiff,
		)
	}
	if !result.Changed {
		if opts.Cache != nil {
			opts.Cache.MarkClean(key, path, len(data))
		}
		return result
	}
	if opts.Check {
		return result
	}

	dest := path
	if opts.Output != "" {
		dest = opts.Output
	} else if !opts.Overwrite {
		return result
	}
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(dest, formatted, mode.Perm()); err != nil {
		result.Err = err
	}
	return result
}

func applyLineSeparator(doc *model.File, sep string) {
	switch sep {
	case "unix":
		doc.LineSep = "\n"
	case "windows":
		doc.LineSep = "\r\n"
	case "native":
		if runtime.GOOS == "windows" {
			doc.LineSep = "\r\n"
		} else {
			doc.LineSep = "\n"
		}
	}
}

func emit(events chan<- Event, ev Event) {
	if events != nil {
		events <- ev
	}
}

// CollectFiles expands files and directories into a sorted, deduplicated
// list of Robot Framework source files.
func CollectFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			// explicitly named files are taken regardless of extension
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isSourceFile(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func isSourceFile(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range SourceExtensions {
		if ext == want {
			return true
		}
	}
	return false
}
