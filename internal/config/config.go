// Package config loads run configuration from TOML files: a dedicated
// rftidy.toml, or the [tool.rftidy] table of a pyproject.toml for suites
// living inside Python projects. Discovery walks up from the common parent
// of the source paths until a config file or a .git directory is found.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the dedicated configuration file name.
const FileName = "rftidy.toml"

// Config holds the configuration-file level of settings. CLI flags given
// explicitly override these; transformer parameters listed here sit at the
// lowest merge precedence.
type Config struct {
	Path string // file the config was loaded from, "" when none was found

	Transform     []string // transformer selection directives, "Name:param=value" form
	Configure     []string // configure directives, "Name:param=value" form
	SpaceCount    int
	LineSeparator string
	StartLine     int
	EndLine       int
	Overwrite     *bool
	Diff          bool
	Check         bool
}

// Find locates and loads the configuration governing the given source
// paths. A missing configuration file is not an error: the zero Config is
// returned.
func Find(srcs []string) (Config, error) {
	root, err := projectRoot(srcs)
	if err != nil {
		return Config{}, err
	}
	for dir := root; ; dir = filepath.Dir(dir) {
		dedicated := filepath.Join(dir, FileName)
		if fileExists(dedicated) {
			return Load(dedicated)
		}
		pyproject := filepath.Join(dir, "pyproject.toml")
		if fileExists(pyproject) {
			return loadPyproject(pyproject)
		}
		if fileExists(filepath.Join(dir, ".git")) {
			return Config{}, nil
		}
		if parent := filepath.Dir(dir); parent == dir {
			return Config{}, nil
		}
	}
}

// Load reads a dedicated configuration file.
func Load(path string) (Config, error) {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return Config{}, fmt.Errorf("reading configuration file %s: %w", path, err)
	}
	return fromMap(path, raw)
}

func loadPyproject(path string) (Config, error) {
	var raw struct {
		Tool map[string]map[string]any `toml:"tool"`
	}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return Config{}, fmt.Errorf("reading configuration file %s: %w", path, err)
	}
	section, ok := raw.Tool["rftidy"]
	if !ok {
		return Config{}, nil
	}
	return fromMap(path, section)
}

// fromMap converts a raw TOML table, normalizing key separators
// (dashes become underscores) so `space-count` and `space_count` mean the
// same thing.
func fromMap(path string, raw map[string]any) (Config, error) {
	cfg := Config{Path: path}
	for key, value := range raw {
		key = strings.ToLower(strings.ReplaceAll(key, "-", "_"))
		var err error
		switch key {
		case "transform":
			cfg.Transform, err = stringList(key, value)
		case "configure":
			cfg.Configure, err = stringList(key, value)
		case "spacecount", "space_count":
			cfg.SpaceCount, err = intValue(key, value)
		case "lineseparator", "line_separator":
			cfg.LineSeparator, err = stringValue(key, value)
		case "startline", "start_line":
			cfg.StartLine, err = intValue(key, value)
		case "endline", "end_line":
			cfg.EndLine, err = intValue(key, value)
		case "overwrite":
			var b bool
			if b, err = boolValue(key, value); err == nil {
				cfg.Overwrite = &b
			}
		case "diff":
			cfg.Diff, err = boolValue(key, value)
		case "check":
			cfg.Check, err = boolValue(key, value)
		default:
			err = fmt.Errorf("unknown option %q", key)
		}
		if err != nil {
			return Config{}, fmt.Errorf("configuration file %s: %w", path, err)
		}
	}
	return cfg, nil
}

func stringList(key string, value any) ([]string, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("option %s expects a list of strings", key)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("option %s expects a list of strings", key)
		}
		out = append(out, s)
	}
	return out, nil
}

func stringValue(key string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("option %s expects a string", key)
	}
	return s, nil
}

func intValue(key string, value any) (int, error) {
	i, ok := value.(int64)
	if !ok {
		return 0, fmt.Errorf("option %s expects an integer", key)
	}
	return int(i), nil
}

func boolValue(key string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("option %s expects a boolean", key)
	}
	return b, nil
}

// projectRoot returns the deepest directory containing every source path.
func projectRoot(srcs []string) (string, error) {
	if len(srcs) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		return cwd, nil
	}
	var root string
	for _, src := range srcs {
		abs, err := filepath.Abs(src)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %q: %w", src, err)
		}
		if info, err := os.Stat(abs); err == nil && !info.IsDir() {
			abs = filepath.Dir(abs)
		}
		if root == "" {
			root = abs
			continue
		}
		root = commonDir(root, abs)
	}
	return root, nil
}

func commonDir(a, b string) string {
	for !strings.HasPrefix(b+string(filepath.Separator), a+string(filepath.Separator)) {
		parent := filepath.Dir(a)
		if parent == a {
			return a
		}
		a = parent
	}
	return a
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
