package transform

import (
	"fmt"
	"strconv"
	"strings"
)

// Helpers shared by transformer factories. Factories validate their merged
// parameter set eagerly so bad configuration fails at load time, before
// any file is read.

func rejectUnknownParams(params map[string]string, known ...string) error {
	for key := range params {
		found := false
		for _, k := range known {
			if key == k {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown parameter %q (accepts: %s)", key, strings.Join(known, ", "))
		}
	}
	return nil
}

func intParam(params map[string]string, key string, def int) (int, error) {
	raw, ok := params[key]
	if !ok {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %s expects an integer, got %q", key, raw)
	}
	return value, nil
}

func boolParam(params map[string]string, key string, def bool) (bool, error) {
	raw, ok := params[key]
	if !ok {
		return def, nil
	}
	value, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return false, fmt.Errorf("parameter %s expects a boolean, got %q", key, raw)
	}
	return value, nil
}

func listParam(params map[string]string, key string, def []string) []string {
	raw, ok := params[key]
	if !ok {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

func enumParam(params map[string]string, key, def string, allowed ...string) (string, error) {
	raw, ok := params[key]
	if !ok {
		return def, nil
	}
	raw = strings.ToLower(raw)
	for _, a := range allowed {
		if raw == a {
			return raw, nil
		}
	}
	return "", fmt.Errorf("parameter %s expects one of %s, got %q", key, strings.Join(allowed, "|"), raw)
}
