package transform

import "fmt"

// ConfigurationError reports a malformed parameter token, e.g. one without
// a `=` separator. It aborts the run before any file is touched.
type ConfigurationError struct {
	Transformer string
	Token       string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid parameter %q for transformer %s: expected name=value", e.Token, e.Transformer)
}

// ResolutionError reports a name that matches nothing in the catalog.
// Similar carries a ready-to-print recommendation clause, empty when no
// close name exists.
type ResolutionError struct {
	Name    string
	Similar string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("importing transformer %q failed: verify if correct name or configuration was provided.%s", e.Name, e.Similar)
}

// InstantiationError reports a transformer that was found but rejected its
// parameters. The underlying cause is reported verbatim; it is never
// reinterpreted as an unknown name.
type InstantiationError struct {
	Name string
	Err  error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("creating instance of transformer %s failed: %v", e.Name, e.Err)
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}
