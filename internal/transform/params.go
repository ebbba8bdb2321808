package transform

import (
	"strings"
)

// Selection is one user-facing transformer directive: a name plus its raw
// `param=value` tokens, as given on the command line (`--transform` and
// `--configure`) or in the configuration file.
type Selection struct {
	Name   string
	Params []string
}

// ParseSelector splits a `Name:param=value:param=value` directive. Tokens
// are separated by `:` and each token splits on its first `=`, so values
// may contain `=` but not `:`; there is no escaping.
func ParseSelector(value string) Selection {
	parts := strings.Split(value, ":")
	return Selection{Name: parts[0], Params: parts[1:]}
}

// MergeParams unifies the parameter tokens for one transformer. Precedence
// grows left to right: configuration-file tokens, then `--configure`
// tokens, then inline `--transform` tokens; duplicate keys resolve by
// last-applied-wins. A token without `=` fails with a ConfigurationError
// naming the owning transformer.
func MergeParams(name string, fileParams, configureParams, inlineParams []string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, tokens := range [][]string{fileParams, configureParams, inlineParams} {
		for _, token := range tokens {
			key, value, ok := strings.Cut(token, "=")
			if !ok || key == "" {
				return nil, &ConfigurationError{Transformer: name, Token: token}
			}
			merged[key] = value
		}
	}
	return merged, nil
}
