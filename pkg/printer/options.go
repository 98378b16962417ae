package printer

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/printergen/pkg/errors"
)

// ParseOptions splits a whitespace separated list of Key=Value tokens.
// Each token is split on its first '='. A token without '=' fails the whole
// list.
func ParseOptions(s string) ([]Option, error) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return nil, nil
	}

	options := make([]Option, 0, len(tokens))
	for _, token := range tokens {
		key, value, ok := strings.Cut(token, "=")
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrMalformedOptions,
				"Malformed printer option %q, expected Key=Value", token).
				WithDetail("token", token)
		}
		options = append(options, Option{Key: key, Value: value})
	}
	return options, nil
}

// FormatOptions renders options as the body of a quoted key:value listing,
// e.g. "Duplex":"None", "Tray":"2".
func FormatOptions(options []Option) string {
	parts := make([]string, len(options))
	for i, o := range options {
		parts[i] = fmt.Sprintf(`"%s":"%s"`, o.Key, o.Value)
	}
	return strings.Join(parts, ", ")
}
