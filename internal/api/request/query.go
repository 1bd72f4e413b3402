package request

import (
	"fmt"
	"strings"
)

// Response formats accepted by the analysis and chat endpoints.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// ParseFormat validates the format query parameter against allowed.
// An empty parameter selects json.
func ParseFormat(formatParam string, allowed ...string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(formatParam))
	if format == "" {
		return FormatJSON, nil
	}
	if format == FormatJSON {
		return format, nil
	}
	for _, a := range allowed {
		if format == a {
			return format, nil
		}
	}
	return "", fmt.Errorf("invalid format: %s (must be one of: %s)", formatParam, strings.Join(append([]string{FormatJSON}, allowed...), ", "))
}
