package utils

import (
	"fmt"
	"regexp"
	"strings"
)

func UrlQuery(s string) string { return strings.ReplaceAll(s, " ", "+") }

func Str(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

var domainPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)+`)

// IsURL reports whether the input looks like a navigable address rather than
// a search query: either an explicit http(s) scheme or a bare domain.
func IsURL(input string) bool {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return true
	}
	return domainPattern.MatchString(input)
}

// NormalizeURL prefixes https:// when the input carries no scheme.
func NormalizeURL(input string) string {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return input
	}
	return "https://" + input
}
