package command

import (
	"regexp"
	"strings"
)

var (
	tokenPattern = regexp.MustCompile(`(?:[^\s"]+|"[^"]*")+`)
	edgeQuotes   = regexp.MustCompile(`^"|"$`)
)

// Tokenize splits free-form extra arguments on whitespace, keeping
// double-quoted spans together. It is best-effort: there are no backslash
// escapes and single quotes are ordinary characters. A leading and a trailing
// quote are dropped from each token; quotes in the middle stay.
func Tokenize(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	matches := tokenPattern.FindAllString(raw, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, edgeQuotes.ReplaceAllString(m, ""))
	}
	return out
}
