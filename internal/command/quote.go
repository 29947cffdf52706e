package command

import (
	"regexp"
	"strings"
)

var safeToken = regexp.MustCompile(`^[a-zA-Z0-9_/.\-]+$`)

// Quote renders a token for display in the command preview. The result is not
// meant to be fed back to a shell.
func Quote(token string) string {
	if safeToken.MatchString(token) {
		return token
	}
	return `"` + strings.ReplaceAll(token, `"`, `\"`) + `"`
}

// Line joins the executable and quoted args with single spaces.
func Line(executable string, argv []string) string {
	parts := make([]string, 0, len(argv)+1)
	parts = append(parts, executable)
	for _, a := range argv {
		parts = append(parts, Quote(a))
	}
	return strings.Join(parts, " ")
}
