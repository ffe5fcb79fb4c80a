package downloadcmd

import (
	"regexp"
	"strings"
)

var (
	separators   = regexp.MustCompile(`[/\\]+`)
	disallowed   = regexp.MustCompile(`[^\w\s\-.æøåÆØÅ]`)
	multiSpaces  = regexp.MustCompile(`\s+`)
)

// SanitizeTitle turns a manifest title into a directory-safe name. Path
// separators become spaces so adjacent words are not glued together; every
// other character outside word characters, whitespace, hyphen, dot and the
// Norwegian letters æøåÆØÅ is dropped.
func SanitizeTitle(name string) string {
	s := separators.ReplaceAllString(name, " ")
	s = disallowed.ReplaceAllString(s, "")
	s = multiSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
