package book

import (
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SafeFilename converts a title or chapter key into a name usable on any
// filesystem: invalid characters removed, spaces replaced with
// underscores, length capped at 200 characters.
func SafeFilename(name string) string {
	s := unsafeFilenameChars.ReplaceAllString(name, "")
	s = strings.ReplaceAll(s, " ", "_")
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
