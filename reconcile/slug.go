package reconcile

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe identifier from a human-readable name:
// lowercase, punctuation stripped, word runs joined with single hyphens.
// "Lake View Villa" becomes "lake-view-villa".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
