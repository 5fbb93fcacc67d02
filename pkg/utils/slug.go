package utils

import (
	"strings"
	"unicode"
)

// Slugify converts a title into a URL-safe slug: lowercased, runs of
// non-alphanumerics collapsed into single hyphens, no leading or trailing
// hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
