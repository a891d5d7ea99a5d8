package comment

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxSanitizePasses bounds the decode/strip loop for nested entity encodings.
const maxSanitizePasses = 8

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeContent strips all markup from user text and trims it. Entity-encoded
// markup is decoded and stripped again until the text no longer changes.
func SanitizeContent(raw string) string {
	text := raw
	for range maxSanitizePasses {
		cleaned := strictPolicy.Sanitize(text)
		next := html.UnescapeString(cleaned)
		if next == text {
			return strings.TrimSpace(next)
		}
		text = next
	}
	return strings.TrimSpace(strictPolicy.Sanitize(text))
}
