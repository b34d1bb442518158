// Package sanitize strips markup from user-supplied text before it is stored.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxPasses bounds re-sanitizing when decoded entities form new tags.
const maxPasses = 5

// strict allows no elements and no attributes.
var strict = bluemonday.StrictPolicy()

// tagLike matches the start of anything an HTML parser would read as markup.
var tagLike = regexp.MustCompile(`<[a-zA-Z/!?]`)

// Text removes every tag from s, keeps the plain text content and trims surrounding whitespace.
// Entities are decoded once, so "Tom &amp; Jerry" is stored as "Tom & Jerry" and
// "&amp;lt;" as "&lt;". Decoded text that reads as markup is sanitized again.
func Text(s string) string {
	if s == "" {
		return s
	}
	out := html.UnescapeString(strict.Sanitize(s))
	for i := 1; i < maxPasses && tagLike.MatchString(out); i++ {
		out = html.UnescapeString(strict.Sanitize(out))
	}
	return strings.TrimSpace(out)
}

// Email normalizes an email address: trim, lower-case, strip markup.
func Email(s string) string {
	return Text(strings.ToLower(strings.TrimSpace(s)))
}
