package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid     = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphenRuns  = regexp.MustCompile(`-{2,}`)
	slugWhitespaces = regexp.MustCompile(`[\s_]+`)
)

// Slugify lower-cases s, strips accents and keeps only [a-z0-9-].
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = strings.ToLower(strings.TrimSpace(result))
	result = slugWhitespaces.ReplaceAllString(result, "-")
	result = slugInvalid.ReplaceAllString(result, "")
	result = slugHyphenRuns.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}
