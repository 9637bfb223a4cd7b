package utils

import "github.com/microcosm-cc/bluemonday"

// ugcPolicy allows the formatting tags an article body needs and drops scripts,
// event handlers and unsafe URLs.
var ugcPolicy = bluemonday.UGCPolicy()

func SanitizeHTML(s string) string {
	return ugcPolicy.Sanitize(s)
}
