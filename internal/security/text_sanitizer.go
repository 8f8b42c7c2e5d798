// Package security cleans user supplied text before it reaches the workspace stores.
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer strips markup from free text fields such as titles, descriptions,
// comments and account names.
type TextSanitizer interface {
	Clean(raw string) string
}

type textSanitizer struct {
	policy *bluemonday.Policy
}

// maxCleanPasses bounds how many layers of entity encoding Clean unwraps.
const maxCleanPasses = 8

// NewTextSanitizer builds a sanitizer that allows no elements at all. The result is plain
// text: entities are decoded and the value is trimmed. Decoding repeats until the text is
// stable under the policy, so encoded markup cannot come out as live markup.
func NewTextSanitizer() TextSanitizer {
	return &textSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *textSanitizer) Clean(raw string) string {
	if raw == "" {
		return ""
	}
	current := raw
	for pass := 0; pass < maxCleanPasses; pass++ {
		next := strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(current)))
		if next == current {
			return next
		}
		current = next
	}
	// Still unwrapping after the last pass: drop anything that could open a tag or an entity.
	return strings.TrimSpace(markupRunes.Replace(current))
}

var markupRunes = strings.NewReplacer("<", "", ">", "", "&", "")
