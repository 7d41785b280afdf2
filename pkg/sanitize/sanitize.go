package sanitize

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// Citation-marker shapes stripped from model output, in application order:
	// bracketed label with a parenthetical link, bare "参考資料 N:" label,
	// parenthesized bare label, and the empty bracket/paren remnants the
	// first passes leave behind.
	refLabelWithLink = regexp.MustCompile(`(?i)\[参考資料\s*\d*\]\s*\([^)]+\)`)
	refBareLabel     = regexp.MustCompile(`(?i)参考資料\s*\d*\s*:?`)
	refParenLabel    = regexp.MustCompile(`(?i)[（(]\s*参考資料\s*\d*\s*[）)]`)
	emptyRemnants    = regexp.MustCompile(`\(\s*\)|\[\s*\]|（\s*）`)
	excessNewlines   = regexp.MustCompile(`\n\s*\n\s*\n`)

	htmlTags      = regexp.MustCompile(`<[^>]*>`)
	markdownNoise = regexp.MustCompile("[`*#_\\-\\[\\]()!~<>|=+.\\s]")

	// Optional surrounding code fence with an optional language tag.
	codeFence = regexp.MustCompile("(?s)^```(\\w*)?\\s*\n?(.*?)\n?\\s*```$")
)

// RemoveUnwantedReferences strips citation markers the model tends to append
// despite instructions, collapses runs of 3+ newlines to exactly 2, and trims.
// Applying it to already-clean text is a no-op.
func RemoveUnwantedReferences(text string) string {
	if text == "" {
		return ""
	}
	processed := refLabelWithLink.ReplaceAllString(text, "")
	processed = refBareLabel.ReplaceAllString(processed, "")
	processed = refParenLabel.ReplaceAllString(processed, "")
	processed = emptyRemnants.ReplaceAllString(processed, "")
	processed = excessNewlines.ReplaceAllString(processed, "\n\n")
	return strings.TrimSpace(processed)
}

// IsEffectivelyEmpty reports whether text carries no content once HTML tags
// and markdown/punctuation/whitespace noise are removed. Catches technically
// non-empty output like a lone "---".
func IsEffectivelyEmpty(text string) bool {
	if text == "" {
		return true
	}
	stripped := htmlTags.ReplaceAllString(text, "")
	stripped = markdownNoise.ReplaceAllString(stripped, "")
	return len(stripped) == 0
}

// ParseStringArray interprets raw model output as a JSON array of strings,
// tolerating a surrounding markdown code fence. Returns nil on any parse
// failure or schema mismatch (including mixed element types); an empty
// non-nil slice means the model answered with no items. The nil/empty
// distinction is deliberate: nil hides the feature, [] is a valid result.
func ParseStringArray(raw string) []string {
	jsonStr := strings.TrimSpace(raw)
	if m := codeFence.FindStringSubmatch(jsonStr); m != nil && m[2] != "" {
		jsonStr = strings.TrimSpace(m[2])
	}

	var items []string
	if err := json.Unmarshal([]byte(jsonStr), &items); err != nil {
		return nil
	}
	if items == nil {
		// JSON "null" unmarshals without error.
		return nil
	}
	return items
}
