package review

import (
	"regexp"
	"strings"
)

// maxFullBodyLength is the longest question body a card embeds in full.
// Slack caps a section block at 3000 characters; the margin covers labels.
const maxFullBodyLength = 2900

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripMarkup removes HTML tag spans and unescapes the four entities that
// appear in sheet content. Entities are decoded after tag removal, and
// &amp; last, so an escaped literal like `&amp;lt;` decodes exactly once.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}
	clean := tagPattern.ReplaceAllString(s, "")
	clean = strings.ReplaceAll(clean, "&nbsp;", " ")
	clean = strings.ReplaceAll(clean, "&lt;", "<")
	clean = strings.ReplaceAll(clean, "&gt;", ">")
	return strings.ReplaceAll(clean, "&amp;", "&")
}

func containsImageMarker(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "<img") || strings.Contains(lower, "<image")
}

// UseSimplifiedLayout decides whether the card can embed the question or
// must fall back to the "click through" notice: any image marker in the body
// or options, a body too long for a section block, or a non-multiple-choice
// type. An empty type is treated as multiple choice; older worksheets have
// no type column at all.
func UseSimplifiedLayout(q *Question) bool {
	if containsImageMarker(q.Body) {
		return true
	}
	for _, opt := range q.Options {
		if containsImageMarker(opt) {
			return true
		}
	}
	if len(q.Body) > maxFullBodyLength {
		return true
	}
	return q.Type != "" && !strings.EqualFold(q.Type, TypeMultipleChoice)
}
