package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	flashPolicy  *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text
		strictPolicy = bluemonday.StrictPolicy()

		// flashPolicy keeps the inline formatting a notice may carry
		flashPolicy = bluemonday.NewPolicy()
		flashPolicy.AllowStandardURLs()
		flashPolicy.AllowElements(
			"p", "br", "span",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code",
		)
		flashPolicy.AllowAttrs("href", "title").OnElements("a")
		flashPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span", "p")
		flashPolicy.RequireNoFollowOnLinks(true)
	})
}

// FlashHTML sanitizes flash message markup before it is inserted into a page.
// Inline formatting, lists and links survive; scripts, event handlers,
// styles and javascript: URLs are removed.
func FlashHTML(s string) string {
	initPolicies()
	return flashPolicy.Sanitize(s)
}

// StripHTML removes all markup and returns plain text.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// SanitizeHTMLCustom applies a custom bluemonday policy.
// Returns input unchanged if policy is nil.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
