package model

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const staticContentWrapper = `<p class="margin-top-neg-3 margin-bottom-4 text-base-dark">%s</p>`

var (
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy
)

// sanitizeContent strips markup that static content may not carry. Links and
// basic inline formatting survive.
func sanitizeContent(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(contentSanitizer().Sanitize(trimmed))
}

func contentSanitizer() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br", "span", "ul", "ol", "li")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowAttrs("class").OnElements("span", "a")
		policy.AllowStandardURLs()
		policy.RequireNoReferrerOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		contentPolicy = policy
	})
	return contentPolicy
}
