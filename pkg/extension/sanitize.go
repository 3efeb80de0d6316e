package extension

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// sanitizeLabel strips markup from button text and titles.
func sanitizeLabel(raw string) string {
	if raw == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(raw)))
}

func isInlineSVG(value string) bool {
	trimmed := strings.TrimSpace(value)
	return len(trimmed) >= 4 && strings.EqualFold(trimmed[:4], "<svg")
}

func sanitizeIconMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"svg", "g", "path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "title", "defs", "use",
		)

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "aria-hidden", "focusable",
		).OnElements("svg")
		policy.AllowAttrs("href").OnElements("use")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
				"fill-rule", "clip-rule",
			).OnElements(el)
		}
		policy.AllowAttrs("id").OnElements("g", "defs")

		iconPolicy = policy
	})
	return iconPolicy
}
