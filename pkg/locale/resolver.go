package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Policy selects how unmatched locales are handled.
type Policy int

const (
	// PolicyStrict accepts exact language file matches only.
	PolicyStrict Policy = iota
	// PolicyFallback tries the two-letter base code and then the expanded
	// xx_XX form before giving up.
	PolicyFallback
)

func (p Policy) String() string {
	switch p {
	case PolicyFallback:
		return "fallback"
	default:
		return "strict"
	}
}

// ParsePolicy maps "strict" or "fallback" to a Policy. An empty value selects
// PolicyStrict.
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "strict", "exact":
		return PolicyStrict, nil
	case "fallback", "loose":
		return PolicyFallback, nil
	default:
		return PolicyStrict, fmt.Errorf("locale: unknown policy %q", value)
	}
}

// Resolver picks an available language code for a locale.
type Resolver struct {
	Languages Languages
	Policy    Policy
}

// NewResolver builds a Resolver.
func NewResolver(languages Languages, policy Policy) Resolver {
	return Resolver{Languages: languages, Policy: policy}
}

// Resolve returns the language code to configure and true, or false when the
// language setting should be omitted.
func (r Resolver) Resolve(code string) (string, bool) {
	if r.Languages == nil {
		return "", false
	}
	for _, candidate := range r.Candidates(code) {
		if r.Languages.Has(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Candidates lists the codes Resolve checks, in order.
func (r Resolver) Candidates(code string) []string {
	raw := strings.TrimSpace(code)
	if raw == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{}, 4)
	add := func(candidate string) {
		if candidate == "" {
			return
		}
		if _, ok := seen[candidate]; ok {
			return
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}

	add(raw)
	add(Normalize(raw))
	if r.Policy != PolicyFallback {
		return out
	}

	base := baseCode(raw)
	add(base)
	if base != "" {
		add(base + "_" + strings.ToUpper(base))
	}
	if tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-")); err == nil {
		if region, confidence := tag.Region(); confidence != language.No && base != "" {
			add(base + "_" + region.String())
		}
	}
	return out
}

// Normalize rewrites a locale into the editor file naming: language in lower
// case, underscore separator and an upper case two-letter region
// ("fr-fr" becomes "fr_FR"). Other subtags are kept as given.
func Normalize(code string) string {
	code = strings.TrimSpace(strings.ReplaceAll(code, "-", "_"))
	if code == "" {
		return ""
	}
	parts := strings.Split(code, "_")
	parts[0] = strings.ToLower(parts[0])
	for i := 1; i < len(parts); i++ {
		if len(parts[i]) == 2 {
			parts[i] = strings.ToUpper(parts[i])
		}
	}
	return strings.Join(parts, "_")
}

func baseCode(code string) string {
	normalized := Normalize(code)
	if len(normalized) < 2 {
		return ""
	}
	return normalized[:2]
}
