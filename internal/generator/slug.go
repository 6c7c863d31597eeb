package generator

import (
	"regexp"
	"strings"
	"time"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases text and collapses every run of non-alphanumeric
// characters into a single "-". When nothing is left, a timestamped
// placeholder built from now (UTC) is returned instead.
func Slugify(text string, now time.Time) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	slug := strings.Trim(nonSlugChars.ReplaceAllString(lower, "-"), "-")
	if slug == "" {
		return "generated-app-" + now.UTC().Format("20060102-150405")
	}
	return slug
}

// ResolveName returns name when given, else the slug of spec
func ResolveName(name, spec string, now time.Time) (string, error) {
	if name == "" {
		return Slugify(spec, now), nil
	}
	if strings.Contains(name, "/") {
		return "", invalidArgument("invalid repository name %q", name)
	}
	return name, nil
}

// ResolveDescription picks the explicit description, else the generated one,
// else the first 160 characters of spec
func ResolveDescription(explicit, generated, spec string) string {
	if explicit != "" {
		return explicit
	}
	if generated != "" {
		return generated
	}

	runes := []rune(spec)
	if len(runes) > 160 {
		runes = runes[:160]
	}
	return string(runes)
}
