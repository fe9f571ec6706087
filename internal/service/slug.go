package service

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// newSlugSuffix generates the disambiguating suffix appended to article
// slugs. Package variable so tests can pin it.
var newSlugSuffix = func() string {
	return uuid.NewString()[:8]
}

// slugify reduces a title to its URL-safe form: lowercase, non-alphanumeric
// runs collapsed to single dashes.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStripPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// articleSlug derives the slug stored on an article: the slugified title plus
// a short random suffix. The suffix keeps same-titled articles apart; the
// live-slug unique index still backs the uniqueness guarantee.
func articleSlug(title string) string {
	base := slugify(title)
	if base == "" {
		return newSlugSuffix()
	}
	return base + "-" + newSlugSuffix()
}
