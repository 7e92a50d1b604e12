package keywords

import "github.com/goliatone/go-slug"

// NormalizeSlug collapses a display text into its canonical URL-safe slug.
// Keyword, alias, and category identities all derive through this single rule
// set, so slugs computed by the importer and slugs supplied on requests never
// disagree about the same text.
func NormalizeSlug(value string) (string, error) {
	return slug.Normalize(value)
}

// IsValidSlug reports whether value is already in canonical slug form.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
