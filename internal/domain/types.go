package domain

import "strings"

// Status represents lifecycle states for glossary entities. Only published
// keywords and categories participate in auto-linking and public listings.
type Status string

const (
	// StatusDraft indicates an entry still under preparation
	StatusDraft Status = "draft"
	// StatusPublished identifies an entry available to readers
	StatusPublished Status = "published"
	// StatusArchived marks an entry retained for history but no longer public
	StatusArchived Status = "archived"
)

// ParseStatus normalizes free-form status strings, defaulting to draft.
func ParseStatus(value string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusPublished:
		return StatusPublished
	case StatusArchived:
		return StatusArchived
	default:
		return StatusDraft
	}
}

// IsPublic reports whether entries in this state are visible to readers.
func (s Status) IsPublic() bool {
	return s == StatusPublished
}

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}
