package domain

import internaldomain "github.com/goliatone/go-glossary/internal/domain"

// Status represents lifecycle states for glossary entities.
type Status = internaldomain.Status

const (
	// StatusDraft indicates an entry still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPublished identifies an entry available to readers.
	StatusPublished = internaldomain.StatusPublished
	// StatusArchived marks an entry retained for history but no longer public.
	StatusArchived = internaldomain.StatusArchived
)

// ParseStatus normalizes free-form status strings, defaulting to draft.
func ParseStatus(value string) Status {
	return internaldomain.ParseStatus(value)
}
