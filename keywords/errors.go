package keywords

import (
	"errors"
	"fmt"
)

var (
	ErrKeywordIDRequired  = errors.New("keywords: keyword id required")
	ErrCategoryRequired   = errors.New("keywords: category does not exist")
	ErrTitleRequired      = errors.New("keywords: title is required")
	ErrSlugRequired       = errors.New("keywords: slug is required")
	ErrSlugInvalid        = errors.New("keywords: slug contains invalid characters")
	ErrSlugExists         = errors.New("keywords: slug already exists")
	ErrMetadataInvalid    = errors.New("keywords: metadata invalid")
	ErrAliasIDRequired    = errors.New("keywords: alias id required")
	ErrAliasExists        = errors.New("keywords: alias already exists")
	ErrCategorySlugExists = errors.New("keywords: category slug already exists")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// MetadataValidationError carries the schema violations behind
// ErrMetadataInvalid.
type MetadataValidationError struct {
	KeywordTitle string
	Violations   []string
}

func (e *MetadataValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return ErrMetadataInvalid.Error()
	}
	return fmt.Sprintf("%s: %s", ErrMetadataInvalid.Error(), e.Violations[0])
}

func (e *MetadataValidationError) Unwrap() error {
	return ErrMetadataInvalid
}
