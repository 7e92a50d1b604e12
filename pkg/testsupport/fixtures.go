package testsupport

import (
	"github.com/goliatone/go-glossary/domain"
	"github.com/goliatone/go-glossary/keywords"
	"github.com/google/uuid"
)

// CategoryFixture returns a published category ready for insertion. Tests
// that need a different status or position mutate the returned record.
func CategoryFixture(name, slug string) *keywords.KeywordCategory {
	return &keywords.KeywordCategory{
		ID:     uuid.New(),
		Name:   name,
		Slug:   slug,
		Status: string(domain.StatusPublished),
	}
}

// KeywordFixture returns a published keyword owned by categoryID.
func KeywordFixture(categoryID uuid.UUID, title, slug string) *keywords.Keyword {
	return &keywords.Keyword{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Title:      title,
		Slug:       slug,
		Status:     string(domain.StatusPublished),
	}
}

// AliasFixture returns an alias owned by keywordID.
func AliasFixture(keywordID uuid.UUID, title, slug string) *keywords.KeywordAlias {
	return &keywords.KeywordAlias{
		ID:        uuid.New(),
		KeywordID: keywordID,
		Title:     title,
		Slug:      slug,
	}
}
