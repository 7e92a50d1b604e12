package keywords

import (
	"context"

	"github.com/goliatone/go-glossary/keywords"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// KeywordRepository persists keyword records.
type KeywordRepository interface {
	Create(ctx context.Context, keyword *keywords.Keyword) (*keywords.Keyword, error)
	Update(ctx context.Context, keyword *keywords.Keyword) (*keywords.Keyword, error)
	GetByID(ctx context.Context, id uuid.UUID) (*keywords.Keyword, error)
	GetBySlug(ctx context.Context, slug string) (*keywords.Keyword, error)
	List(ctx context.Context) ([]*keywords.Keyword, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AliasRepository persists keyword aliases.
type AliasRepository interface {
	Create(ctx context.Context, alias *keywords.KeywordAlias) (*keywords.KeywordAlias, error)
	GetByID(ctx context.Context, id uuid.UUID) (*keywords.KeywordAlias, error)
	GetBySlug(ctx context.Context, slug string) (*keywords.KeywordAlias, error)
	ListByKeyword(ctx context.Context, keywordID uuid.UUID) ([]*keywords.KeywordAlias, error)
	List(ctx context.Context) ([]*keywords.KeywordAlias, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository persists keyword categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *keywords.KeywordCategory) (*keywords.KeywordCategory, error)
	Update(ctx context.Context, category *keywords.KeywordCategory) (*keywords.KeywordCategory, error)
	GetByID(ctx context.Context, id uuid.UUID) (*keywords.KeywordCategory, error)
	GetBySlug(ctx context.Context, slug string) (*keywords.KeywordCategory, error)
	List(ctx context.Context) ([]*keywords.KeywordCategory, error)
}

// NewKeywordRepository creates a repository for Keyword entities.
func NewKeywordRepository(db *bun.DB) repository.Repository[*keywords.Keyword] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*keywords.Keyword]{
		NewRecord: func() *keywords.Keyword { return &keywords.Keyword{} },
		GetID: func(k *keywords.Keyword) uuid.UUID {
			return k.ID
		},
		SetID: func(k *keywords.Keyword, id uuid.UUID) {
			k.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(k *keywords.Keyword) string {
			return k.Slug
		},
	})
}

// NewAliasRepository creates a repository for KeywordAlias entities.
func NewAliasRepository(db *bun.DB) repository.Repository[*keywords.KeywordAlias] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*keywords.KeywordAlias]{
		NewRecord: func() *keywords.KeywordAlias { return &keywords.KeywordAlias{} },
		GetID: func(a *keywords.KeywordAlias) uuid.UUID {
			return a.ID
		},
		SetID: func(a *keywords.KeywordAlias, id uuid.UUID) {
			a.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(a *keywords.KeywordAlias) string {
			return a.Slug
		},
	})
}

// NewCategoryRepository creates a repository for KeywordCategory entities.
func NewCategoryRepository(db *bun.DB) repository.Repository[*keywords.KeywordCategory] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*keywords.KeywordCategory]{
		NewRecord: func() *keywords.KeywordCategory { return &keywords.KeywordCategory{} },
		GetID: func(c *keywords.KeywordCategory) uuid.UUID {
			return c.ID
		},
		SetID: func(c *keywords.KeywordCategory, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(c *keywords.KeywordCategory) string {
			return c.Slug
		},
	})
}
