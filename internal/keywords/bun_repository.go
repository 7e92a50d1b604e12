package keywords

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-glossary/keywords"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunKeywordRepository implements KeywordRepository with optional caching.
type BunKeywordRepository struct {
	repo repository.Repository[*keywords.Keyword]
}

// NewBunKeywordRepository creates a keyword repository without caching.
func NewBunKeywordRepository(db *bun.DB) *BunKeywordRepository {
	return NewBunKeywordRepositoryWithCache(db, nil, nil)
}

// NewBunKeywordRepositoryWithCache creates a keyword repository with caching services.
func NewBunKeywordRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunKeywordRepository {
	base := NewKeywordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunKeywordRepository{repo: wrapped}
}

func (r *BunKeywordRepository) Create(ctx context.Context, record *keywords.Keyword) (*keywords.Keyword, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunKeywordRepository) Update(ctx context.Context, record *keywords.Keyword) (*keywords.Keyword, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "keyword", record.ID.String())
	}
	return updated, nil
}

func (r *BunKeywordRepository) GetByID(ctx context.Context, id uuid.UUID) (*keywords.Keyword, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "keyword", id.String())
	}
	return result, nil
}

func (r *BunKeywordRepository) GetBySlug(ctx context.Context, slug string) (*keywords.Keyword, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "keyword", slug)
	}
	return result, nil
}

func (r *BunKeywordRepository) List(ctx context.Context) ([]*keywords.Keyword, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunKeywordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &keywords.Keyword{ID: id})
}

// BunAliasRepository implements AliasRepository with optional caching.
type BunAliasRepository struct {
	repo repository.Repository[*keywords.KeywordAlias]
}

// NewBunAliasRepository creates an alias repository without caching.
func NewBunAliasRepository(db *bun.DB) *BunAliasRepository {
	return NewBunAliasRepositoryWithCache(db, nil, nil)
}

// NewBunAliasRepositoryWithCache creates an alias repository with caching services.
func NewBunAliasRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunAliasRepository {
	base := NewAliasRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunAliasRepository{repo: wrapped}
}

func (r *BunAliasRepository) Create(ctx context.Context, record *keywords.KeywordAlias) (*keywords.KeywordAlias, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunAliasRepository) GetByID(ctx context.Context, id uuid.UUID) (*keywords.KeywordAlias, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "keyword_alias", id.String())
	}
	return result, nil
}

func (r *BunAliasRepository) GetBySlug(ctx context.Context, slug string) (*keywords.KeywordAlias, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "keyword_alias", slug)
	}
	return result, nil
}

func (r *BunAliasRepository) ListByKeyword(ctx context.Context, keywordID uuid.UUID) ([]*keywords.KeywordAlias, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.keyword_id = ?", keywordID).
				OrderExpr("?TableAlias.title ASC")
		}),
	)
	return records, err
}

func (r *BunAliasRepository) List(ctx context.Context) ([]*keywords.KeywordAlias, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunAliasRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &keywords.KeywordAlias{ID: id})
}

// BunCategoryRepository implements CategoryRepository with optional caching.
type BunCategoryRepository struct {
	repo repository.Repository[*keywords.KeywordCategory]
}

// NewBunCategoryRepository creates a category repository without caching.
func NewBunCategoryRepository(db *bun.DB) *BunCategoryRepository {
	return NewBunCategoryRepositoryWithCache(db, nil, nil)
}

// NewBunCategoryRepositoryWithCache creates a category repository with caching services.
func NewBunCategoryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCategoryRepository {
	base := NewCategoryRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunCategoryRepository{repo: wrapped}
}

func (r *BunCategoryRepository) Create(ctx context.Context, record *keywords.KeywordCategory) (*keywords.KeywordCategory, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunCategoryRepository) Update(ctx context.Context, record *keywords.KeywordCategory) (*keywords.KeywordCategory, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "keyword_category", record.ID.String())
	}
	return updated, nil
}

func (r *BunCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*keywords.KeywordCategory, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "keyword_category", id.String())
	}
	return result, nil
}

func (r *BunCategoryRepository) GetBySlug(ctx context.Context, slug string) (*keywords.KeywordCategory, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "keyword_category", slug)
	}
	return result, nil
}

func (r *BunCategoryRepository) List(ctx context.Context) ([]*keywords.KeywordCategory, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.position ASC")
		}),
	)
	return records, err
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &keywords.NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
