package keywords

import (
	"context"
	"sync"

	"github.com/goliatone/go-glossary/keywords"
	"github.com/google/uuid"
)

// MemoryKeywordRepository is an in-memory implementation for scaffolding and tests.
type MemoryKeywordRepository struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]*keywords.Keyword
	slugIndex map[string]uuid.UUID
}

// NewMemoryKeywordRepository creates an empty in-memory keyword repository.
func NewMemoryKeywordRepository() *MemoryKeywordRepository {
	return &MemoryKeywordRepository{
		records:   make(map[uuid.UUID]*keywords.Keyword),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied keyword.
func (m *MemoryKeywordRepository) Create(_ context.Context, record *keywords.Keyword) (*keywords.Keyword, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneKeyword(record)
	m.records[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneKeyword(copied), nil
}

// Update replaces the stored keyword, keeping the slug index current.
func (m *MemoryKeywordRepository) Update(_ context.Context, record *keywords.Keyword) (*keywords.Keyword, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[record.ID]
	if !ok {
		return nil, &keywords.NotFoundError{Resource: "keyword", Key: record.ID.String()}
	}
	if existing.Slug != record.Slug {
		delete(m.slugIndex, existing.Slug)
	}

	copied := cloneKeyword(record)
	m.records[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneKeyword(copied), nil
}

// GetByID retrieves a keyword by identifier.
func (m *MemoryKeywordRepository) GetByID(_ context.Context, id uuid.UUID) (*keywords.Keyword, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, &keywords.NotFoundError{Resource: "keyword", Key: id.String()}
	}
	return cloneKeyword(rec), nil
}

// GetBySlug retrieves a keyword by slug, returning NotFoundError when absent.
func (m *MemoryKeywordRepository) GetBySlug(_ context.Context, slug string) (*keywords.Keyword, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &keywords.NotFoundError{Resource: "keyword", Key: slug}
	}
	return cloneKeyword(m.records[id]), nil
}

// List returns all keyword records.
func (m *MemoryKeywordRepository) List(_ context.Context) ([]*keywords.Keyword, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*keywords.Keyword, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, cloneKeyword(rec))
	}
	return out, nil
}

// Delete removes a keyword record.
func (m *MemoryKeywordRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return &keywords.NotFoundError{Resource: "keyword", Key: id.String()}
	}
	delete(m.slugIndex, rec.Slug)
	delete(m.records, id)
	return nil
}

// MemoryAliasRepository stores keyword aliases in-memory.
type MemoryAliasRepository struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]*keywords.KeywordAlias
	slugIndex map[string]uuid.UUID
}

// NewMemoryAliasRepository creates an empty in-memory alias repository.
func NewMemoryAliasRepository() *MemoryAliasRepository {
	return &MemoryAliasRepository{
		records:   make(map[uuid.UUID]*keywords.KeywordAlias),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied alias.
func (m *MemoryAliasRepository) Create(_ context.Context, record *keywords.KeywordAlias) (*keywords.KeywordAlias, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneAlias(record)
	m.records[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneAlias(copied), nil
}

// GetByID retrieves an alias by identifier.
func (m *MemoryAliasRepository) GetByID(_ context.Context, id uuid.UUID) (*keywords.KeywordAlias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, &keywords.NotFoundError{Resource: "keyword_alias", Key: id.String()}
	}
	return cloneAlias(rec), nil
}

// GetBySlug retrieves an alias by slug, returning NotFoundError when absent.
func (m *MemoryAliasRepository) GetBySlug(_ context.Context, slug string) (*keywords.KeywordAlias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &keywords.NotFoundError{Resource: "keyword_alias", Key: slug}
	}
	return cloneAlias(m.records[id]), nil
}

// ListByKeyword returns aliases attached to the given keyword.
func (m *MemoryAliasRepository) ListByKeyword(_ context.Context, keywordID uuid.UUID) ([]*keywords.KeywordAlias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*keywords.KeywordAlias, 0)
	for _, rec := range m.records {
		if rec.KeywordID == keywordID {
			out = append(out, cloneAlias(rec))
		}
	}
	return out, nil
}

// List returns all alias records.
func (m *MemoryAliasRepository) List(_ context.Context) ([]*keywords.KeywordAlias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*keywords.KeywordAlias, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, cloneAlias(rec))
	}
	return out, nil
}

// Delete removes an alias record.
func (m *MemoryAliasRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return &keywords.NotFoundError{Resource: "keyword_alias", Key: id.String()}
	}
	delete(m.slugIndex, rec.Slug)
	delete(m.records, id)
	return nil
}

// MemoryCategoryRepository stores keyword categories in-memory.
type MemoryCategoryRepository struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]*keywords.KeywordCategory
	slugIndex map[string]uuid.UUID
}

// NewMemoryCategoryRepository creates an empty in-memory category repository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		records:   make(map[uuid.UUID]*keywords.KeywordCategory),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied category.
func (m *MemoryCategoryRepository) Create(_ context.Context, record *keywords.KeywordCategory) (*keywords.KeywordCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneCategory(record)
	m.records[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneCategory(copied), nil
}

// Update replaces the stored category, keeping the slug index current.
func (m *MemoryCategoryRepository) Update(_ context.Context, record *keywords.KeywordCategory) (*keywords.KeywordCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[record.ID]
	if !ok {
		return nil, &keywords.NotFoundError{Resource: "keyword_category", Key: record.ID.String()}
	}
	if existing.Slug != record.Slug {
		delete(m.slugIndex, existing.Slug)
	}

	copied := cloneCategory(record)
	m.records[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneCategory(copied), nil
}

// GetByID retrieves a category by identifier.
func (m *MemoryCategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*keywords.KeywordCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, &keywords.NotFoundError{Resource: "keyword_category", Key: id.String()}
	}
	return cloneCategory(rec), nil
}

// GetBySlug retrieves a category by slug, returning NotFoundError when absent.
func (m *MemoryCategoryRepository) GetBySlug(_ context.Context, slug string) (*keywords.KeywordCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &keywords.NotFoundError{Resource: "keyword_category", Key: slug}
	}
	return cloneCategory(m.records[id]), nil
}

// List returns all category records.
func (m *MemoryCategoryRepository) List(_ context.Context) ([]*keywords.KeywordCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*keywords.KeywordCategory, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, cloneCategory(rec))
	}
	return out, nil
}

func cloneKeyword(src *keywords.Keyword) *keywords.Keyword {
	if src == nil {
		return nil
	}

	copied := *src
	copied.Metadata = cloneMetadata(src.Metadata)
	copied.Category = cloneCategory(src.Category)
	if len(src.Aliases) > 0 {
		copied.Aliases = make([]*keywords.KeywordAlias, len(src.Aliases))
		for i, alias := range src.Aliases {
			copied.Aliases[i] = cloneAlias(alias)
		}
	}
	return &copied
}

func cloneAlias(src *keywords.KeywordAlias) *keywords.KeywordAlias {
	if src == nil {
		return nil
	}

	copied := *src
	copied.Keyword = nil
	return &copied
}

func cloneCategory(src *keywords.KeywordCategory) *keywords.KeywordCategory {
	if src == nil {
		return nil
	}

	copied := *src
	return &copied
}

func cloneMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
