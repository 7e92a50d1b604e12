package di

import (
	"context"
	"sync"

	keywordsvc "github.com/goliatone/go-glossary/internal/keywords"
	"github.com/goliatone/go-glossary/keywords"
	"github.com/google/uuid"
)

// keywordRepositoryProxy routes calls to the current keyword repository
// implementation. Storage profile swaps replace the target without the
// services holding the proxy noticing.
type keywordRepositoryProxy struct {
	mu   sync.RWMutex
	repo keywordsvc.KeywordRepository
}

func newKeywordRepositoryProxy(repo keywordsvc.KeywordRepository) *keywordRepositoryProxy {
	return &keywordRepositoryProxy{repo: repo}
}

func (p *keywordRepositoryProxy) swap(repo keywordsvc.KeywordRepository) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if repo != nil {
		p.repo = repo
	}
}

func (p *keywordRepositoryProxy) current() keywordsvc.KeywordRepository {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.repo
}

func (p *keywordRepositoryProxy) Create(ctx context.Context, keyword *keywords.Keyword) (*keywords.Keyword, error) {
	return p.current().Create(ctx, keyword)
}

func (p *keywordRepositoryProxy) Update(ctx context.Context, keyword *keywords.Keyword) (*keywords.Keyword, error) {
	return p.current().Update(ctx, keyword)
}

func (p *keywordRepositoryProxy) GetByID(ctx context.Context, id uuid.UUID) (*keywords.Keyword, error) {
	return p.current().GetByID(ctx, id)
}

func (p *keywordRepositoryProxy) GetBySlug(ctx context.Context, slug string) (*keywords.Keyword, error) {
	return p.current().GetBySlug(ctx, slug)
}

func (p *keywordRepositoryProxy) List(ctx context.Context) ([]*keywords.Keyword, error) {
	return p.current().List(ctx)
}

func (p *keywordRepositoryProxy) Delete(ctx context.Context, id uuid.UUID) error {
	return p.current().Delete(ctx, id)
}

// aliasRepositoryProxy routes calls to the current alias repository implementation.
type aliasRepositoryProxy struct {
	mu   sync.RWMutex
	repo keywordsvc.AliasRepository
}

func newAliasRepositoryProxy(repo keywordsvc.AliasRepository) *aliasRepositoryProxy {
	return &aliasRepositoryProxy{repo: repo}
}

func (p *aliasRepositoryProxy) swap(repo keywordsvc.AliasRepository) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if repo != nil {
		p.repo = repo
	}
}

func (p *aliasRepositoryProxy) current() keywordsvc.AliasRepository {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.repo
}

func (p *aliasRepositoryProxy) Create(ctx context.Context, alias *keywords.KeywordAlias) (*keywords.KeywordAlias, error) {
	return p.current().Create(ctx, alias)
}

func (p *aliasRepositoryProxy) GetByID(ctx context.Context, id uuid.UUID) (*keywords.KeywordAlias, error) {
	return p.current().GetByID(ctx, id)
}

func (p *aliasRepositoryProxy) GetBySlug(ctx context.Context, slug string) (*keywords.KeywordAlias, error) {
	return p.current().GetBySlug(ctx, slug)
}

func (p *aliasRepositoryProxy) ListByKeyword(ctx context.Context, keywordID uuid.UUID) ([]*keywords.KeywordAlias, error) {
	return p.current().ListByKeyword(ctx, keywordID)
}

func (p *aliasRepositoryProxy) List(ctx context.Context) ([]*keywords.KeywordAlias, error) {
	return p.current().List(ctx)
}

func (p *aliasRepositoryProxy) Delete(ctx context.Context, id uuid.UUID) error {
	return p.current().Delete(ctx, id)
}

// categoryRepositoryProxy routes calls to the current category repository implementation.
type categoryRepositoryProxy struct {
	mu   sync.RWMutex
	repo keywordsvc.CategoryRepository
}

func newCategoryRepositoryProxy(repo keywordsvc.CategoryRepository) *categoryRepositoryProxy {
	return &categoryRepositoryProxy{repo: repo}
}

func (p *categoryRepositoryProxy) swap(repo keywordsvc.CategoryRepository) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if repo != nil {
		p.repo = repo
	}
}

func (p *categoryRepositoryProxy) current() keywordsvc.CategoryRepository {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.repo
}

func (p *categoryRepositoryProxy) Create(ctx context.Context, category *keywords.KeywordCategory) (*keywords.KeywordCategory, error) {
	return p.current().Create(ctx, category)
}

func (p *categoryRepositoryProxy) Update(ctx context.Context, category *keywords.KeywordCategory) (*keywords.KeywordCategory, error) {
	return p.current().Update(ctx, category)
}

func (p *categoryRepositoryProxy) GetByID(ctx context.Context, id uuid.UUID) (*keywords.KeywordCategory, error) {
	return p.current().GetByID(ctx, id)
}

func (p *categoryRepositoryProxy) GetBySlug(ctx context.Context, slug string) (*keywords.KeywordCategory, error) {
	return p.current().GetBySlug(ctx, slug)
}

func (p *categoryRepositoryProxy) List(ctx context.Context) ([]*keywords.KeywordCategory, error) {
	return p.current().List(ctx)
}

var (
	_ keywordsvc.KeywordRepository  = (*keywordRepositoryProxy)(nil)
	_ keywordsvc.AliasRepository    = (*aliasRepositoryProxy)(nil)
	_ keywordsvc.CategoryRepository = (*categoryRepositoryProxy)(nil)
)
