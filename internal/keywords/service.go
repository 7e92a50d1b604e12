package keywords

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-glossary/internal/domain"
	"github.com/goliatone/go-glossary/internal/logging"
	"github.com/goliatone/go-glossary/keywords"
	"github.com/goliatone/go-glossary/linker"
	"github.com/goliatone/go-glossary/pkg/interfaces"
	"github.com/google/uuid"
)

// snippetLength caps search-entry snippets, matching the public search payload.
const snippetLength = 150

// SnippetRenderer converts Markdown source into the plain text stored on
// search entries. When unset the service falls back to the raw source.
type SnippetRenderer func(ctx context.Context, source string) (string, error)

// MetadataValidator checks keyword metadata against the configured schema.
type MetadataValidator func(metadata map[string]any) error

type IDGenerator func() uuid.UUID

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger overrides the no-op default logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithURLResolver overrides how keyword page URLs are built.
func WithURLResolver(resolver URLResolver) ServiceOption {
	return func(s *service) {
		if resolver != nil {
			s.urls = resolver
		}
	}
}

// WithSnippetRenderer sets the Markdown-to-text renderer behind search snippets.
func WithSnippetRenderer(renderer SnippetRenderer) ServiceOption {
	return func(s *service) {
		s.snippet = renderer
	}
}

// WithMetadataValidator enables schema validation for keyword metadata.
func WithMetadataValidator(validator MetadataValidator) ServiceOption {
	return func(s *service) {
		s.validateMetadata = validator
	}
}

// service implements keywords.Service.
type service struct {
	keywordRepo      KeywordRepository
	aliasRepo        AliasRepository
	categories       CategoryRepository
	urls             URLResolver
	snippet          SnippetRenderer
	validateMetadata MetadataValidator
	logger           interfaces.Logger
	now              func() time.Time
	id               IDGenerator
}

// NewService constructs a keyword service with the required dependencies.
func NewService(keywordRepo KeywordRepository, aliases AliasRepository, categories CategoryRepository, opts ...ServiceOption) keywords.Service {
	s := &service{
		keywordRepo: keywordRepo,
		aliasRepo:   aliases,
		categories:  categories,
		urls:        StaticURLResolver{},
		logger:      logging.NoOp(),
		now:         time.Now,
		id:          uuid.New,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateKeyword orchestrates creation of a keyword and its inline aliases.
func (s *service) CreateKeyword(ctx context.Context, req keywords.CreateKeywordRequest) (*keywords.Keyword, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		if keywords.IsNotFound(err) {
			return nil, keywords.ErrCategoryRequired
		}
		return nil, err
	}

	slug, err := resolveRecordSlug(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, slug); err != nil {
		return nil, err
	}

	if err := s.checkMetadata(req.Metadata); err != nil {
		return nil, err
	}

	now := s.now()
	record := &keywords.Keyword{
		ID:          s.recordID(req.ID),
		CategoryID:  category.ID,
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		Description: req.Description,
		Status:      string(domain.ParseStatus(req.Status)),
		Position:    req.Position,
		Metadata:    req.Metadata,
		CreatedBy:   req.CreatedBy,
		UpdatedBy:   req.UpdatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.keywordRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	for _, title := range req.Aliases {
		alias, err := s.createAlias(ctx, uuid.Nil, created.ID, title, "")
		if err != nil {
			return nil, err
		}
		created.Aliases = append(created.Aliases, alias)
	}

	created.Category = category
	s.decorate(created, category)
	s.logger.Debug("keyword created", "keyword_id", created.ID, "slug", created.Slug)
	return created, nil
}

// UpdateKeyword applies a partial update; nil request fields keep stored values.
func (s *service) UpdateKeyword(ctx context.Context, req keywords.UpdateKeywordRequest) (*keywords.Keyword, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record, err := s.keywordRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil && *req.CategoryID != record.CategoryID {
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
			if keywords.IsNotFound(err) {
				return nil, keywords.ErrCategoryRequired
			}
			return nil, err
		}
		record.CategoryID = *req.CategoryID
		record.Category = nil
	}
	if req.Title != nil {
		record.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		slug, err := resolveRecordSlug(*req.Slug, record.Title)
		if err != nil {
			return nil, err
		}
		if slug != record.Slug {
			if err := s.ensureSlugFree(ctx, slug); err != nil {
				return nil, err
			}
			record.Slug = slug
		}
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.Status != nil {
		record.Status = string(domain.ParseStatus(*req.Status))
	}
	if req.Position != nil {
		record.Position = *req.Position
	}
	if req.Metadata != nil {
		if err := s.checkMetadata(req.Metadata); err != nil {
			return nil, err
		}
		record.Metadata = req.Metadata
	}
	if req.UpdatedBy != uuid.Nil {
		record.UpdatedBy = req.UpdatedBy
	}
	record.UpdatedAt = s.now()

	updated, err := s.keywordRepo.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, updated)
}

// DeleteKeyword removes a keyword together with its aliases.
func (s *service) DeleteKeyword(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return keywords.ErrKeywordIDRequired
	}
	if _, err := s.keywordRepo.GetByID(ctx, id); err != nil {
		return err
	}

	aliases, err := s.aliasRepo.ListByKeyword(ctx, id)
	if err != nil {
		return err
	}
	for _, alias := range aliases {
		if err := s.aliasRepo.Delete(ctx, alias.ID); err != nil {
			return err
		}
	}

	if err := s.keywordRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("keyword deleted", "keyword_id", id)
	return nil
}

func (s *service) GetKeyword(ctx context.Context, id uuid.UUID) (*keywords.Keyword, error) {
	if id == uuid.Nil {
		return nil, keywords.ErrKeywordIDRequired
	}
	record, err := s.keywordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, record)
}

func (s *service) GetKeywordBySlug(ctx context.Context, slug string) (*keywords.Keyword, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, keywords.ErrSlugRequired
	}
	record, err := s.keywordRepo.GetBySlug(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, record)
}

// ResolveSlug finds the keyword owning slug, falling back to alias slugs the
// way the public detail page resolves its path. Soft-deleted records are
// treated as missing.
func (s *service) ResolveSlug(ctx context.Context, slug string) (*keywords.Keyword, *keywords.KeywordAlias, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, nil, keywords.ErrSlugRequired
	}

	record, err := s.keywordRepo.GetBySlug(ctx, trimmed)
	if err == nil {
		if record.DeletedAt != nil {
			return nil, nil, &keywords.NotFoundError{Resource: "keyword", Key: trimmed}
		}
		hydrated, err := s.hydrate(ctx, record)
		if err != nil {
			return nil, nil, err
		}
		return hydrated, nil, nil
	}
	if !keywords.IsNotFound(err) {
		return nil, nil, err
	}

	alias, err := s.aliasRepo.GetBySlug(ctx, trimmed)
	if err != nil {
		if keywords.IsNotFound(err) {
			return nil, nil, &keywords.NotFoundError{Resource: "keyword", Key: trimmed}
		}
		return nil, nil, err
	}
	if alias.DeletedAt != nil {
		return nil, nil, &keywords.NotFoundError{Resource: "keyword", Key: trimmed}
	}

	owner, err := s.keywordRepo.GetByID(ctx, alias.KeywordID)
	if err != nil {
		return nil, nil, err
	}
	if owner.DeletedAt != nil {
		return nil, nil, &keywords.NotFoundError{Resource: "keyword", Key: trimmed}
	}
	hydrated, err := s.hydrate(ctx, owner)
	if err != nil {
		return nil, nil, err
	}
	return hydrated, alias, nil
}

func (s *service) ListKeywords(ctx context.Context, opts keywords.ListOptions) ([]*keywords.Keyword, error) {
	records, err := s.keywordRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*keywords.Keyword, 0, len(records))
	for _, record := range records {
		if record.DeletedAt != nil {
			continue
		}
		if opts.CategoryID != uuid.Nil && record.CategoryID != opts.CategoryID {
			continue
		}
		if opts.Status != "" && domain.ParseStatus(record.Status) != opts.Status {
			continue
		}
		category := categories[record.CategoryID]
		if opts.VisibleOnly && !isVisible(record, category) {
			continue
		}
		record.Category = category
		s.decorate(record, category)
		out = append(out, record)
	}

	sortKeywords(out)
	return paginate(out, opts.Limit, opts.Offset), nil
}

// AddAlias attaches an alternative display text to an existing keyword.
func (s *service) AddAlias(ctx context.Context, req keywords.AddAliasRequest) (*keywords.KeywordAlias, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.keywordRepo.GetByID(ctx, req.KeywordID); err != nil {
		return nil, err
	}
	return s.createAlias(ctx, req.ID, req.KeywordID, req.Title, req.Slug)
}

func (s *service) RemoveAlias(ctx context.Context, aliasID uuid.UUID) error {
	if aliasID == uuid.Nil {
		return keywords.ErrAliasIDRequired
	}
	if _, err := s.aliasRepo.GetByID(ctx, aliasID); err != nil {
		return err
	}
	return s.aliasRepo.Delete(ctx, aliasID)
}

func (s *service) ListAliases(ctx context.Context, keywordID uuid.UUID) ([]*keywords.KeywordAlias, error) {
	if keywordID == uuid.Nil {
		return nil, keywords.ErrKeywordIDRequired
	}
	aliases, err := s.aliasRepo.ListByKeyword(ctx, keywordID)
	if err != nil {
		return nil, err
	}
	sortAliases(aliases)
	return aliases, nil
}

// CreateCategory creates a keyword category.
func (s *service) CreateCategory(ctx context.Context, req keywords.CreateCategoryRequest) (*keywords.KeywordCategory, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug, err := resolveRecordSlug(req.Slug, req.Name)
	if err != nil {
		return nil, err
	}
	if existing, err := s.categories.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, keywords.ErrCategorySlugExists
	} else if err != nil && !keywords.IsNotFound(err) {
		return nil, err
	}

	now := s.now()
	record := &keywords.KeywordCategory{
		ID:          s.recordID(req.ID),
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
		Icon:        req.Icon,
		Position:    req.Position,
		Status:      string(domain.ParseStatus(req.Status)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.categories.Create(ctx, record)
}

func (s *service) GetCategoryBySlug(ctx context.Context, slug string) (*keywords.KeywordCategory, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, keywords.ErrSlugRequired
	}
	return s.categories.GetBySlug(ctx, trimmed)
}

func (s *service) ListCategories(ctx context.Context) ([]*keywords.KeywordCategory, error) {
	records, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*keywords.KeywordCategory, 0, len(records))
	for _, record := range records {
		if record.DeletedAt != nil {
			continue
		}
		out = append(out, record)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// Related returns visible keywords sharing the subject's category, ordered by
// position, excluding the subject itself.
func (s *service) Related(ctx context.Context, keywordID uuid.UUID, limit int) ([]*keywords.Keyword, error) {
	if keywordID == uuid.Nil {
		return nil, keywords.ErrKeywordIDRequired
	}
	subject, err := s.keywordRepo.GetByID(ctx, keywordID)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, subject.CategoryID)
	if err != nil && !keywords.IsNotFound(err) {
		return nil, err
	}

	records, err := s.keywordRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	related := make([]*keywords.Keyword, 0)
	for _, record := range records {
		if record.ID == subject.ID || record.CategoryID != subject.CategoryID {
			continue
		}
		if !isVisible(record, category) {
			continue
		}
		record.Category = category
		s.decorate(record, category)
		related = append(related, record)
	}

	sortKeywords(related)
	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

// SearchIndex flattens the visible catalog into search entries: one per
// keyword title followed by one per alias. Alias entries point at the alias's
// own slug and name the canonical keyword they resolve to.
func (s *service) SearchIndex(ctx context.Context) ([]keywords.SearchEntry, error) {
	records, err := s.keywordRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]*keywords.Keyword, 0, len(records))
	byID := make(map[uuid.UUID]*keywords.Keyword, len(records))
	for _, record := range records {
		if !isVisible(record, categories[record.CategoryID]) {
			continue
		}
		visible = append(visible, record)
		byID[record.ID] = record
	}
	sortForIndex(visible, categories)

	entries := make([]keywords.SearchEntry, 0, len(visible))
	for _, record := range visible {
		category := categories[record.CategoryID]
		pageURL, err := s.urls.KeywordURL(category.Slug, record.Slug)
		if err != nil {
			return nil, err
		}
		snippet, err := s.renderSnippet(ctx, record.Description)
		if err != nil {
			return nil, err
		}
		entries = append(entries, keywords.SearchEntry{
			KeywordID:    record.ID,
			Title:        record.Title,
			Slug:         record.Slug,
			Category:     category.Name,
			CategorySlug: category.Slug,
			CategoryIcon: category.Icon,
			Snippet:      snippet,
			URL:          pageURL,
			Kind:         keywords.SearchKindKeyword,
			UpdatedAt:    record.UpdatedAt,
		})
	}

	aliases, err := s.aliasRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	live := make([]*keywords.KeywordAlias, 0, len(aliases))
	for _, alias := range aliases {
		if alias.DeletedAt != nil {
			continue
		}
		if _, ok := byID[alias.KeywordID]; !ok {
			continue
		}
		live = append(live, alias)
	}
	sort.SliceStable(live, func(i, j int) bool {
		left, right := live[i], live[j]
		lcat := categories[byID[left.KeywordID].CategoryID]
		rcat := categories[byID[right.KeywordID].CategoryID]
		if lcat.Position != rcat.Position {
			return lcat.Position < rcat.Position
		}
		li, ri := strings.ToLower(left.Title), strings.ToLower(right.Title)
		if li != ri {
			return li < ri
		}
		return left.Slug < right.Slug
	})

	for _, alias := range live {
		owner := byID[alias.KeywordID]
		category := categories[owner.CategoryID]
		pageURL, err := s.urls.KeywordURL(category.Slug, alias.Slug)
		if err != nil {
			return nil, err
		}
		snippet, err := s.renderSnippet(ctx, owner.Description)
		if err != nil {
			return nil, err
		}
		entries = append(entries, keywords.SearchEntry{
			KeywordID:    owner.ID,
			Title:        alias.Title,
			Slug:         alias.Slug,
			Category:     category.Name,
			CategorySlug: category.Slug,
			CategoryIcon: category.Icon,
			Snippet:      snippet,
			URL:          pageURL,
			Kind:         keywords.SearchKindAlias,
			Canonical:    owner.Title,
			UpdatedAt:    alias.UpdatedAt,
		})
	}

	return entries, nil
}

// LinkTargets snapshots the visible catalog as link candidates: canonical
// titles first, then aliases, excluding everything owned by excludeID so a
// page never links to itself. Alias candidates keep the alias's own URL.
func (s *service) LinkTargets(ctx context.Context, excludeID uuid.UUID) ([]linker.Candidate, error) {
	records, err := s.keywordRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, err
	}

	visible := make(map[uuid.UUID]*keywords.Keyword, len(records))
	candidates := make([]linker.Candidate, 0, len(records))
	for _, record := range records {
		category := categories[record.CategoryID]
		if !isVisible(record, category) {
			continue
		}
		visible[record.ID] = record
		if record.ID == excludeID {
			continue
		}
		pageURL, err := s.urls.KeywordURL(category.Slug, record.Slug)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, linker.Candidate{Text: record.Title, URL: pageURL})
	}

	aliases, err := s.aliasRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	aliasCandidates := make([]linker.Candidate, 0, len(aliases))
	for _, alias := range aliases {
		if alias.DeletedAt != nil {
			continue
		}
		owner, ok := visible[alias.KeywordID]
		if !ok || owner.ID == excludeID {
			continue
		}
		category := categories[owner.CategoryID]
		pageURL, err := s.urls.KeywordURL(category.Slug, alias.Slug)
		if err != nil {
			return nil, err
		}
		aliasCandidates = append(aliasCandidates, linker.Candidate{Text: alias.Title, URL: pageURL})
	}

	sortCandidates(candidates)
	sortCandidates(aliasCandidates)
	return append(candidates, aliasCandidates...), nil
}

// RecordView bumps the page view counter without touching UpdatedAt, so views
// do not dirty content freshness signals.
func (s *service) RecordView(ctx context.Context, keywordID uuid.UUID) error {
	if keywordID == uuid.Nil {
		return keywords.ErrKeywordIDRequired
	}
	record, err := s.keywordRepo.GetByID(ctx, keywordID)
	if err != nil {
		return err
	}
	record.ViewCount++
	_, err = s.keywordRepo.Update(ctx, record)
	return err
}

func (s *service) createAlias(ctx context.Context, id, keywordID uuid.UUID, title, rawSlug string) (*keywords.KeywordAlias, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, keywords.ErrTitleRequired
	}
	slug, err := resolveRecordSlug(rawSlug, title)
	if err != nil {
		return nil, err
	}

	if existing, err := s.keywordRepo.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, keywords.ErrSlugExists
	} else if err != nil && !keywords.IsNotFound(err) {
		return nil, err
	}
	if existing, err := s.aliasRepo.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, keywords.ErrAliasExists
	} else if err != nil && !keywords.IsNotFound(err) {
		return nil, err
	}

	now := s.now()
	alias := &keywords.KeywordAlias{
		ID:        s.recordID(id),
		KeywordID: keywordID,
		Title:     title,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.aliasRepo.Create(ctx, alias)
}

func (s *service) ensureSlugFree(ctx context.Context, slug string) error {
	if existing, err := s.keywordRepo.GetBySlug(ctx, slug); err == nil && existing != nil {
		return keywords.ErrSlugExists
	} else if err != nil && !keywords.IsNotFound(err) {
		return err
	}
	if existing, err := s.aliasRepo.GetBySlug(ctx, slug); err == nil && existing != nil {
		return keywords.ErrSlugExists
	} else if err != nil && !keywords.IsNotFound(err) {
		return err
	}
	return nil
}

// recordID honours a caller-supplied identifier so directory imports stay
// idempotent, and mints a fresh one otherwise.
func (s *service) recordID(requested uuid.UUID) uuid.UUID {
	if requested != uuid.Nil {
		return requested
	}
	return s.id()
}

func (s *service) checkMetadata(metadata map[string]any) error {
	if s.validateMetadata == nil || metadata == nil {
		return nil
	}
	if err := s.validateMetadata(metadata); err != nil {
		if errors.Is(err, keywords.ErrMetadataInvalid) {
			return err
		}
		return fmt.Errorf("%w: %v", keywords.ErrMetadataInvalid, err)
	}
	return nil
}

// hydrate attaches the category and aliases a repository lookup may have
// skipped, then decorates the computed fields.
func (s *service) hydrate(ctx context.Context, record *keywords.Keyword) (*keywords.Keyword, error) {
	if record == nil {
		return nil, nil
	}
	category := record.Category
	if category == nil && record.CategoryID != uuid.Nil {
		found, err := s.categories.GetByID(ctx, record.CategoryID)
		if err != nil && !keywords.IsNotFound(err) {
			return nil, err
		}
		category = found
		record.Category = found
	}
	if record.Aliases == nil {
		aliases, err := s.aliasRepo.ListByKeyword(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		sortAliases(aliases)
		record.Aliases = aliases
	}
	s.decorate(record, category)
	return record, nil
}

func (s *service) decorate(record *keywords.Keyword, category *keywords.KeywordCategory) {
	record.EffectiveStatus = domain.ParseStatus(record.Status)
	record.IsVisible = isVisible(record, category)
}

func (s *service) categoryMap(ctx context.Context) (map[uuid.UUID]*keywords.KeywordCategory, error) {
	records, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*keywords.KeywordCategory, len(records))
	for _, record := range records {
		out[record.ID] = record
	}
	return out, nil
}

func (s *service) renderSnippet(ctx context.Context, source string) (string, error) {
	text := source
	if s.snippet != nil {
		rendered, err := s.snippet(ctx, source)
		if err != nil {
			return "", err
		}
		text = rendered
	}
	return truncateSnippet(text, snippetLength), nil
}

// isVisible reports whether a keyword belongs on public surfaces: both the
// keyword and its category must be published and not deleted.
func isVisible(record *keywords.Keyword, category *keywords.KeywordCategory) bool {
	if record == nil || record.DeletedAt != nil {
		return false
	}
	if domain.ParseStatus(record.Status) != domain.StatusPublished {
		return false
	}
	if category == nil || category.DeletedAt != nil {
		return false
	}
	return domain.ParseStatus(category.Status) == domain.StatusPublished
}

// resolveRecordSlug normalizes an explicit slug, deriving one from the
// fallback title when absent. Already-canonical slugs pass through untouched.
func resolveRecordSlug(raw, title string) (string, error) {
	source := strings.TrimSpace(raw)
	if source == "" {
		source = strings.TrimSpace(title)
	}
	if source == "" {
		return "", keywords.ErrSlugInvalid
	}
	if keywords.IsValidSlug(source) {
		return source, nil
	}
	slug, err := keywords.NormalizeSlug(source)
	if err != nil || slug == "" {
		return "", keywords.ErrSlugInvalid
	}
	return slug, nil
}

func truncateSnippet(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit]))
}

func sortKeywords(records []*keywords.Keyword) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Position != records[j].Position {
			return records[i].Position < records[j].Position
		}
		li, lj := strings.ToLower(records[i].Title), strings.ToLower(records[j].Title)
		if li != lj {
			return li < lj
		}
		return records[i].Slug < records[j].Slug
	})
}

func sortForIndex(records []*keywords.Keyword, categories map[uuid.UUID]*keywords.KeywordCategory) {
	sort.SliceStable(records, func(i, j int) bool {
		lcat, rcat := categories[records[i].CategoryID], categories[records[j].CategoryID]
		if lcat.Position != rcat.Position {
			return lcat.Position < rcat.Position
		}
		li, lj := strings.ToLower(records[i].Title), strings.ToLower(records[j].Title)
		if li != lj {
			return li < lj
		}
		return records[i].Slug < records[j].Slug
	})
}

func sortAliases(aliases []*keywords.KeywordAlias) {
	sort.SliceStable(aliases, func(i, j int) bool {
		li, lj := strings.ToLower(aliases[i].Title), strings.ToLower(aliases[j].Title)
		if li != lj {
			return li < lj
		}
		return aliases[i].Slug < aliases[j].Slug
	})
}

func sortCandidates(candidates []linker.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		li, lj := strings.ToLower(candidates[i].Text), strings.ToLower(candidates[j].Text)
		if li != lj {
			return li < lj
		}
		return candidates[i].URL < candidates[j].URL
	})
}

func paginate(records []*keywords.Keyword, limit, offset int) []*keywords.Keyword {
	if offset > 0 {
		if offset >= len(records) {
			return []*keywords.Keyword{}
		}
		records = records[offset:]
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}
