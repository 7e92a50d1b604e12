// Package pages assembles keyword detail pages: catalog lookup, Markdown
// rendering, automatic cross-linking, and the navigation data around them.
package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	keywordsvc "github.com/goliatone/go-glossary/internal/keywords"
	linkersvc "github.com/goliatone/go-glossary/internal/linker"
	"github.com/goliatone/go-glossary/internal/logging"
	"github.com/goliatone/go-glossary/internal/markdown"
	"github.com/goliatone/go-glossary/keywords"
	"github.com/goliatone/go-glossary/linker"
	"github.com/goliatone/go-glossary/pages"
	"github.com/goliatone/go-glossary/pkg/interfaces"
)

// Renderer turns Markdown source into HTML. *markdown.Service satisfies it;
// the default wraps a goldmark parser directly so pages work without the
// full markdown service wired in.
type Renderer interface {
	Render(ctx context.Context, source []byte, opts interfaces.ParseOptions) ([]byte, error)
}

type service struct {
	keywords keywords.Service
	linker   linker.Service
	renderer Renderer
	urls     keywordsvc.URLResolver
	logger   interfaces.Logger

	parseOptions interfaces.ParseOptions
}

// ServiceOption configures the page assembler.
type ServiceOption func(*service)

// WithLinker swaps the rewrite engine, usually for a shared instance carrying
// metrics or custom markup settings.
func WithLinker(engine linker.Service) ServiceOption {
	return func(s *service) {
		if engine != nil {
			s.linker = engine
		}
	}
}

// WithRenderer swaps the Markdown renderer.
func WithRenderer(renderer Renderer) ServiceOption {
	return func(s *service) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithURLResolver controls how canonical page URLs are built.
func WithURLResolver(resolver keywordsvc.URLResolver) ServiceOption {
	return func(s *service) {
		if resolver != nil {
			s.urls = resolver
		}
	}
}

// WithParseOptions sets the render options applied to every description.
func WithParseOptions(opts interfaces.ParseOptions) ServiceOption {
	return func(s *service) {
		s.parseOptions = opts
	}
}

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds a page assembler over the keyword catalog. Without
// options it renders with goldmark defaults, links through a fresh rewrite
// engine, and resolves URLs as /<category>/<slug>.
func NewService(keywordService keywords.Service, opts ...ServiceOption) pages.Service {
	s := &service{
		keywords: keywordService,
		linker:   linkersvc.NewService(),
		renderer: goldmarkRenderer{parser: markdown.NewGoldmarkParser(interfaces.ParseOptions{})},
		urls:     keywordsvc.NewStaticURLResolver(""),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildKeywordPage resolves the requested keyword, renders its description in
// the requested dialect, rewrites mentions of every other visible keyword
// into links, and assembles the page around the result. The view counter is
// bumped on success unless the request opts out.
func (s *service) BuildKeywordPage(ctx context.Context, req pages.BuildKeywordPageRequest) (*pages.KeywordPage, error) {
	if s.keywords == nil {
		return nil, pages.ErrKeywordServiceRequired
	}

	dialect := req.Dialect
	if dialect == "" {
		dialect = linker.DialectHTML
	}
	if !dialect.Valid() {
		return nil, fmt.Errorf("%w: %q", pages.ErrDialectInvalid, req.Dialect)
	}

	record, alias, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	if !record.IsVisible && !req.IncludeHidden {
		return nil, &keywords.NotFoundError{Resource: "keyword", Key: record.Slug}
	}

	body := record.Description
	if dialect == linker.DialectHTML {
		rendered, err := s.renderer.Render(ctx, []byte(record.Description), s.parseOptions)
		if err != nil {
			return nil, fmt.Errorf("pages: render %s: %w", record.Slug, err)
		}
		body = string(rendered)
	}

	candidates, err := s.keywords.LinkTargets(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("pages: link targets for %s: %w", record.Slug, err)
	}

	result, err := s.linker.Rewrite(ctx, body, dialect, candidates)
	if err != nil {
		return nil, fmt.Errorf("pages: rewrite %s: %w", record.Slug, err)
	}

	related, err := s.keywords.Related(ctx, record.ID, req.RelatedLimit)
	if err != nil {
		return nil, fmt.Errorf("pages: related keywords for %s: %w", record.Slug, err)
	}

	if !req.SkipViewCount {
		if err := s.keywords.RecordView(ctx, record.ID); err != nil {
			// A lost counter increment never blocks the page.
			s.logger.Warn("pages.service.record_view_failed", "slug", record.Slug, "error", err)
		}
	}

	page := &pages.KeywordPage{
		Keyword:          record,
		DisplayTitle:     displayTitle(record, alias),
		MatchedAlias:     alias,
		Body:             result.Document,
		Dialect:          dialect,
		AlternativeNames: alternativeNames(record, alias),
		Related:          related,
		CanonicalURL:     s.canonicalURL(record),
		LinkCount:        len(result.Matches),
	}

	s.logger.Debug("pages.service.keyword_page_assembled",
		"slug", record.Slug,
		"dialect", string(dialect),
		"links", page.LinkCount,
		"related", len(related),
	)
	return page, nil
}

// resolve loads the keyword the request names. Slug lookups fall back to
// alias slugs the way the public URL space does, so the second return value
// reports which alias matched, if any.
func (s *service) resolve(ctx context.Context, req pages.BuildKeywordPageRequest) (*keywords.Keyword, *keywords.KeywordAlias, error) {
	if slug := strings.TrimSpace(req.Slug); slug != "" {
		return s.keywords.ResolveSlug(ctx, slug)
	}
	if req.ID != uuid.Nil {
		record, err := s.keywords.GetKeyword(ctx, req.ID)
		if err != nil {
			return nil, nil, err
		}
		return record, nil, nil
	}
	return nil, nil, pages.ErrKeywordReferenceRequired
}

func (s *service) canonicalURL(record *keywords.Keyword) string {
	categorySlug := ""
	if record.Category != nil {
		categorySlug = record.Category.Slug
	}
	url, err := s.urls.KeywordURL(categorySlug, record.Slug)
	if err != nil {
		s.logger.Warn("pages.service.canonical_url_failed", "slug", record.Slug, "error", err)
		return ""
	}
	return url
}

func displayTitle(record *keywords.Keyword, alias *keywords.KeywordAlias) string {
	if alias != nil {
		return alias.Title
	}
	return record.Title
}

// alternativeNames lists the entry's other names. An alias hit leads with the
// canonical title and drops the alias the visitor arrived through; a
// canonical hit lists the alias titles.
func alternativeNames(record *keywords.Keyword, matched *keywords.KeywordAlias) []string {
	names := make([]string, 0, len(record.Aliases)+1)
	if matched != nil {
		names = append(names, record.Title)
	}
	for _, alias := range record.Aliases {
		if alias == nil || alias.DeletedAt != nil {
			continue
		}
		if matched != nil && alias.ID == matched.ID {
			continue
		}
		names = append(names, alias.Title)
	}
	if len(names) == 0 {
		return nil
	}
	return names
}

// goldmarkRenderer is the zero-config fallback renderer.
type goldmarkRenderer struct {
	parser interfaces.MarkdownParser
}

func (g goldmarkRenderer) Render(ctx context.Context, source []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return g.parser.ParseWithOptions(source, opts)
}
