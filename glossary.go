package glossary

import (
	"context"
	"errors"

	"github.com/goliatone/go-glossary/commands"
	"github.com/goliatone/go-glossary/internal/di"
	keywordsvc "github.com/goliatone/go-glossary/internal/keywords"
	"github.com/goliatone/go-glossary/keywords"
	"github.com/goliatone/go-glossary/linker"
	"github.com/goliatone/go-glossary/pages"
	"github.com/goliatone/go-glossary/pkg/interfaces"
	"github.com/google/uuid"
)

// KeywordService exports the keyword catalog contract for consumers of the glossary package.
type KeywordService = keywords.Service

// LinkerService exports the content linking engine contract.
type LinkerService = linker.Service

// PageService exports the keyword page assembly contract.
type PageService = pages.Service

// MarkdownService exports the markdown ingestion contract.
type MarkdownService = interfaces.MarkdownService

// Keyword exports the keyword record DTO.
type Keyword = keywords.Keyword

// KeywordAlias exports the keyword alias DTO.
type KeywordAlias = keywords.KeywordAlias

// KeywordCategory exports the keyword category DTO.
type KeywordCategory = keywords.KeywordCategory

// SearchEntry exports the flattened search index entry DTO.
type SearchEntry = keywords.SearchEntry

// KeywordPage exports the assembled keyword page DTO.
type KeywordPage = pages.KeywordPage

// BuildKeywordPageRequest exports the page assembly request.
type BuildKeywordPageRequest = pages.BuildKeywordPageRequest

// Candidate exports the link candidate consumed by the rewriting engine.
type Candidate = linker.Candidate

// Dialect exports the markup dialect selector for rewrites.
type Dialect = linker.Dialect

// RewriteResult exports the rewrite outcome DTO.
type RewriteResult = linker.Result

// CommandRegistrationOptions exports the command wiring options.
type CommandRegistrationOptions = commands.RegistrationOptions

// CommandRegistrationResult exports the command wiring outcome.
type CommandRegistrationResult = commands.RegistrationResult

const (
	// DialectHTML treats documents as rendered HTML.
	DialectHTML = linker.DialectHTML
	// DialectMarkdown treats documents as Markdown source.
	DialectMarkdown = linker.DialectMarkdown
)

// ErrNoDatabase reports that the module runs on memory repositories and has
// no database to create tables in.
var ErrNoDatabase = errors.New("glossary: storage is not configured")

// Module represents the top level glossary runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a glossary module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Keywords returns the configured keyword catalog service.
func (m *Module) Keywords() KeywordService {
	return m.container.KeywordService()
}

// Linker returns the configured content linking engine.
func (m *Module) Linker() LinkerService {
	return m.container.LinkerService()
}

// Pages returns the configured keyword page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Markdown returns the markdown service when configured.
func (m *Module) Markdown() MarkdownService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.MarkdownService()
}

// Commands builds the module's command handlers and registers them with the
// supplied registry, dispatcher, and cron registrar.
func (m *Module) Commands(opts CommandRegistrationOptions) (*CommandRegistrationResult, error) {
	return commands.RegisterContainerCommands(m.container, opts)
}

// LinkContent snapshots the visible catalog and rewrites document so every
// eligible keyword or alias occurrence links to its entry page. excludeID
// drops the entry being rendered, keeping its own page free of self-links.
func (m *Module) LinkContent(ctx context.Context, document string, dialect Dialect, excludeID uuid.UUID) (*RewriteResult, error) {
	candidates, err := m.container.KeywordService().LinkTargets(ctx, excludeID)
	if err != nil {
		return nil, err
	}
	return m.container.LinkerService().Rewrite(ctx, document, dialect, candidates)
}

// EnsureSchema creates the glossary tables and indexes on the active
// database. It is meant for embedded deployments that point a sqlite profile
// at a fresh file; hosts with their own migration tooling can skip it.
func (m *Module) EnsureSchema(ctx context.Context) error {
	db := m.container.DB()
	if db == nil {
		return ErrNoDatabase
	}
	return keywordsvc.CreateSchema(ctx, db)
}

// Close stops the storage profile watcher and releases pooled connections.
func (m *Module) Close(ctx context.Context) error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close(ctx)
}
