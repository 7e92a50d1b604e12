package di

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	storageadapter "github.com/goliatone/go-glossary/internal/adapters/storage"
	keywordsvc "github.com/goliatone/go-glossary/internal/keywords"
	linkersvc "github.com/goliatone/go-glossary/internal/linker"
	"github.com/goliatone/go-glossary/internal/logging"
	"github.com/goliatone/go-glossary/internal/logging/console"
	"github.com/goliatone/go-glossary/internal/logging/gologger"
	"github.com/goliatone/go-glossary/internal/markdown"
	pagesvc "github.com/goliatone/go-glossary/internal/pages"
	"github.com/goliatone/go-glossary/internal/runtimeconfig"
	"github.com/goliatone/go-glossary/internal/storageconfig"
	"github.com/goliatone/go-glossary/keywords"
	"github.com/goliatone/go-glossary/linker"
	"github.com/goliatone/go-glossary/pages"
	"github.com/goliatone/go-glossary/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"
)

// Container wires the glossary services: the keyword catalog, the linking
// engine, Markdown ingestion, and page assembly, plus the storage, cache, and
// logging infrastructure they share. Repositories sit behind proxies so a
// storage profile change can swap the backing database without rebuilding the
// services that hold them.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	storage          interfaces.StorageProvider
	storageRepo      storageconfig.Repository
	storageFactories map[string]StorageFactory
	storageMu        sync.Mutex
	storageHandle    *storageHandle
	storageCancel    context.CancelFunc
	activeProfile    string
	bunDB            *bun.DB

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	keywordProxy  *keywordRepositoryProxy
	aliasProxy    *aliasRepositoryProxy
	categoryProxy *categoryRepositoryProxy

	routeManager *urlkit.RouteManager
	urlResolver  keywordsvc.URLResolver

	parser        interfaces.MarkdownParser
	linkerMetrics interfaces.LinkerMetrics

	keywordSvc  keywords.Service
	linkerSvc   linker.Service
	markdownSvc interfaces.MarkdownService
	pageSvc     pages.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithStorage overrides the default storage provider.
func WithStorage(sp interfaces.StorageProvider) Option {
	return func(c *Container) {
		if sp != nil {
			c.storage = sp
		}
	}
}

// WithStorageRepository attaches the repository that persists storage
// profiles. The container subscribes to it and hot-swaps the database when
// the active profile changes.
func WithStorageRepository(repo storageconfig.Repository) Option {
	return func(c *Container) {
		c.storageRepo = repo
	}
}

// WithStorageFactory registers (or replaces) the factory used to open
// profiles declaring the given provider.
func WithStorageFactory(provider string, factory StorageFactory) Option {
	return func(c *Container) {
		name := strings.ToLower(strings.TrimSpace(provider))
		if name == "" || factory == nil {
			return
		}
		c.storageFactories[name] = factory
	}
}

// WithBunDB supplies an already opened bun database. Profile management is
// skipped and repositories bind to this handle directly.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the cache service backing repository reads.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithURLResolver overrides how keyword and category page URLs are built.
func WithURLResolver(resolver keywordsvc.URLResolver) Option {
	return func(c *Container) {
		c.urlResolver = resolver
	}
}

// WithMarkdownParser overrides the shared Markdown parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithKeywordService overrides the default keyword catalog binding.
func WithKeywordService(svc keywords.Service) Option {
	return func(c *Container) {
		c.keywordSvc = svc
	}
}

// WithLinkerMetrics attaches a metrics recorder to the linking engine.
func WithLinkerMetrics(metrics interfaces.LinkerMetrics) Option {
	return func(c *Container) {
		if metrics != nil {
			c.linkerMetrics = metrics
		}
	}
}

// WithLinkerService overrides the default linking engine binding.
func WithLinkerService(svc linker.Service) Option {
	return func(c *Container) {
		c.linkerSvc = svc
	}
}

// WithMarkdownService overrides the default markdown ingestion binding.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// WithPageService overrides the default page assembly binding.
func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:           cfg,
		storage:          storageadapter.NewNoOpProvider(),
		storageFactories: defaultStorageFactories(),
		cacheTTL:         cacheTTL,
		keywordProxy:     newKeywordRepositoryProxy(keywordsvc.NewMemoryKeywordRepository()),
		aliasProxy:       newAliasRepositoryProxy(keywordsvc.NewMemoryAliasRepository()),
		categoryProxy:    newCategoryRepositoryProxy(keywordsvc.NewMemoryCategoryRepository()),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureRoutes()

	if err := c.configureKeywordService(); err != nil {
		return nil, err
	}
	c.configureLinkerService()
	if err := c.configureMarkdownService(); err != nil {
		return nil, err
	}
	c.configurePageService()

	storageLabel := c.ActiveStorageProfile()
	if storageLabel == "" {
		if c.DB() != nil {
			storageLabel = "bun"
		} else {
			storageLabel = "memory"
		}
	}
	logging.ModuleLogger(c.loggerProvider, "").Info("container.configured",
		"storage", storageLabel,
		"cache", cfg.Cache.Enabled,
		"markdown", c.markdownSvc != nil,
	)

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("configure go-logger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{
			MinLevel: consoleLevel(logCfg.Level),
		})
	}
	return nil
}

func consoleLevel(level string) *console.Level {
	var resolved console.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		resolved = console.LevelTrace
	case "debug":
		resolved = console.LevelDebug
	case "", "info":
		resolved = console.LevelInfo
	case "warn", "warning":
		resolved = console.LevelWarn
	case "error":
		resolved = console.LevelError
	case "fatal":
		resolved = console.LevelFatal
	default:
		return nil
	}
	return &resolved
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRoutes() {
	if c.urlResolver != nil {
		return
	}

	routesCfg := c.Config.Routes
	if routesCfg.RouteConfig == nil {
		return
	}

	manager := urlkit.NewRouteManager(routesCfg.RouteConfig)
	c.routeManager = manager

	c.urlResolver = keywordsvc.NewURLKitResolver(keywordsvc.URLKitResolverOptions{
		Manager:       manager,
		Group:         strings.TrimSpace(routesCfg.URLKit.Group),
		KeywordRoute:  strings.TrimSpace(routesCfg.URLKit.KeywordRoute),
		CategoryRoute: strings.TrimSpace(routesCfg.URLKit.CategoryRoute),
		CategoryParam: strings.TrimSpace(routesCfg.URLKit.CategoryParam),
		SlugParam:     strings.TrimSpace(routesCfg.URLKit.SlugParam),
	})
}

func (c *Container) configureKeywordService() error {
	if c.keywordSvc != nil {
		return nil
	}

	opts := []keywordsvc.ServiceOption{
		keywordsvc.WithLogger(logging.KeywordsLogger(c.loggerProvider)),
		keywordsvc.WithSnippetRenderer(c.snippetRenderer()),
	}
	if c.urlResolver != nil {
		opts = append(opts, keywordsvc.WithURLResolver(c.urlResolver))
	}

	if schema := c.Config.Metadata.Schema; len(schema) > 0 {
		validator, err := newMetadataValidator(schema)
		if err != nil {
			return err
		}
		opts = append(opts, keywordsvc.WithMetadataValidator(validator))
	}

	c.keywordSvc = keywordsvc.NewService(c.keywordProxy, c.aliasProxy, c.categoryProxy, opts...)
	return nil
}

func (c *Container) configureLinkerService() {
	if c.linkerSvc != nil {
		return
	}

	opts := []linkersvc.ServiceOption{
		linkersvc.WithLogger(logging.LinkerLogger(c.loggerProvider)),
	}
	linkCfg := c.Config.Linker
	if linkCfg.CSSClass != "" {
		opts = append(opts, linkersvc.WithCSSClass(linkCfg.CSSClass))
	}
	if linkCfg.TitleFormat != "" {
		opts = append(opts, linkersvc.WithTitleFormat(linkCfg.TitleFormat))
	}
	if linkCfg.MaxCandidates > 0 {
		opts = append(opts, linkersvc.WithMaxCandidates(linkCfg.MaxCandidates))
	}
	if c.linkerMetrics != nil {
		opts = append(opts, linkersvc.WithMetrics(c.linkerMetrics))
	}

	c.linkerSvc = linkersvc.NewService(opts...)
}

func (c *Container) configureMarkdownService() error {
	if c.markdownSvc != nil {
		return nil
	}
	if !c.Config.Features.Markdown || !c.Config.Markdown.Enabled {
		return nil
	}

	mdCfg := c.Config.Markdown
	service, err := markdown.NewService(markdown.Config{
		BasePath:  mdCfg.ContentDir,
		Pattern:   mdCfg.Pattern,
		Recursive: mdCfg.Recursive,
		Parser:    c.parseOptions(),
		Keywords:  c.keywordSvc,
		Logger:    logging.MarkdownLogger(c.loggerProvider),
	}, c.markdownParser())
	if err != nil {
		return fmt.Errorf("configure markdown service: %w", err)
	}
	c.markdownSvc = service
	return nil
}

func (c *Container) configurePageService() {
	if c.pageSvc != nil {
		return
	}

	opts := []pagesvc.ServiceOption{
		pagesvc.WithLinker(c.linkerSvc),
		pagesvc.WithParseOptions(c.parseOptions()),
		pagesvc.WithLogger(logging.PagesLogger(c.loggerProvider)),
	}
	if c.markdownSvc != nil {
		if renderer, ok := c.markdownSvc.(pagesvc.Renderer); ok {
			opts = append(opts, pagesvc.WithRenderer(renderer))
		}
	}
	if c.urlResolver != nil {
		opts = append(opts, pagesvc.WithURLResolver(c.urlResolver))
	}

	c.pageSvc = pagesvc.NewService(c.keywordSvc, opts...)
}

func (c *Container) markdownParser() interfaces.MarkdownParser {
	if c.parser == nil {
		c.parser = markdown.NewGoldmarkParser(c.parseOptions())
	}
	return c.parser
}

func (c *Container) parseOptions() interfaces.ParseOptions {
	parserCfg := c.Config.Markdown.Parser
	return interfaces.ParseOptions{
		Extensions: parserCfg.Extensions,
		Sanitize:   parserCfg.Sanitize,
		HardWraps:  parserCfg.HardWraps,
		SafeMode:   parserCfg.SafeMode,
	}
}

// KeywordService returns the configured keyword catalog.
func (c *Container) KeywordService() keywords.Service {
	return c.keywordSvc
}

// LinkerService returns the configured linking engine.
func (c *Container) LinkerService() linker.Service {
	return c.linkerSvc
}

// MarkdownService returns the configured markdown ingestion service, or nil
// when the markdown feature is disabled.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// PageService returns the configured page assembler.
func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

// StorageProvider exposes the configured storage implementation.
func (c *Container) StorageProvider() interfaces.StorageProvider {
	c.storageMu.Lock()
	defer c.storageMu.Unlock()
	return c.storage
}

// LoggerProvider exposes the configured logger provider, which is nil when
// the logging feature is disabled and no override was supplied.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// RouteManager exposes the urlkit route manager when route configuration was
// supplied.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// URLResolver exposes the configured keyword URL resolver, if any.
func (c *Container) URLResolver() keywordsvc.URLResolver {
	return c.urlResolver
}

// DB returns the active bun database handle, or nil when the container runs
// on memory repositories.
func (c *Container) DB() *bun.DB {
	c.storageMu.Lock()
	defer c.storageMu.Unlock()
	return c.bunDB
}

// ActiveStorageProfile reports the name of the storage profile currently
// backing the repositories.
func (c *Container) ActiveStorageProfile() string {
	c.storageMu.Lock()
	defer c.storageMu.Unlock()
	return c.activeProfile
}

// Close stops the storage profile watcher and releases the active database
// handle. The container must not be used afterwards.
func (c *Container) Close(ctx context.Context) error {
	if c.storageCancel != nil {
		c.storageCancel()
		c.storageCancel = nil
	}

	c.storageMu.Lock()
	handle := c.storageHandle
	c.storageHandle = nil
	c.bunDB = nil
	c.activeProfile = ""
	c.storageMu.Unlock()

	if handle != nil {
		return handle.Close(ctx)
	}
	return nil
}
