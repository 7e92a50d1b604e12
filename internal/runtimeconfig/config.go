package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-glossary/pkg/storage"
	urlkit "github.com/goliatone/go-urlkit"
)

// ErrAdvancedCacheRequiresEnabledCache ensures advanced cache builds only when cache is enabled.
var ErrAdvancedCacheRequiresEnabledCache = errors.New("glossary config: advanced cache feature requires cache to be enabled")

// ErrCommandsCronRequiresScheduling ensures automatic cron wiring only runs when scheduling is enabled.
var ErrCommandsCronRequiresScheduling = errors.New("glossary config: command cron auto-registration requires scheduling to be enabled")

// ErrImportCronExpressionRequired indicates cron auto-registration without a schedule to run.
var ErrImportCronExpressionRequired = errors.New("glossary config: import cron expression is required when cron auto-registration is enabled")

// ErrMarkdownFeatureRequired indicates inconsistent markdown configuration.
var ErrMarkdownFeatureRequired = errors.New("glossary config: markdown feature must be enabled to configure markdown")
var ErrMarkdownContentDirRequired = errors.New("glossary config: markdown content directory is required when markdown is enabled")
var ErrLoggingProviderRequired = errors.New("glossary config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("glossary config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("glossary config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("glossary config: logging format is invalid")
var ErrLinkerMaxCandidatesInvalid = errors.New("glossary config: linker max candidates must be zero or positive")
var ErrLinkerTitleFormatInvalid = errors.New("glossary config: linker title format accepts at most one %s verb")

// Config aggregates feature flags and adapter bindings for the glossary module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled  bool
	Linker   LinkerConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Routes   RoutesConfig
	Metadata MetadataConfig
	Features Features
	Commands CommandsConfig
	Markdown MarkdownConfig
	Logging  LoggingConfig
}

// LinkerConfig tunes the markup emitted by the auto-linking engine.
type LinkerConfig struct {
	// CSSClass is applied to every generated HTML anchor.
	CSSClass string
	// TitleFormat renders the anchor title from the canonical display text.
	// It must contain at most one %s verb; "%s" emits the text untouched.
	TitleFormat string
	// MaxCandidates caps how many planned candidates a single rewrite
	// considers. Zero means no cap.
	MaxCandidates int
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
	// Profiles seeds the runtime storage profiles. The default profile (or
	// the first one listed) is opened at container build time; later profile
	// updates hot-swap the backing database.
	Profiles []storage.Profile
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// RoutesConfig captures routing configuration for keyword URL resolution.
type RoutesConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
}

// URLKitResolverConfig configures the go-urlkit based keyword URL resolver.
type URLKitResolverConfig struct {
	Group         string
	KeywordRoute  string
	CategoryRoute string
	SlugParam     string
	CategoryParam string
}

// MetadataConfig carries an optional JSON schema applied to keyword metadata.
type MetadataConfig struct {
	Schema map[string]any
}

// Features toggles module functionality.
type Features struct {
	Markdown      bool
	AdvancedCache bool
	Logger        bool
	Scheduling    bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool
	AutoRegisterDispatcher bool
	AutoRegisterCron       bool
	// ImportCron schedules recurring directory imports (cron expression,
	// e.g. "@daily") when cron auto-registration is enabled.
	ImportCron string
	// ImportPurge treats the content directory as the catalog's source of
	// truth on scheduled imports, removing keywords no document touched.
	ImportPurge bool
}

// MarkdownConfig captures filesystem and parser behaviour for keyword document ingestion.
type MarkdownConfig struct {
	Enabled         bool
	ContentDir      string
	Pattern         string
	Recursive       bool
	DefaultCategory string
	Parser          MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// DefaultConfig returns opinionated defaults for library-first embedding.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Linker: LinkerConfig{
			CSSClass:    "keyword-link",
			TitleFormat: "%s",
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Routes: RoutesConfig{},
		Features: Features{
			Markdown: true,
		},
		Commands: CommandsConfig{},
		Markdown: MarkdownConfig{
			ContentDir: "keywords",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Commands.AutoRegisterCron {
		if !cfg.Features.Scheduling {
			return ErrCommandsCronRequiresScheduling
		}
		if strings.TrimSpace(cfg.Commands.ImportCron) == "" {
			return ErrImportCronExpressionRequired
		}
	}
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	if cfg.Linker.MaxCandidates < 0 {
		return ErrLinkerMaxCandidatesInvalid
	}
	if format := cfg.Linker.TitleFormat; format != "" {
		if strings.Count(strings.ReplaceAll(format, "%%", ""), "%") > 1 {
			return fmt.Errorf("%w: %s", ErrLinkerTitleFormatInvalid, format)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
