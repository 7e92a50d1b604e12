package glossary

import (
	"github.com/goliatone/go-glossary/internal/runtimeconfig"
	"github.com/goliatone/go-glossary/pkg/storage"
)

var (
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
	ErrCommandsCronRequiresScheduling    = runtimeconfig.ErrCommandsCronRequiresScheduling
	ErrImportCronExpressionRequired      = runtimeconfig.ErrImportCronExpressionRequired
	ErrMarkdownFeatureRequired           = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownContentDirRequired        = runtimeconfig.ErrMarkdownContentDirRequired
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
	ErrLinkerMaxCandidatesInvalid        = runtimeconfig.ErrLinkerMaxCandidatesInvalid
	ErrLinkerTitleFormatInvalid          = runtimeconfig.ErrLinkerTitleFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	LinkerConfig         = runtimeconfig.LinkerConfig
	StorageConfig        = runtimeconfig.StorageConfig
	StorageProfile       = storage.Profile
	CacheConfig          = runtimeconfig.CacheConfig
	RoutesConfig         = runtimeconfig.RoutesConfig
	URLKitResolverConfig = runtimeconfig.URLKitResolverConfig
	MetadataConfig       = runtimeconfig.MetadataConfig
	Features             = runtimeconfig.Features
	LoggingConfig        = runtimeconfig.LoggingConfig
	CommandsConfig       = runtimeconfig.CommandsConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
