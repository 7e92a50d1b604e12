package commands

import (
	"errors"
	"strings"

	cmdcore "github.com/goliatone/go-glossary/internal/commands"
	keywordscmd "github.com/goliatone/go-glossary/internal/commands/keywords"
	"github.com/goliatone/go-glossary/internal/di"
	"github.com/goliatone/go-glossary/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// IndexSink re-exports the search index sink consumed by the rebuild handler.
type IndexSink = keywordscmd.IndexSink

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// ImportCron overrides the configured cron expression for the scheduled
	// directory import.
	ImportCron string
	// IndexSink receives search index snapshots produced by the rebuild
	// handler. When nil the handler logs the entry count and discards the
	// snapshot.
	IndexSink IndexSink
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterContainerCommands builds the command handlers exposed by the provided container and
// optionally registers them with registry/dispatcher/cron integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	if opts.Registry != nil && opts.CronRegistrar != nil {
		if reg, ok := opts.Registry.(interface {
			SetCronRegister(func(command.HandlerConfig, any) error) *command.Registry
		}); ok && reg != nil {
			reg.SetCronRegister(opts.CronRegistrar)
		}
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}

		if opts.CronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok {
				if err := opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	// Keyword catalog commands. The directory import needs the markdown
	// service; the search index rebuild only needs the catalog, so it stays
	// available when markdown ingestion is disabled.
	if catalog := container.KeywordService(); catalog != nil {
		keywordOpts := []keywordscmd.Option{}
		if opts.IndexSink != nil {
			keywordOpts = append(keywordOpts, keywordscmd.WithIndexSink(opts.IndexSink))
		}

		if service := container.MarkdownService(); service != nil && cfg.Features.Markdown {
			gates := keywordscmd.FeatureGates{
				ImportEnabled: func() bool { return cfg.Features.Markdown && cfg.Markdown.Enabled },
			}
			handlerSet, err := keywordscmd.RegisterKeywordCommands(nil, service, catalog, provider, gates, keywordOpts...)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if handlerSet != nil {
				register(handlerSet.Import)
				register(handlerSet.RebuildIndex)

				if opts.CronRegistrar != nil && handlerSet.Import != nil {
					expr := strings.TrimSpace(opts.ImportCron)
					if expr == "" {
						expr = strings.TrimSpace(cfg.Commands.ImportCron)
					}
					if expr != "" {
						msg := keywordscmd.ImportDirectoryCommand{
							Directory:       cfg.Markdown.ContentDir,
							DefaultCategory: cfg.Markdown.DefaultCategory,
							UpdateExisting:  true,
							Purge:           cfg.Commands.ImportPurge,
						}
						cronCfg := command.HandlerConfig{Expression: expr}
						if err := keywordscmd.RegisterImportCron(keywordscmd.CronRegistrar(opts.CronRegistrar), handlerSet.Import, cronCfg, msg); err != nil {
							errs = errors.Join(errs, err)
						}
					}
				}
			}
		} else {
			logger := cmdcore.CommandLogger(provider, "keywords")
			register(keywordscmd.NewRebuildSearchIndexHandler(catalog, opts.IndexSink, logger))
		}
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure services are configured and required features enabled")
	}

	return result, errs
}
