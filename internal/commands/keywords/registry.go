package keywordscmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-glossary/internal/commands"
	"github.com/goliatone/go-glossary/keywords"
	"github.com/goliatone/go-glossary/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the keyword command handlers produced by RegisterKeywordCommands.
type HandlerSet struct {
	Import       *ImportDirectoryHandler
	RebuildIndex *RebuildSearchIndexHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	sink               IndexSink
	importHandlerOpts  []commands.HandlerOption[ImportDirectoryCommand]
	rebuildHandlerOpts []commands.HandlerOption[RebuildSearchIndexCommand]
}

// WithIndexSink routes rebuilt search indexes to the supplied sink.
func WithIndexSink(sink IndexSink) Option {
	return func(cfg *options) {
		cfg.sink = sink
	}
}

// WithImportHandlerOptions forwards options to the ImportDirectoryHandler constructor.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.importHandlerOpts = append(cfg.importHandlerOpts, opts...)
	}
}

// WithRebuildHandlerOptions forwards options to the RebuildSearchIndexHandler constructor.
func WithRebuildHandlerOptions(opts ...commands.HandlerOption[RebuildSearchIndexCommand]) Option {
	return func(cfg *options) {
		cfg.rebuildHandlerOpts = append(cfg.rebuildHandlerOpts, opts...)
	}
}

// RegisterKeywordCommands builds the keyword command handlers and registers
// them with the provided registry. A HandlerSet containing the constructed
// handlers is returned so callers can wire additional integrations
// (dispatcher, cron) as needed.
func RegisterKeywordCommands(reg CommandRegistry, service interfaces.MarkdownService, catalog keywords.Service, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("keyword command registration: markdown service is nil")
	}
	if catalog == nil {
		return nil, errors.New("keyword command registration: catalog service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "keywords")

	importHandler := NewImportDirectoryHandler(service, catalog, logger, gates, cfg.importHandlerOpts...)
	rebuildHandler := NewRebuildSearchIndexHandler(catalog, cfg.sink, logger, cfg.rebuildHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(importHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(rebuildHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Import:       importHandler,
		RebuildIndex: rebuildHandler,
	}, nil
}

// RegisterImportCron wires the import handler into a cron registrar using the
// supplied command configuration and message payload, so directory re-imports
// run on a schedule. The handler executes with a background context.
func RegisterImportCron(reg CronRegistrar, handler *ImportDirectoryHandler, cfg command.HandlerConfig, msg ImportDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
