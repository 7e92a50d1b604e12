package bootstrap

import (
	"fmt"
	"strings"

	glossary "github.com/goliatone/go-glossary"
	"github.com/goliatone/go-glossary/commands"
	"github.com/goliatone/go-glossary/internal/di"
	"github.com/goliatone/go-glossary/pkg/interfaces"
	"github.com/google/uuid"
)

// Options captures the tunable configuration shared by hosts that embed the
// glossary with markdown ingestion enabled.
type Options struct {
	ContentDir      string
	Pattern         string
	Recursive       bool
	DefaultCategory string
	LoggerProvider  interfaces.LoggerProvider
	EnableCommands  bool // collect command handlers for direct invocation when true
}

// Resources groups the module runtime and optional command collector used by embedding hosts.
type Resources struct {
	Module    *glossary.Module
	Collector *CommandCollector
}

// CommandCollector records handlers registered during construction so hosts
// can invoke them directly without a dispatcher integration.
type CommandCollector struct {
	handlers []any
}

// RegisterCommand satisfies commands.CommandRegistry.
func (c *CommandCollector) RegisterCommand(handler any) error {
	c.handlers = append(c.handlers, handler)
	return nil
}

// Handlers returns the collected handlers.
func (c *CommandCollector) Handlers() []any {
	if len(c.handlers) == 0 {
		return nil
	}
	out := make([]any, len(c.handlers))
	copy(out, c.handlers)
	return out
}

// BuildModule constructs a glossary.Module configured for markdown ingestion using the supplied options.
func BuildModule(opts Options) (*Resources, error) {
	cfg := glossary.DefaultConfig()

	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.Markdown.ContentDir == "" {
		cfg.Markdown.ContentDir = "keywords"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Markdown.Pattern = trimmed
	}
	if trimmed := strings.TrimSpace(opts.DefaultCategory); trimmed != "" {
		cfg.Markdown.DefaultCategory = trimmed
	}
	cfg.Markdown.Recursive = opts.Recursive

	var collector *CommandCollector
	diOpts := []di.Option{}

	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := glossary.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise glossary module: %w", err)
	}

	if opts.EnableCommands {
		collector = &CommandCollector{
			handlers: make([]any, 0),
		}
		if _, err := module.Commands(commands.RegistrationOptions{
			Registry:       collector,
			LoggerProvider: opts.LoggerProvider,
		}); err != nil {
			return nil, fmt.Errorf("register keyword commands: %w", err)
		}
	}

	return &Resources{
		Module:    module,
		Collector: collector,
	}, nil
}

// SplitAliases parses a comma separated alias list into a trimmed slice.
func SplitAliases(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	aliases := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			aliases = append(aliases, trimmed)
		}
	}
	return aliases
}

// ParseUUID converts the supplied string into a UUID, returning uuid.Nil when the input is empty.
func ParseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(trimmed)
}

// ParseUUIDPointer returns a pointer to the parsed UUID, or nil when the value is empty.
func ParseUUIDPointer(value string) (*uuid.UUID, error) {
	id, err := ParseUUID(value)
	if err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, nil
	}
	return &id, nil
}
