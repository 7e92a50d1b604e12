package commands

import (
	"context"
	"testing"

	keywordscmd "github.com/goliatone/go-glossary/internal/commands/keywords"
	"github.com/goliatone/go-glossary/internal/di"
	"github.com/goliatone/go-glossary/internal/runtimeconfig"
	"github.com/goliatone/go-glossary/keywords"
	"github.com/goliatone/go-glossary/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = "keywords"

	registry := &captureRegistry{}
	dispatcher := &captureDispatcher{}
	cron := &captureCron{}

	container, err := di.NewContainer(cfg, di.WithMarkdownService(&fakeMarkdownService{}))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{
		Registry:      registry,
		Dispatcher:    dispatcher,
		CronRegistrar: cron.Registrar(),
		ImportCron:    "@weekly",
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) != 2 {
		t.Fatalf("expected import and rebuild handlers, got %d", len(result.Handlers))
	}
	if len(result.Handlers) != len(registry.handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(dispatcher.subscriptions) != len(result.Handlers) {
		t.Fatalf("expected dispatcher subscriptions for every handler, got %d", len(dispatcher.subscriptions))
	}
	if len(cron.entries) != 1 {
		t.Fatalf("expected one cron registration for the scheduled import, got %d", len(cron.entries))
	}
	if got := cron.entries[0].expression; got != "@weekly" {
		t.Fatalf("expected import cron expression override, got %q", got)
	}
}

func TestRegisterContainerCommandsWithoutRegistrars(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) == 0 {
		t.Fatal("expected handlers to be built even without registrars")
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no dispatcher subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}
}

func TestRegisterContainerCommandsRebuildOnlyWhenMarkdownDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Enabled = false

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	var hasRebuild bool
	for _, handler := range result.Handlers {
		switch handler.(type) {
		case *keywordscmd.ImportDirectoryHandler:
			t.Fatal("expected import handler not to be registered without a markdown service")
		case *keywordscmd.RebuildSearchIndexHandler:
			hasRebuild = true
		}
	}
	if !hasRebuild {
		t.Fatal("expected rebuild handler to stay available without markdown ingestion")
	}
}

func TestRegisterContainerCommandsImportCronRunsImport(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = "glossary-content"
	cfg.Markdown.DefaultCategory = "general"
	cfg.Commands.ImportCron = "@daily"

	service := &fakeMarkdownService{}
	cron := &captureCron{}

	container, err := di.NewContainer(cfg, di.WithMarkdownService(service))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	if _, err := RegisterContainerCommands(container, RegistrationOptions{CronRegistrar: cron.Registrar()}); err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(cron.entries) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(cron.entries))
	}
	entry := cron.entries[0]
	if entry.expression != "@daily" {
		t.Fatalf("expected configured cron expression, got %q", entry.expression)
	}
	if entry.run == nil {
		t.Fatal("expected cron registration to carry a runnable handler")
	}
	if err := entry.run(); err != nil {
		t.Fatalf("cron handler returned error: %v", err)
	}
	if service.importDir != "glossary-content" {
		t.Fatalf("expected scheduled import of configured content dir, got %q", service.importDir)
	}
	if !service.importOpts.UpdateExisting {
		t.Fatal("expected scheduled imports to refresh existing keywords")
	}
	if service.importOpts.DefaultCategory != "general" {
		t.Fatalf("expected configured default category, got %q", service.importOpts.DefaultCategory)
	}
}

func TestRegisterContainerCommandsIndexSinkReceivesSnapshot(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	var sinkCalls int
	result, err := RegisterContainerCommands(container, RegistrationOptions{
		IndexSink: func(ctx context.Context, entries []keywords.SearchEntry) error {
			sinkCalls++
			return nil
		},
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	var rebuild *keywordscmd.RebuildSearchIndexHandler
	for _, handler := range result.Handlers {
		if h, ok := handler.(*keywordscmd.RebuildSearchIndexHandler); ok {
			rebuild = h
		}
	}
	if rebuild == nil {
		t.Fatal("expected rebuild handler to be registered")
	}
	if err := rebuild.Execute(context.Background(), keywordscmd.RebuildSearchIndexCommand{}); err != nil {
		t.Fatalf("rebuild execute: %v", err)
	}
	if sinkCalls != 1 {
		t.Fatalf("expected index sink to receive one snapshot, got %d", sinkCalls)
	}
}

func TestRegisterContainerCommandsNilContainer(t *testing.T) {
	result, err := RegisterContainerCommands(nil, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) != 0 {
		t.Fatalf("expected no handlers for nil container, got %d", len(result.Handlers))
	}
}

type fakeMarkdownService struct {
	importDir  string
	importOpts interfaces.ImportOptions
}

func (*fakeMarkdownService) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.Document, error) {
	return nil, nil
}

func (*fakeMarkdownService) LoadDirectory(context.Context, string, interfaces.LoadOptions) ([]*interfaces.Document, error) {
	return nil, nil
}

func (*fakeMarkdownService) Render(context.Context, []byte, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func (*fakeMarkdownService) RenderPreview(context.Context, []byte, interfaces.ParseOptions) (*interfaces.Preview, error) {
	return nil, nil
}

func (*fakeMarkdownService) Import(context.Context, *interfaces.Document, interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	return &interfaces.ImportResult{}, nil
}

func (f *fakeMarkdownService) ImportDirectory(_ context.Context, dir string, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	f.importDir = dir
	f.importOpts = opts
	return &interfaces.ImportResult{}, nil
}

type captureRegistry struct {
	handlers []any
}

func (r *captureRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

type captureDispatcher struct {
	subscriptions []*captureSubscription
}

func (d *captureDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	sub := &captureSubscription{handler: handler}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type captureSubscription struct {
	handler      any
	unsubscribed bool
}

func (s *captureSubscription) Unsubscribe() { s.unsubscribed = true }

type cronEntry struct {
	expression string
	run        func() error
}

type captureCron struct {
	entries []cronEntry
}

func (c *captureCron) Registrar() CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		run, _ := handler.(func() error)
		c.entries = append(c.entries, cronEntry{expression: cfg.Expression, run: run})
		return nil
	}
}
