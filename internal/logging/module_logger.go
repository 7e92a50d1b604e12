package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-glossary/pkg/interfaces"
)

// Logger namespaces, one per glossary module. Providers key configuration
// (levels, focus filters) off these names.
const (
	rootModule     = "glossary"
	keywordsModule = "glossary.keywords"
	linkerModule   = "glossary.linker"
	markdownModule = "glossary.markdown"
	pagesModule    = "glossary.pages"
)

const (
	fieldDocumentPath = "document_path"
	fieldImportAction = "import_action"
)

// ModuleLogger asks the provider for the named module logger and stamps every
// entry with a "module" field. A blank name resolves to the root namespace,
// and a missing provider (or a provider that hands back nil) degrades to the
// no-op logger so callers never have to guard their log calls.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if strings.TrimSpace(module) == "" {
		module = rootModule
	}

	var logger interfaces.Logger
	if provider != nil {
		logger = provider.GetLogger(module)
	}
	if logger == nil {
		logger = NoOp()
	}

	return WithFields(logger, map[string]any{"module": module})
}

// KeywordsLogger scopes a logger to the keyword catalog services.
func KeywordsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, keywordsModule)
}

// LinkerLogger scopes a logger to the automatic linking engine.
func LinkerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, linkerModule)
}

// MarkdownLogger scopes a logger to the markdown import pipeline.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// PagesLogger scopes a logger to page assembly.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// WithImportContext annotates a logger with the document path and import
// action of the run in progress. Blank values stay off the entry entirely
// rather than showing up as empty fields.
func WithImportContext(logger interfaces.Logger, path, action string) interfaces.Logger {
	fields := make(map[string]any, 2)
	if path = strings.TrimSpace(path); path != "" {
		fields[fieldDocumentPath] = path
	}
	if action = strings.TrimSpace(action); action != "" {
		fields[fieldImportAction] = action
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards everything. Services default to it when
// construction supplies no logger.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
