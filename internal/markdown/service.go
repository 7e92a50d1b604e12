package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/goliatone/go-glossary/keywords"
	"github.com/goliatone/go-glossary/pkg/interfaces"
)

// Config wires the Markdown service: where keyword documents live, how they
// are discovered, and which catalog receives imports.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
	Keywords  keywords.Service
	Logger    interfaces.Logger
}

// Service implements interfaces.MarkdownService on top of a directory of
// keyword documents.
type Service struct {
	defaults interfaces.ParseOptions
	parser   interfaces.MarkdownParser
	loader   *Loader
	importer *Importer
}

// NewService builds the service around cfg.BasePath. A nil parser falls back
// to Goldmark configured with cfg.Parser.
func NewService(cfg Config, parser interfaces.MarkdownParser) (*Service, error) {
	contentFS, err := openContentDir(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	return &Service{
		defaults: cfg.Parser,
		parser:   parser,
		loader: NewLoader(contentFS, LoaderConfig{
			BasePath:  cfg.BasePath,
			Pattern:   cfg.Pattern,
			Recursive: cfg.Recursive,
		}),
		importer: NewImporter(ImporterConfig{
			Keywords: cfg.Keywords,
			Logger:   cfg.Logger,
		}),
	}, nil
}

// Load reads one keyword document and renders its body to HTML.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	doc, err := s.loader.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := s.renderInto(ctx, doc, opts.Parser); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadDirectory reads every keyword document under dir, rendering each body.
// Documents come back in stable path order.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	docs, err := s.loader.LoadDirectory(ctx, dir, LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	})
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if err := s.renderInto(ctx, doc, opts.Parser); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// Render converts Markdown bytes to HTML, layering opts over the configured
// defaults.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.parser.ParseWithOptions(markdown, s.parseOptions(opts))
}

// RenderPreview renders Markdown and projects the result to plain text for
// editor previews and search snippets.
func (s *Service) RenderPreview(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) (*interfaces.Preview, error) {
	html, err := s.Render(ctx, markdown, opts)
	if err != nil {
		return nil, err
	}

	text := StripTags(string(html))
	return &interfaces.Preview{
		HTML:      html,
		Text:      text,
		WordCount: len(strings.Fields(text)),
	}, nil
}

// Import persists a single document through the keyword catalog.
func (s *Service) Import(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	return s.importer.ImportDocument(ctx, doc, opts)
}

// ImportDirectory discovers documents under dir and imports them in stable
// path order. Bodies stay in Markdown source form; rendering happens when
// pages are assembled, not at import time.
func (s *Service) ImportDirectory(ctx context.Context, dir string, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	docs, err := s.loader.LoadDirectory(ctx, dir, LoadParams{})
	if err != nil {
		return nil, err
	}
	return s.importer.ImportDocuments(ctx, docs, opts)
}

func (s *Service) renderInto(ctx context.Context, doc *interfaces.Document, overrides interfaces.ParseOptions) error {
	html, err := s.Render(ctx, doc.Body, overrides)
	if err != nil {
		return fmt.Errorf("markdown render %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = html
	return nil
}

// parseOptions layers per-call overrides on the service defaults. Extension
// overrides replace the default list; boolean flags are additive.
func (s *Service) parseOptions(override interfaces.ParseOptions) interfaces.ParseOptions {
	merged := s.defaults
	if len(override.Extensions) > 0 {
		merged.Extensions = slices.Clone(override.Extensions)
	}
	merged.Sanitize = merged.Sanitize || override.Sanitize
	merged.HardWraps = merged.HardWraps || override.HardWraps
	merged.SafeMode = merged.SafeMode || override.SafeMode
	return merged
}

func openContentDir(path string) (fs.FS, error) {
	if strings.TrimSpace(path) == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("markdown service: content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("markdown service: content path %s is not a directory", path)
	}
	return os.DirFS(path), nil
}
