package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-glossary/pkg/interfaces"
)

// GoldmarkParser implements interfaces.MarkdownParser on top of goldmark.
// The engine for the default options is built once; goldmark converters are
// safe for concurrent use, so a single parser serves all requests.
type GoldmarkParser struct {
	engine goldmark.Markdown
}

// NewGoldmarkParser builds a parser whose Parse method uses the supplied
// defaults. Per-call overrides go through ParseWithOptions.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{engine: buildEngine(defaults)}
}

// Parse renders Markdown into HTML using the parser's default configuration.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return convert(p.engine, markdown)
}

// ParseWithOptions renders Markdown into HTML using the supplied options,
// ignoring the parser's defaults.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	return convert(buildEngine(opts), markdown)
}

func convert(engine goldmark.Markdown, markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}

func buildEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	options := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}

	var render []renderer.Option
	if opts.HardWraps {
		render = append(render, html.WithHardWraps())
	}
	// SafeMode and Sanitize both keep contributor-authored raw HTML out of
	// the output.
	if !opts.SafeMode && !opts.Sanitize {
		render = append(render, html.WithUnsafe())
	}
	if len(render) > 0 {
		options = append(options, goldmark.WithRendererOptions(render...))
	}

	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		options = append(options, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(options...)
}

// collectExtensions resolves configured extension names, deduplicating by
// canonical name so aliases like "table"/"tables" register once. With nothing
// configured, the defaults suit glossary entries: GFM, linkified URLs, and
// definition lists for term/definition style descriptions.
func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.DefinitionList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key, ext := resolveExtension(strings.ToLower(strings.TrimSpace(name)))
		if ext == nil {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		extenders = append(extenders, ext)
	}

	return extenders
}

// resolveExtension maps an extension name onto its goldmark extender and
// canonical key. Unknown names resolve to nil and are skipped.
func resolveExtension(name string) (string, goldmark.Extender) {
	switch name {
	case "gfm":
		return "gfm", extension.GFM
	case "table", "tables":
		return "table", extension.Table
	case "strikethrough":
		return "strikethrough", extension.Strikethrough
	case "linkify", "autolink":
		return "linkify", extension.Linkify
	case "tasklist":
		return "tasklist", extension.TaskList
	case "definition":
		return "definition", extension.DefinitionList
	case "footnote":
		return "footnote", extension.Footnote
	}
	return "", nil
}
