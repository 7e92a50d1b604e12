package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should keep parser instances reusable and expose extension
// toggles so hosts can tailor rendering without rewriting the service.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// Preview bundles the render artefacts needed by editor previews and the
// search index: the HTML body, a tag-stripped plain-text projection, and a
// rough word count over that text.
type Preview struct {
	HTML      []byte
	Text      string
	WordCount int
}

// MarkdownService exposes the file workflows for keyword documents: loading
// Markdown files with front matter envelopes, rendering them, and importing
// them into the keyword catalog.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderPreview(ctx context.Context, markdown []byte, opts ParseOptions) (*Preview, error)
	Import(ctx context.Context, doc *Document, opts ImportOptions) (*ImportResult, error)
	ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error)
}

// Document represents a keyword Markdown file with parsed metadata. The body
// is the keyword description in Markdown source form.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
}

// FrontMatter models the metadata envelope of a keyword document. Aliases
// become alternative display texts for the keyword; Category is referenced by
// slug and created on demand during imports.
type FrontMatter struct {
	Title    string         `yaml:"title" json:"title"`
	Slug     string         `yaml:"slug" json:"slug"`
	Category string         `yaml:"category" json:"category"`
	Aliases  []string       `yaml:"aliases" json:"aliases"`
	Status   string         `yaml:"status" json:"status"`
	Position int            `yaml:"position" json:"position"`
	Custom   map[string]any `yaml:",inline" json:"custom"`
	Raw      map[string]any `yaml:"-" json:"raw"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}

// ImportOptions controls how keyword documents are written to the catalog.
type ImportOptions struct {
	// DefaultCategory is the category slug applied when a document's front
	// matter does not name one.
	DefaultCategory string
	DryRun          bool
	UpdateExisting  bool
}

// ImportResult reports the outcome of an import run so callers can audit
// behaviour or surface partial failures.
type ImportResult struct {
	CreatedKeywords []string
	UpdatedKeywords []string
	SkippedKeywords []string
	Errors          []error
}
