package linker

import (
	"fmt"
	"strings"
)

// Dialect identifies the markup family a document is written in. The engine
// never sniffs content; callers declare the dialect explicitly.
type Dialect string

const (
	// DialectHTML treats the document as rendered HTML.
	DialectHTML Dialect = "html"
	// DialectMarkdown treats the document as Markdown source.
	DialectMarkdown Dialect = "markdown"
)

// ParseDialect normalizes a free-form dialect string.
func ParseDialect(value string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(value))) {
	case DialectHTML:
		return DialectHTML, nil
	case DialectMarkdown:
		return DialectMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, value)
	}
}

// Valid reports whether the dialect is one the engine understands.
func (d Dialect) Valid() bool {
	return d == DialectHTML || d == DialectMarkdown
}

// Candidate pairs a linkable display text with the URL of the page it should
// point at. Candidates are data; the engine never loads them itself.
type Candidate struct {
	Text string
	URL  string
}

// Match records one accepted replacement. Start and End are byte offsets into
// the ORIGINAL document; Text preserves the document's own casing while
// Candidate carries the canonical display text that matched.
type Match struct {
	Start     int
	End       int
	Text      string
	Candidate string
	URL       string
}

// Context classifies a byte offset of a document relative to the markup
// constructs that must never gain links. Only ContextFree offsets are
// eligible for rewriting.
type Context int

const (
	// ContextFree marks plain prose eligible for linking.
	ContextFree Context = iota
	// ContextInsideTag marks bytes between < and > of an HTML tag.
	ContextInsideTag
	// ContextInsideAttribute marks bytes inside a quoted attribute value.
	ContextInsideAttribute
	// ContextInsideAnchorBody marks visible text of an existing <a> element.
	ContextInsideAnchorBody
	// ContextInsideLinkLabel marks the bracketed label of a Markdown link.
	ContextInsideLinkLabel
	// ContextInsideLinkTarget marks the parenthesised destination of a
	// Markdown link or image.
	ContextInsideLinkTarget
	// ContextInsideImageMarker marks a Markdown image construct including
	// its alt text.
	ContextInsideImageMarker
	// ContextInsideCodeSpan marks Markdown inline code and fenced blocks,
	// where link syntax would render literally.
	ContextInsideCodeSpan
)

// Linkable reports whether text at this context may be rewritten.
func (c Context) Linkable() bool {
	return c == ContextFree
}

func (c Context) String() string {
	switch c {
	case ContextFree:
		return "free"
	case ContextInsideTag:
		return "inside_tag"
	case ContextInsideAttribute:
		return "inside_attribute"
	case ContextInsideAnchorBody:
		return "inside_anchor_body"
	case ContextInsideLinkLabel:
		return "inside_link_label"
	case ContextInsideLinkTarget:
		return "inside_link_target"
	case ContextInsideImageMarker:
		return "inside_image_marker"
	case ContextInsideCodeSpan:
		return "inside_code_span"
	default:
		return "unknown"
	}
}

// Result reports a rewrite outcome: the transformed document plus the
// replacements that produced it. Matches are ordered by Start ascending.
type Result struct {
	Document   string
	Matches    []Match
	Candidates int
}
