package linker

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-glossary/linker"
)

const defaultCSSClass = "keyword-link"

// markupBuilder renders accepted matches into dialect-specific anchors. The
// matched text is inserted verbatim so the reader keeps the document's own
// casing; only the destination and title are escaped.
type markupBuilder struct {
	cssClass    string
	titleFormat string
}

func newMarkupBuilder(cssClass, titleFormat string) *markupBuilder {
	if strings.TrimSpace(cssClass) == "" {
		cssClass = defaultCSSClass
	}
	if titleFormat == "" {
		titleFormat = "%s"
	}
	return &markupBuilder{cssClass: cssClass, titleFormat: titleFormat}
}

func (b *markupBuilder) render(dialect linker.Dialect, m linker.Match) string {
	if dialect == linker.DialectMarkdown {
		return b.markdownAnchor(m)
	}
	return b.htmlAnchor(m)
}

func (b *markupBuilder) htmlAnchor(m linker.Match) string {
	var sb strings.Builder
	sb.WriteString(`<a href="`)
	sb.WriteString(html.EscapeString(m.URL))
	sb.WriteString(`" class="`)
	sb.WriteString(html.EscapeString(b.cssClass))
	sb.WriteString(`" title="`)
	sb.WriteString(html.EscapeString(b.title(m.Candidate)))
	sb.WriteString(`">`)
	sb.WriteString(m.Text)
	sb.WriteString(`</a>`)
	return sb.String()
}

func (b *markupBuilder) markdownAnchor(m linker.Match) string {
	label := escapeMarkdownLabel(m.Text)
	url := escapeMarkdownURL(m.URL)

	title, ok := safeMarkdownTitle(b.title(m.Candidate))
	if !ok || title == "" {
		return fmt.Sprintf("[%s](%s)", label, url)
	}
	return fmt.Sprintf("[%s](%s %q)", label, url, title)
}

// title renders the anchor title from the canonical display text. Formats
// without a %s verb become a static title.
func (b *markupBuilder) title(candidateText string) string {
	if strings.Contains(b.titleFormat, "%s") {
		return fmt.Sprintf(b.titleFormat, candidateText)
	}
	return strings.ReplaceAll(b.titleFormat, "%%", "%")
}

// escapeMarkdownLabel keeps matched text displayable inside [..] by escaping
// the characters that would terminate or nest the label.
func escapeMarkdownLabel(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`[`, `\[`,
		`]`, `\]`,
	)
	return replacer.Replace(text)
}

// escapeMarkdownURL percent-encodes the characters that would break an
// inline destination. It is not a general URL encoder; catalog URLs are
// slug-built and only these characters can slip in via custom resolvers.
func escapeMarkdownURL(url string) string {
	replacer := strings.NewReplacer(
		" ", "%20",
		"(", "%28",
		")", "%29",
		`"`, "%22",
		"<", "%3C",
		">", "%3E",
	)
	return replacer.Replace(url)
}

// safeMarkdownTitle gates titles before %q quoting, which handles the
// backslash escaping for quotes. Titles containing line breaks cannot be
// represented safely and are reported as unescapable so the caller omits the
// title instead of risking broken markup.
func safeMarkdownTitle(title string) (string, bool) {
	if strings.ContainsAny(title, "\r\n") {
		return "", false
	}
	return title, true
}
