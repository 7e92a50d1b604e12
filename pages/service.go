package pages

import (
	"context"

	"github.com/goliatone/go-glossary/keywords"
	"github.com/goliatone/go-glossary/linker"
	"github.com/google/uuid"
)

// Service assembles reader-facing keyword pages: it resolves a slug or id to
// a catalog record, renders the description, auto-links every other visible
// keyword inside it, and gathers the surrounding navigation data.
type Service interface {
	BuildKeywordPage(ctx context.Context, req BuildKeywordPageRequest) (*KeywordPage, error)
}

// BuildKeywordPageRequest identifies the keyword to assemble. Exactly one of
// Slug or ID must be set; Slug resolves alias slugs as well as canonical ones.
type BuildKeywordPageRequest struct {
	Slug string
	ID   uuid.UUID

	// Dialect selects the body format: DialectHTML (the default) renders the
	// Markdown description before linking, DialectMarkdown links the source
	// untouched. Links are inserted in the matching syntax either way.
	Dialect linker.Dialect

	// RelatedLimit caps the related keyword list; zero keeps every sibling.
	RelatedLimit int

	// IncludeHidden assembles drafts and archived entries too. Reader
	// surfaces leave it false so unpublished keywords stay invisible.
	IncludeHidden bool

	// SkipViewCount leaves the view counter untouched, for previews and
	// crawlers that should not inflate popularity.
	SkipViewCount bool
}

// KeywordPage is the assembled detail page for one keyword.
type KeywordPage struct {
	Keyword *keywords.Keyword

	// DisplayTitle is what the visitor asked for: the alias title when the
	// request arrived through an alias slug, the keyword title otherwise.
	DisplayTitle string

	// MatchedAlias is set when the request slug resolved through an alias.
	MatchedAlias *keywords.KeywordAlias

	// Body is the description in the requested dialect with cross-links
	// already inserted.
	Body    string
	Dialect linker.Dialect

	// AlternativeNames lists the other ways this entry is known. On an alias
	// hit the canonical title leads the list and the matched alias is
	// omitted; on a canonical hit it is the alias titles.
	AlternativeNames []string

	// Related holds the visible keywords sharing the subject's category,
	// ordered by position, without the subject itself.
	Related []*keywords.Keyword

	// CanonicalURL is the keyword's own page URL. Alias hits can use it as a
	// redirect or rel=canonical target.
	CanonicalURL string

	// LinkCount is the number of cross-links inserted into Body.
	LinkCount int
}
