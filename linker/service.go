package linker

import "context"

// Service rewrites documents so that every eligible occurrence of a
// candidate's display text becomes a hyperlink to its entry page.
//
// The rewrite is a pure, synchronous transform: matching and context
// classification always run against the immutable input document, existing
// markup is never corrupted, and feeding the output back in yields no new
// links. Malformed documents degrade to fewer links, never to an error.
type Service interface {
	Rewrite(ctx context.Context, document string, dialect Dialect, candidates []Candidate) (*Result, error)
	RewriteHTML(ctx context.Context, document string, candidates []Candidate) (*Result, error)
	RewriteMarkdown(ctx context.Context, document string, candidates []Candidate) (*Result, error)
}
