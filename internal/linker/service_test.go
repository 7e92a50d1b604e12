package linker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-glossary/linker"
)

func TestServiceRewriteHTML(t *testing.T) {
	t.Parallel()

	svc := NewService()
	result, err := svc.RewriteHTML(context.Background(), "use a cache here", []linker.Candidate{
		{Text: "Cache", URL: "/terms/cache"},
	})
	if err != nil {
		t.Fatalf("expected rewrite to succeed, got %v", err)
	}

	want := `use a <a href="/terms/cache" class="keyword-link" title="Cache">cache</a> here`
	if result.Document != want {
		t.Fatalf("expected %q, got %q", want, result.Document)
	}
	if len(result.Matches) != 1 {
		t.Fatalf("expected one match, got %d", len(result.Matches))
	}
	if result.Candidates != 1 {
		t.Fatalf("expected one planned candidate, got %d", result.Candidates)
	}
}

func TestServiceRewriteMarkdown(t *testing.T) {
	t.Parallel()

	svc := NewService()
	result, err := svc.RewriteMarkdown(context.Background(), "binary trees store data", []linker.Candidate{
		{Text: "binary trees", URL: "/terms/binary-trees"},
	})
	if err != nil {
		t.Fatalf("expected rewrite to succeed, got %v", err)
	}

	want := `[binary trees](/terms/binary-trees "binary trees") store data`
	if result.Document != want {
		t.Fatalf("expected %q, got %q", want, result.Document)
	}
}

func TestServiceRewriteIsIdempotent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		dialect  linker.Dialect
		document string
	}{
		{
			name:     "html",
			dialect:  linker.DialectHTML,
			document: "use a cache here, the cache is fast",
		},
		{
			name:     "markdown",
			dialect:  linker.DialectMarkdown,
			document: "binary trees store data in binary trees",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := NewService()
			candidates := []linker.Candidate{
				{Text: "cache", URL: "/terms/cache"},
				{Text: "binary trees", URL: "/terms/binary-trees"},
			}

			first, err := svc.Rewrite(context.Background(), tc.document, tc.dialect, candidates)
			if err != nil {
				t.Fatalf("first rewrite failed: %v", err)
			}
			if first.Document == tc.document {
				t.Fatalf("expected first rewrite to change the document")
			}

			second, err := svc.Rewrite(context.Background(), first.Document, tc.dialect, candidates)
			if err != nil {
				t.Fatalf("second rewrite failed: %v", err)
			}
			if second.Document != first.Document {
				t.Fatalf("expected stable document, got %q then %q", first.Document, second.Document)
			}
			if len(second.Matches) != 0 {
				t.Fatalf("expected no new matches on second pass, got %d", len(second.Matches))
			}
		})
	}
}

func TestServiceRewriteUnknownDialect(t *testing.T) {
	t.Parallel()

	svc := NewService()
	_, err := svc.Rewrite(context.Background(), "text", linker.Dialect("asciidoc"), []linker.Candidate{
		{Text: "text", URL: "/terms/text"},
	})
	if !errors.Is(err, linker.ErrUnknownDialect) {
		t.Fatalf("expected ErrUnknownDialect, got %v", err)
	}
}

func TestServiceRewriteWithoutCandidatesLeavesDocumentAlone(t *testing.T) {
	t.Parallel()

	svc := NewService()
	doc := "nothing to link here"

	result, err := svc.RewriteHTML(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Document != doc {
		t.Fatalf("expected untouched document, got %q", result.Document)
	}
	if len(result.Matches) != 0 || result.Candidates != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestServiceRewriteEmptyDocument(t *testing.T) {
	t.Parallel()

	svc := NewService()
	result, err := svc.RewriteHTML(context.Background(), "", []linker.Candidate{
		{Text: "cache", URL: "/terms/cache"},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Document != "" {
		t.Fatalf("expected empty document to stay empty, got %q", result.Document)
	}
}

func TestServiceRewriteSkipsHopelessDocuments(t *testing.T) {
	t.Parallel()

	svc := NewService()
	candidates := []linker.Candidate{
		{Text: "packet filter", URL: "/networking/packet-filter"},
	}

	for _, doc := range []string{"  \n\t  ", "pf"} {
		result, err := svc.RewriteHTML(context.Background(), doc, candidates)
		if err != nil {
			t.Fatalf("expected nil error for %q, got %v", doc, err)
		}
		if result.Document != doc {
			t.Fatalf("expected %q unchanged, got %q", doc, result.Document)
		}
		if len(result.Matches) != 0 {
			t.Fatalf("expected no matches for %q, got %d", doc, len(result.Matches))
		}
		if result.Candidates != 1 {
			t.Fatalf("expected planned candidate count to be reported, got %d", result.Candidates)
		}
	}
}

func TestServiceRewriteSkipsAltAttributes(t *testing.T) {
	t.Parallel()

	svc := NewService()
	doc := `<img alt="binary tree" src="tree.png"> every binary tree balances`

	result, err := svc.RewriteHTML(context.Background(), doc, []linker.Candidate{
		{Text: "binary tree", URL: "/terms/binary-tree"},
	})
	if err != nil {
		t.Fatalf("expected rewrite to succeed, got %v", err)
	}

	if !strings.Contains(result.Document, `alt="binary tree"`) {
		t.Fatalf("expected alt attribute untouched, got %q", result.Document)
	}
	if !strings.Contains(result.Document, `>binary tree</a> balances`) {
		t.Fatalf("expected prose occurrence linked, got %q", result.Document)
	}
	if got := strings.Count(result.Document, "<a "); got != 1 {
		t.Fatalf("expected exactly one anchor, got %d", got)
	}
}

func TestServiceRewriteNeverNestsAnchors(t *testing.T) {
	t.Parallel()

	svc := NewService()
	doc := `<a href="/existing">a heap of work</a> and a heap elsewhere`

	result, err := svc.RewriteHTML(context.Background(), doc, []linker.Candidate{
		{Text: "heap", URL: "/terms/heap"},
	})
	if err != nil {
		t.Fatalf("expected rewrite to succeed, got %v", err)
	}

	if !strings.HasPrefix(result.Document, `<a href="/existing">a heap of work</a>`) {
		t.Fatalf("expected existing anchor untouched, got %q", result.Document)
	}
	if got := strings.Count(result.Document, "</a>"); got != 2 {
		t.Fatalf("expected one new anchor after the existing one, got %d closers", got)
	}
}

func TestServiceRewriteMarkdownLeavesExistingLinksAlone(t *testing.T) {
	t.Parallel()

	svc := NewService()
	doc := `read [the heap guide](/guides/heap) before using a heap`

	result, err := svc.RewriteMarkdown(context.Background(), doc, []linker.Candidate{
		{Text: "heap", URL: "/terms/heap"},
	})
	if err != nil {
		t.Fatalf("expected rewrite to succeed, got %v", err)
	}

	if !strings.HasPrefix(result.Document, `read [the heap guide](/guides/heap)`) {
		t.Fatalf("expected existing link untouched, got %q", result.Document)
	}
	if !strings.HasSuffix(result.Document, `[heap](/terms/heap "heap")`) {
		t.Fatalf("expected trailing occurrence linked, got %q", result.Document)
	}
}

func TestServiceRewriteHonoursMaxCandidates(t *testing.T) {
	t.Parallel()

	svc := NewService(WithMaxCandidates(1))
	doc := "alpha beta"

	result, err := svc.RewriteHTML(context.Background(), doc, []linker.Candidate{
		{Text: "alpha", URL: "/terms/alpha"},
		{Text: "beta", URL: "/terms/beta"},
	})
	if err != nil {
		t.Fatalf("expected rewrite to succeed, got %v", err)
	}
	if result.Candidates != 1 {
		t.Fatalf("expected candidate cap of 1, got %d", result.Candidates)
	}
	if len(result.Matches) != 1 {
		t.Fatalf("expected a single match under the cap, got %d", len(result.Matches))
	}
}

func TestServiceRewriteUsesConfiguredClassAndTitle(t *testing.T) {
	t.Parallel()

	svc := NewService(WithCSSClass("glossary-term"), WithTitleFormat("Definition of %s"))
	result, err := svc.RewriteHTML(context.Background(), "a queue forms", []linker.Candidate{
		{Text: "Queue", URL: "/terms/queue"},
	})
	if err != nil {
		t.Fatalf("expected rewrite to succeed, got %v", err)
	}

	want := `a <a href="/terms/queue" class="glossary-term" title="Definition of Queue">queue</a> forms`
	if result.Document != want {
		t.Fatalf("expected %q, got %q", want, result.Document)
	}
}

type recordingMetrics struct {
	durations map[string]int
	matches   map[string]int
	rejects   map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		durations: map[string]int{},
		matches:   map[string]int{},
		rejects:   map[string]int{},
	}
}

func (m *recordingMetrics) ObserveRewriteDuration(dialect string, _ time.Duration) {
	m.durations[dialect]++
}

func (m *recordingMetrics) AddMatches(dialect string, count int) {
	m.matches[dialect] += count
}

func (m *recordingMetrics) IncrementRewriteError(dialect string) {
	m.rejects[dialect]++
}

func TestServiceRewriteRecordsMetrics(t *testing.T) {
	t.Parallel()

	metrics := newRecordingMetrics()
	svc := NewService(WithMetrics(metrics))

	if _, err := svc.RewriteHTML(context.Background(), "a cache warms up", []linker.Candidate{
		{Text: "cache", URL: "/terms/cache"},
	}); err != nil {
		t.Fatalf("expected rewrite to succeed, got %v", err)
	}

	if metrics.durations["html"] != 1 {
		t.Fatalf("expected one duration observation, got %+v", metrics.durations)
	}
	if metrics.matches["html"] != 1 {
		t.Fatalf("expected one recorded match, got %+v", metrics.matches)
	}

	if _, err := svc.Rewrite(context.Background(), "text", linker.Dialect("asciidoc"), nil); err == nil {
		t.Fatal("expected unknown dialect to fail")
	}
	if metrics.rejects["asciidoc"] != 1 {
		t.Fatalf("expected one rejected rewrite, got %+v", metrics.rejects)
	}
}
