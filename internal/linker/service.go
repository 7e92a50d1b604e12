package linker

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-glossary/internal/logging"
	"github.com/goliatone/go-glossary/linker"
	"github.com/goliatone/go-glossary/pkg/interfaces"
)

// Service implements linker.Service: a synchronous rewrite pipeline that
// plans candidates, scans the document once, selects non-overlapping spans in
// free prose, and splices dialect-specific anchors over them.
type Service struct {
	cssClass      string
	titleFormat   string
	maxCandidates int
	builder       *markupBuilder
	logger        interfaces.Logger
	metrics       interfaces.LinkerMetrics
}

var _ linker.Service = (*Service)(nil)

// ServiceOption customises service behaviour.
type ServiceOption func(*Service)

// WithCSSClass overrides the class attribute emitted on HTML anchors.
func WithCSSClass(class string) ServiceOption {
	return func(s *Service) {
		if class != "" {
			s.cssClass = class
		}
	}
}

// WithTitleFormat overrides how anchor titles are rendered from the
// canonical display text. The format accepts at most one %s verb.
func WithTitleFormat(format string) ServiceOption {
	return func(s *Service) {
		if format != "" {
			s.titleFormat = format
		}
	}
}

// WithMaxCandidates caps how many planned candidates a rewrite considers.
func WithMaxCandidates(max int) ServiceOption {
	return func(s *Service) {
		if max > 0 {
			s.maxCandidates = max
		}
	}
}

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics wires the metrics recorder used for telemetry.
func WithMetrics(metrics interfaces.LinkerMetrics) ServiceOption {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// NewService constructs the rewrite engine with defaults suitable for
// embedding: keyword-link anchors, plain titles, no candidate cap.
func NewService(opts ...ServiceOption) *Service {
	service := &Service{
		cssClass:    defaultCSSClass,
		titleFormat: "%s",
		logger:      logging.NoOp(),
		metrics:     NoOpMetrics(),
	}
	for _, opt := range opts {
		opt(service)
	}
	service.builder = newMarkupBuilder(service.cssClass, service.titleFormat)
	return service
}

// Rewrite transforms the document so every eligible occurrence of every
// candidate becomes a link. The input document is never consulted in
// rewritten form: matching, classification, and overlap checks all run
// against the original bytes, and replacements land in one final splice.
func (s *Service) Rewrite(ctx context.Context, document string, dialect linker.Dialect, candidates []linker.Candidate) (*linker.Result, error) {
	if !dialect.Valid() {
		s.metrics.IncrementRewriteError(string(dialect))
		return nil, fmt.Errorf("%w: %q", linker.ErrUnknownDialect, string(dialect))
	}

	logger := logging.WithFields(s.baseLogger(ctx), map[string]any{
		"operation": "linker.rewrite",
		"dialect":   string(dialect),
	})

	planned := Plan(candidates, s.maxCandidates)
	result := &linker.Result{Document: document, Candidates: len(planned)}
	if len(planned) == 0 || !scanWorthwhile(document, planned) {
		return result, nil
	}

	start := time.Now()
	sc := newScanner(dialect, document)
	matches := findMatches(document, sc, planned)
	if len(matches) > 0 {
		result.Document = splice(document, matches, func(m linker.Match) string {
			return s.builder.render(dialect, m)
		})
		result.Matches = matches
	}
	elapsed := time.Since(start)

	s.metrics.ObserveRewriteDuration(string(dialect), elapsed)
	s.metrics.AddMatches(string(dialect), len(matches))

	logging.WithFields(logger, map[string]any{
		"candidates":  len(planned),
		"matches":     len(matches),
		"duration_ms": elapsed.Milliseconds(),
	}).Debug("linker.service.rewrite_completed")

	return result, nil
}

// RewriteHTML links candidates inside a rendered HTML document.
func (s *Service) RewriteHTML(ctx context.Context, document string, candidates []linker.Candidate) (*linker.Result, error) {
	return s.Rewrite(ctx, document, linker.DialectHTML, candidates)
}

// RewriteMarkdown links candidates inside Markdown source.
func (s *Service) RewriteMarkdown(ctx context.Context, document string, candidates []linker.Candidate) (*linker.Result, error) {
	return s.Rewrite(ctx, document, linker.DialectMarkdown, candidates)
}

// scanWorthwhile rules out documents no candidate can occur in: whitespace
// only, or fewer runes than every planned text. Simple case folding maps rune
// to rune, so a match always spans exactly as many document runes as its
// candidate has.
func scanWorthwhile(document string, planned []linker.Candidate) bool {
	if strings.TrimSpace(document) == "" {
		return false
	}
	docRunes := utf8.RuneCountInString(document)
	for _, candidate := range planned {
		if utf8.RuneCountInString(candidate.Text) <= docRunes {
			return true
		}
	}
	return false
}

func (s *Service) baseLogger(ctx context.Context) interfaces.Logger {
	logger := s.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}
