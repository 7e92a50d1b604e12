package linker

import (
	"sort"
	"strings"

	"github.com/goliatone/go-glossary/linker"
)

// findMatches walks candidates in planner order and accepts every eligible
// occurrence of each. Every probe runs against the ORIGINAL document: a span
// is accepted only when it does not overlap a previously accepted span and
// both its first and last byte classify as free prose. Rejected occurrences
// do not stop the scan; the search continues until the document is exhausted.
//
// Because already-linked text classifies as anchor body or link construct,
// feeding a rewritten document back in yields no new matches.
func findMatches(doc string, sc scanner, candidates []linker.Candidate) []linker.Match {
	var matches []linker.Match

	for _, candidate := range candidates {
		from := 0
		for {
			start, end := foldIndex(doc, candidate.Text, from)
			if start < 0 {
				break
			}
			if overlapsAny(matches, start, end) || !sc.classify(start).Linkable() || !sc.classify(end-1).Linkable() {
				from = start + runeLen(doc, start)
				continue
			}
			matches = append(matches, linker.Match{
				Start:     start,
				End:       end,
				Text:      doc[start:end],
				Candidate: candidate.Text,
				URL:       candidate.URL,
			})
			from = end
		}
	}

	sortMatches(matches)
	return matches
}

// overlapsAny reports whether [start, end) intersects any accepted span.
func overlapsAny(matches []linker.Match, start, end int) bool {
	for _, m := range matches {
		if start < m.End && end > m.Start {
			return true
		}
	}
	return false
}

// splice rebuilds the document with each accepted span replaced by its
// rendered markup. Matches must be sorted ascending and non-overlapping, so a
// single left-to-right pass preserves every byte outside the spans.
func splice(doc string, matches []linker.Match, render func(linker.Match) string) string {
	if len(matches) == 0 {
		return doc
	}

	var sb strings.Builder
	sb.Grow(len(doc) + len(matches)*64)
	prev := 0
	for _, m := range matches {
		sb.WriteString(doc[prev:m.Start])
		sb.WriteString(render(m))
		prev = m.End
	}
	sb.WriteString(doc[prev:])
	return sb.String()
}

func sortMatches(matches []linker.Match) {
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})
}
