package linker

import (
	"sort"
	"strings"

	"github.com/goliatone/go-glossary/linker"
)

// Plan normalizes a catalog snapshot into the candidate order the rewriter
// consumes. Display texts are trimmed, entries that trim to nothing are
// dropped, and case-insensitive duplicates collapse onto their first
// occurrence so canonical titles shadow aliases that spell the same text.
//
// The surviving candidates are ordered longest display text first; equal
// lengths keep their snapshot order. Longer texts therefore claim their spans
// before any of their substrings are considered. A positive max caps how many
// candidates a single rewrite will consider.
func Plan(candidates []linker.Candidate, max int) []linker.Candidate {
	planned := make([]linker.Candidate, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))

	for _, candidate := range candidates {
		text := strings.TrimSpace(candidate.Text)
		if text == "" {
			continue
		}
		key := strings.ToLower(text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		planned = append(planned, linker.Candidate{Text: text, URL: candidate.URL})
	}

	sort.SliceStable(planned, func(i, j int) bool {
		return len(planned[i].Text) > len(planned[j].Text)
	})

	if max > 0 && len(planned) > max {
		planned = planned[:max]
	}
	return planned
}
