package linker

import (
	"sort"
	"strings"

	"github.com/goliatone/go-glossary/linker"
)

// markdownScanner tracks the Markdown constructs that must never gain links:
// link labels, link and image destinations, image markers with their alt
// text, and code (inline spans plus fenced blocks) where link syntax renders
// literally. Raw HTML islands are deliberately not parsed; each dialect uses
// only its own scanner.
//
// Malformed input fails closed: a label bracket that never closes, a
// destination whose ')' never arrives, or an unclosed fence claims the rest
// of the document.
type markdownScanner struct {
	// code regions take precedence; constructs found inside them are
	// literal text, not markup.
	code       []region
	constructs []region
}

func newMarkdownScanner(doc string) *markdownScanner {
	s := &markdownScanner{}
	s.scanFences(doc)
	s.scanInlineCode(doc)
	s.scanConstructs(doc)
	return s
}

func (s *markdownScanner) classify(offset int) linker.Context {
	if ctx := lookupRegion(s.code, offset); ctx != linker.ContextFree {
		return ctx
	}
	return lookupRegion(s.constructs, offset)
}

// scanFences records ``` and ~~~ fenced blocks, line-anchored with up to
// three spaces of indentation. The closing fence must use the same marker at
// the same or greater length.
func (s *markdownScanner) scanFences(doc string) {
	lineStart := 0
	openStart := -1
	var openChar byte
	openLen := 0

	for lineStart <= len(doc) {
		lineEnd := strings.IndexByte(doc[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(doc)
		} else {
			lineEnd += lineStart
		}
		line := doc[lineStart:lineEnd]

		if marker, count, rest := fenceMarker(line); marker != 0 {
			if openStart < 0 {
				openStart = lineStart
				openChar = marker
				openLen = count
			} else if marker == openChar && count >= openLen && strings.TrimSpace(rest) == "" {
				s.code = append(s.code, region{openStart, lineEnd, linker.ContextInsideCodeSpan})
				openStart = -1
			}
		}

		lineStart = lineEnd + 1
	}

	if openStart >= 0 {
		s.code = append(s.code, region{openStart, len(doc), linker.ContextInsideCodeSpan})
	}
}

// fenceMarker reports the fence character, run length, and trailing info
// string of a line, or zero when the line is not a fence.
func fenceMarker(line string) (byte, int, string) {
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	if indent > 3 || indent >= len(line) {
		return 0, 0, ""
	}
	marker := line[indent]
	if marker != '`' && marker != '~' {
		return 0, 0, ""
	}
	count := 0
	for indent+count < len(line) && line[indent+count] == marker {
		count++
	}
	if count < 3 {
		return 0, 0, ""
	}
	return marker, count, line[indent+count:]
}

// scanInlineCode records backtick code spans outside fences. A span opened by
// a run of N backticks closes at the next run of exactly N; an unmatched
// opener claims the rest of the document.
func (s *markdownScanner) scanInlineCode(doc string) {
	fences := s.code
	i := 0
	for i < len(doc) {
		if end, inside := regionEnd(fences, i); inside {
			i = end
			continue
		}
		if doc[i] != '`' {
			i++
			continue
		}

		runStart := i
		runLen := backtickRun(doc, i)
		j := i + runLen
		closed := false
		for j < len(doc) {
			if end, inside := regionEnd(fences, j); inside {
				j = end
				continue
			}
			if doc[j] != '`' {
				j++
				continue
			}
			closeLen := backtickRun(doc, j)
			if closeLen == runLen {
				s.code = append(s.code, region{runStart, j + closeLen, linker.ContextInsideCodeSpan})
				i = j + closeLen
				closed = true
				break
			}
			j += closeLen
		}
		if !closed {
			s.code = append(s.code, region{runStart, len(doc), linker.ContextInsideCodeSpan})
			break
		}
	}

	// Inline spans interleave with, and may straddle, the fence regions
	// appended earlier; coalesce so lookups stay a clean binary search.
	s.code = mergeRegions(s.code)
}

func backtickRun(doc string, i int) int {
	n := 0
	for i+n < len(doc) && doc[i+n] == '`' {
		n++
	}
	return n
}

// scanConstructs records link and image constructs plus <...> autolinks.
// Bracket and paren depth are tracked so nested constructs resolve to the
// outermost span, and backslash escapes are honoured.
func (s *markdownScanner) scanConstructs(doc string) {
	i := 0
	for i < len(doc) {
		if end, inside := regionEnd(s.code, i); inside {
			i = end
			continue
		}
		switch doc[i] {
		case '\\':
			i += 2
		case '<':
			if end, ok := autolinkEnd(doc, i); ok {
				s.constructs = append(s.constructs, region{i, end, linker.ContextInsideLinkTarget})
				i = end
			} else {
				i++
			}
		case '!':
			if i+1 < len(doc) && doc[i+1] == '[' {
				i = s.scanLink(doc, i, true)
			} else {
				i++
			}
		case '[':
			i = s.scanLink(doc, i, false)
		default:
			i++
		}
	}
}

// scanLink consumes one [label](destination) construct starting at the '!'
// or '[' and returns the offset scanning should resume from.
func (s *markdownScanner) scanLink(doc string, start int, image bool) int {
	labelCtx := linker.ContextInsideLinkLabel
	bracket := start
	if image {
		labelCtx = linker.ContextInsideImageMarker
		bracket = start + 1
	}

	depth := 1
	j := bracket + 1
	for j < len(doc) {
		if end, inside := regionEnd(s.code, j); inside {
			j = end
			continue
		}
		switch doc[j] {
		case '\\':
			j += 2
			continue
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				goto closed
			}
		}
		j++
	}
	// Unterminated label: the construct swallows the rest of the document.
	s.constructs = append(s.constructs, region{start, len(doc), labelCtx})
	return len(doc)

closed:
	s.constructs = append(s.constructs, region{start, j + 1, labelCtx})

	k := j + 1
	if k >= len(doc) || doc[k] != '(' {
		return k
	}

	depth = 1
	m := k + 1
	for m < len(doc) {
		switch doc[m] {
		case '\\':
			m += 2
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				s.constructs = append(s.constructs, region{k, m + 1, linker.ContextInsideLinkTarget})
				return m + 1
			}
		}
		m++
	}
	// Unterminated destination fails closed as well.
	s.constructs = append(s.constructs, region{k, len(doc), linker.ContextInsideLinkTarget})
	return len(doc)
}

// autolinkEnd recognises <scheme:...> autolinks so URLs keep their literal
// text. Returns the offset one past the closing '>' when the run looks like
// an absolute URI or email autolink.
func autolinkEnd(doc string, start int) (int, bool) {
	j := start + 1
	for j < len(doc) {
		c := doc[j]
		if c == '>' {
			inner := doc[start+1 : j]
			if strings.Contains(inner, "://") || strings.HasPrefix(strings.ToLower(inner), "mailto:") {
				return j + 1, true
			}
			return 0, false
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '<' {
			return 0, false
		}
		j++
	}
	return 0, false
}

func regionEnd(regions []region, offset int) (int, bool) {
	lo, hi := 0, len(regions)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if regions[mid].end <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(regions) && regions[lo].start <= offset && offset < regions[lo].end {
		return regions[lo].end, true
	}
	return 0, false
}

// mergeRegions sorts by start and coalesces overlapping ranges. Only valid
// for lists whose regions share a single context.
func mergeRegions(regions []region) []region {
	if len(regions) < 2 {
		return regions
	}
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].start < regions[j].start
	})
	merged := regions[:1]
	for _, r := range regions[1:] {
		last := &merged[len(merged)-1]
		if r.start <= last.end {
			if r.end > last.end {
				last.end = r.end
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
