package linker

import (
	"strings"

	"github.com/goliatone/go-glossary/linker"
)

// htmlScanner tracks HTML structure without building a DOM: tag spans with
// their quoted attribute values, plus the visible body of anchor elements.
// Malformed markup fails closed; an unterminated tag or anchor claims the
// rest of the document. Decoding entities or validating the tree is out of
// scope, the scanner only needs to know where links must never be injected.
type htmlScanner struct {
	// markup holds tag and attribute regions; anchors holds anchor bodies.
	// The lists overlap (tags appear inside anchor bodies), so markup is
	// consulted first.
	markup  []region
	anchors []region
}

func newHTMLScanner(doc string) *htmlScanner {
	s := &htmlScanner{}

	anchorDepth := 0
	anchorBody := -1

	i := 0
	for i < len(doc) {
		if doc[i] != '<' {
			i++
			continue
		}

		if strings.HasPrefix(doc[i:], "<!--") {
			end := strings.Index(doc[i+4:], "-->")
			if end < 0 {
				s.markup = append(s.markup, region{i, len(doc), linker.ContextInsideTag})
				break
			}
			close := i + 4 + end + 3
			s.markup = append(s.markup, region{i, close, linker.ContextInsideTag})
			i = close
			continue
		}

		tagStart := i
		j := i + 1
		closing := false
		if j < len(doc) && doc[j] == '/' {
			closing = true
			j++
		}
		nameStart := j
		for j < len(doc) && isTagNameByte(doc[j]) {
			j++
		}
		name := strings.ToLower(doc[nameStart:j])

		// Walk to the closing '>' while carving quoted attribute values
		// into their own regions. An unterminated quote swallows the rest
		// of the tag; an unterminated tag swallows the document.
		segStart := tagStart
		k := j
		terminated := false
		selfClosing := false
		for k < len(doc) {
			switch doc[k] {
			case '"', '\'':
				quote := doc[k]
				attrStart := k
				k++
				for k < len(doc) && doc[k] != quote {
					k++
				}
				if k < len(doc) {
					k++
				}
				if attrStart > segStart {
					s.markup = append(s.markup, region{segStart, attrStart, linker.ContextInsideTag})
				}
				s.markup = append(s.markup, region{attrStart, k, linker.ContextInsideAttribute})
				segStart = k
			case '>':
				selfClosing = k > tagStart && doc[k-1] == '/'
				k++
				terminated = true
			default:
				k++
			}
			if terminated {
				break
			}
		}
		if k > segStart {
			s.markup = append(s.markup, region{segStart, k, linker.ContextInsideTag})
		}

		if name == "a" {
			switch {
			case closing:
				if anchorDepth > 0 {
					anchorDepth--
					if anchorDepth == 0 && anchorBody >= 0 && tagStart > anchorBody {
						s.anchors = append(s.anchors, region{anchorBody, tagStart, linker.ContextInsideAnchorBody})
						anchorBody = -1
					}
				}
			case terminated && !selfClosing:
				if anchorDepth == 0 {
					anchorBody = k
				}
				anchorDepth++
			}
		}

		i = k
	}

	if anchorDepth > 0 && anchorBody >= 0 && anchorBody < len(doc) {
		s.anchors = append(s.anchors, region{anchorBody, len(doc), linker.ContextInsideAnchorBody})
	}

	return s
}

func (s *htmlScanner) classify(offset int) linker.Context {
	if ctx := lookupRegion(s.markup, offset); ctx != linker.ContextFree {
		return ctx
	}
	return lookupRegion(s.anchors, offset)
}

func isTagNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == ':':
		return true
	default:
		return false
	}
}
