package linker

import (
	"github.com/goliatone/go-glossary/linker"
)

// scanner classifies byte offsets of the document it was built from. A
// scanner is constructed once per rewrite with a single forward pass; every
// classify call afterwards is a lookup, keeping rewrites linear in document
// size regardless of how many candidates probe it.
type scanner interface {
	classify(offset int) linker.Context
}

func newScanner(dialect linker.Dialect, doc string) scanner {
	if dialect == linker.DialectMarkdown {
		return newMarkdownScanner(doc)
	}
	return newHTMLScanner(doc)
}

// region marks a half-open [start, end) byte range carrying one context.
// Regions within a list never overlap and are sorted by start.
type region struct {
	start int
	end   int
	ctx   linker.Context
}

// lookupRegion binary-searches a sorted region list for the offset, returning
// ContextFree when no region covers it.
func lookupRegion(regions []region, offset int) linker.Context {
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
		return regions[lo].ctx
	}
	return linker.ContextFree
}
