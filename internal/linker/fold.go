package linker

import (
	"unicode"
	"unicode/utf8"
)

// foldIndex returns the byte span of the first occurrence of needle in doc at
// or after the from offset, comparing runes under Unicode simple case
// folding. The span is expressed in doc's own coordinates so the caller can
// splice without an offset map; folding a copy of the document would shift
// offsets for runes whose fold changes byte width.
//
// Returns (-1, -1) when no occurrence remains.
func foldIndex(doc, needle string, from int) (int, int) {
	if needle == "" || from < 0 || from >= len(doc) {
		return -1, -1
	}
	for i := from; i < len(doc); {
		if length, ok := foldPrefixLen(doc[i:], needle); ok {
			return i, i + length
		}
		i += runeLen(doc, i)
	}
	return -1, -1
}

// foldPrefixLen reports whether s begins with a prefix that case-folds equal
// to needle, returning the byte length of that prefix.
func foldPrefixLen(s, needle string) (int, bool) {
	consumed := 0
	for len(needle) > 0 {
		if consumed >= len(s) {
			return 0, false
		}
		sr, sSize := utf8.DecodeRuneInString(s[consumed:])
		nr, nSize := utf8.DecodeRuneInString(needle)
		if !foldEqual(sr, nr) {
			return 0, false
		}
		consumed += sSize
		needle = needle[nSize:]
	}
	return consumed, true
}

// foldEqual compares two runes the way strings.EqualFold does.
func foldEqual(sr, tr rune) bool {
	if sr == tr {
		return true
	}
	if tr < sr {
		sr, tr = tr, sr
	}
	if tr < utf8.RuneSelf {
		return 'A' <= sr && sr <= 'Z' && tr == sr+'a'-'A'
	}
	r := unicode.SimpleFold(sr)
	for r != sr && r < tr {
		r = unicode.SimpleFold(r)
	}
	return r == tr
}

// runeLen returns the byte width of the rune starting at offset, treating
// invalid encodings as a single byte so scans always advance.
func runeLen(s string, offset int) int {
	_, size := utf8.DecodeRuneInString(s[offset:])
	if size <= 0 {
		return 1
	}
	return size
}
