package linker

import "testing"

func TestFoldIndex(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		doc       string
		needle    string
		from      int
		wantStart int
		wantEnd   int
	}{
		{
			name:      "exact_match",
			doc:       "the quick brown fox",
			needle:    "brown",
			wantStart: 10,
			wantEnd:   15,
		},
		{
			name:      "case_insensitive_match",
			doc:       "Learn Python today",
			needle:    "python",
			wantStart: 6,
			wantEnd:   12,
		},
		{
			name:      "resumes_after_offset",
			doc:       "go here, go there",
			needle:    "go",
			from:      3,
			wantStart: 9,
			wantEnd:   11,
		},
		{
			name:      "greek_sigma_folds",
			doc:       "περί ΚΌΣΜΟΣ λόγος",
			needle:    "κόσμος",
			wantStart: 9,
			wantEnd:   21,
		},
		{
			name:      "no_match",
			doc:       "nothing to see",
			needle:    "absent",
			wantStart: -1,
			wantEnd:   -1,
		},
		{
			name:      "offset_past_document",
			doc:       "short",
			needle:    "short",
			from:      10,
			wantStart: -1,
			wantEnd:   -1,
		},
		{
			name:      "empty_needle",
			doc:       "anything",
			needle:    "",
			wantStart: -1,
			wantEnd:   -1,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			start, end := foldIndex(tc.doc, tc.needle, tc.from)
			if start != tc.wantStart || end != tc.wantEnd {
				t.Fatalf("expected span (%d, %d), got (%d, %d)", tc.wantStart, tc.wantEnd, start, end)
			}
		})
	}
}

func TestFoldIndexSpansStayInDocumentCoordinates(t *testing.T) {
	t.Parallel()

	// The Kelvin sign folds to "k" but occupies three bytes, so the matched
	// span is wider than the needle. The span must still slice the original
	// document cleanly.
	doc := "degrees Kelvin scale"
	start, end := foldIndex(doc, "kelvin", 0)

	if start != 8 {
		t.Fatalf("expected match at byte 8, got %d", start)
	}
	if got := doc[start:end]; got != "Kelvin" {
		t.Fatalf("expected span to cover %q, got %q", "Kelvin", got)
	}
	if end-start == len("kelvin") {
		t.Fatalf("expected folded span to differ from needle width, got identical %d", end-start)
	}
}

func TestFoldIndexDoesNotMatchMidRune(t *testing.T) {
	t.Parallel()

	// "ﬀ" is a single ligature rune; its bytes must not be mistaken for the
	// ASCII pair.
	doc := "eﬀect"
	start, end := foldIndex(doc, "ff", 0)
	if start != -1 || end != -1 {
		t.Fatalf("expected no match inside a ligature rune, got (%d, %d)", start, end)
	}
}
