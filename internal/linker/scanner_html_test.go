package linker

import (
	"strings"
	"testing"

	"github.com/goliatone/go-glossary/linker"
)

func classifyAt(t *testing.T, sc scanner, doc, marker string) linker.Context {
	t.Helper()

	offset := strings.Index(doc, marker)
	if offset < 0 {
		t.Fatalf("marker %q not present in document", marker)
	}
	return sc.classify(offset)
}

func TestHTMLScannerClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		doc    string
		marker string
		want   linker.Context
	}{
		{
			name:   "plain_text_is_free",
			doc:    "recursion is everywhere",
			marker: "recursion",
			want:   linker.ContextFree,
		},
		{
			name:   "tag_name",
			doc:    `<div class="note">body</div>`,
			marker: "div",
			want:   linker.ContextInsideTag,
		},
		{
			name:   "quoted_attribute_value",
			doc:    `<div class="note">body</div>`,
			marker: "note",
			want:   linker.ContextInsideAttribute,
		},
		{
			name:   "single_quoted_attribute_value",
			doc:    `<img alt='tiny cat' src="cat.png">`,
			marker: "tiny cat",
			want:   linker.ContextInsideAttribute,
		},
		{
			name:   "element_body_is_free",
			doc:    `<div class="note">body</div>`,
			marker: "body",
			want:   linker.ContextFree,
		},
		{
			name:   "anchor_body",
			doc:    `<a href="/terms/go">go home</a> later`,
			marker: "go home",
			want:   linker.ContextInsideAnchorBody,
		},
		{
			name:   "text_after_anchor_is_free",
			doc:    `<a href="/terms/go">go home</a> later`,
			marker: "later",
			want:   linker.ContextFree,
		},
		{
			name:   "uppercase_anchor_body",
			doc:    `<A HREF="/terms/go">Shout</A> done`,
			marker: "Shout",
			want:   linker.ContextInsideAnchorBody,
		},
		{
			name:   "nested_element_inside_anchor",
			doc:    `<a href="/x"><em>deep</em></a>`,
			marker: "deep",
			want:   linker.ContextInsideAnchorBody,
		},
		{
			name:   "nested_tag_markup_wins_over_anchor_body",
			doc:    `<a href="/x"><em>deep</em></a>`,
			marker: "em>",
			want:   linker.ContextInsideTag,
		},
		{
			name:   "nested_anchors_extend_to_outer_close",
			doc:    `<a href="/x">one <a href="/y">two</a> three</a> four`,
			marker: "three",
			want:   linker.ContextInsideAnchorBody,
		},
		{
			name:   "after_nested_anchors_is_free",
			doc:    `<a href="/x">one <a href="/y">two</a> three</a> four`,
			marker: "four",
			want:   linker.ContextFree,
		},
		{
			name:   "comment_is_markup",
			doc:    `before <!-- hidden words --> after`,
			marker: "hidden",
			want:   linker.ContextInsideTag,
		},
		{
			name:   "text_after_comment_is_free",
			doc:    `before <!-- hidden words --> after`,
			marker: "after",
			want:   linker.ContextFree,
		},
		{
			name:   "self_closing_tag_does_not_open_anchor",
			doc:    `x <a/> caption here`,
			marker: "caption",
			want:   linker.ContextFree,
		},
		{
			name:   "unterminated_tag_swallows_tail",
			doc:    `text <div class="x`,
			marker: "class",
			want:   linker.ContextInsideTag,
		},
		{
			name:   "unterminated_attribute_swallows_tail",
			doc:    `text <div class="x and more`,
			marker: "more",
			want:   linker.ContextInsideAttribute,
		},
		{
			name:   "unterminated_anchor_swallows_tail",
			doc:    `<a href="/x">trailing text`,
			marker: "trailing",
			want:   linker.ContextInsideAnchorBody,
		},
		{
			name:   "unterminated_comment_swallows_tail",
			doc:    `fine <!-- never closed`,
			marker: "never",
			want:   linker.ContextInsideTag,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sc := newHTMLScanner(tc.doc)
			if got := classifyAt(t, sc, tc.doc, tc.marker); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestHTMLScannerTextBeforeUnterminatedTagStaysFree(t *testing.T) {
	t.Parallel()

	doc := `text <div class="x`
	sc := newHTMLScanner(doc)
	if got := sc.classify(0); got != linker.ContextFree {
		t.Fatalf("expected leading text to stay free, got %s", got)
	}
}
