package linker

import (
	"testing"

	"github.com/goliatone/go-glossary/linker"
)

func TestMarkupBuilderHTMLAnchor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		cssClass    string
		titleFormat string
		match       linker.Match
		want        string
	}{
		{
			name:        "basic_anchor",
			cssClass:    "keyword-link",
			titleFormat: "%s",
			match:       linker.Match{Text: "Cache", Candidate: "Cache", URL: "/terms/cache"},
			want:        `<a href="/terms/cache" class="keyword-link" title="Cache">Cache</a>`,
		},
		{
			name:        "escapes_url_and_title",
			cssClass:    "keyword-link",
			titleFormat: "%s",
			match:       linker.Match{Text: "B&B", Candidate: "b&b", URL: `/x?a=1&b="2"`},
			want:        `<a href="/x?a=1&amp;b=&#34;2&#34;" class="keyword-link" title="b&amp;b">B&B</a>`,
		},
		{
			name:        "custom_title_format",
			cssClass:    "glossary-term",
			titleFormat: "Glossary: %s",
			match:       linker.Match{Text: "heap", Candidate: "Heap", URL: "/terms/heap"},
			want:        `<a href="/terms/heap" class="glossary-term" title="Glossary: Heap">heap</a>`,
		},
		{
			name:        "static_title_without_verb",
			cssClass:    "keyword-link",
			titleFormat: "Read the definition",
			match:       linker.Match{Text: "heap", Candidate: "Heap", URL: "/terms/heap"},
			want:        `<a href="/terms/heap" class="keyword-link" title="Read the definition">heap</a>`,
		},
		{
			name:        "escaped_percent_in_static_title",
			cssClass:    "keyword-link",
			titleFormat: "100%% sure",
			match:       linker.Match{Text: "heap", Candidate: "Heap", URL: "/terms/heap"},
			want:        `<a href="/terms/heap" class="keyword-link" title="100% sure">heap</a>`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b := newMarkupBuilder(tc.cssClass, tc.titleFormat)
			if got := b.render(linker.DialectHTML, tc.match); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestMarkupBuilderMarkdownAnchor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		titleFormat string
		match       linker.Match
		want        string
	}{
		{
			name:        "basic_anchor",
			titleFormat: "%s",
			match:       linker.Match{Text: "cache", Candidate: "Cache", URL: "/terms/cache"},
			want:        `[cache](/terms/cache "Cache")`,
		},
		{
			name:        "quotes_in_title_escape",
			titleFormat: "%s",
			match:       linker.Match{Text: "x", Candidate: `say "hi"`, URL: "/u"},
			want:        `[x](/u "say \"hi\"")`,
		},
		{
			name:        "brackets_in_label_escape",
			titleFormat: "%s",
			match:       linker.Match{Text: "arr[0]", Candidate: "arr[0]", URL: "/terms/array"},
			want:        `[arr\[0\]](/terms/array "arr[0]")`,
		},
		{
			name:        "url_gets_percent_encoded",
			titleFormat: "%s",
			match:       linker.Match{Text: "big idea", Candidate: "big idea", URL: "/terms/big idea (draft)"},
			want:        `[big idea](/terms/big%20idea%20%28draft%29 "big idea")`,
		},
		{
			name:        "newline_title_is_omitted",
			titleFormat: "%s",
			match:       linker.Match{Text: "odd", Candidate: "odd\nterm", URL: "/terms/odd"},
			want:        `[odd](/terms/odd)`,
		},
		{
			name:        "empty_title_is_omitted",
			titleFormat: "",
			match:       linker.Match{Text: "plain", Candidate: "", URL: "/terms/plain"},
			want:        `[plain](/terms/plain)`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b := newMarkupBuilder("", tc.titleFormat)
			if got := b.render(linker.DialectMarkdown, tc.match); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNewMarkupBuilderDefaults(t *testing.T) {
	t.Parallel()

	b := newMarkupBuilder("   ", "")
	match := linker.Match{Text: "slug", Candidate: "Slug", URL: "/terms/slug"}
	want := `<a href="/terms/slug" class="keyword-link" title="Slug">slug</a>`
	if got := b.render(linker.DialectHTML, match); got != want {
		t.Fatalf("expected blank options to fall back to defaults, got %q", got)
	}
}
