package markdown

import (
	"bytes"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-glossary/pkg/interfaces"
)

func TestParseFrontMatter(t *testing.T) {
	fm, body, err := ParseFrontMatter(readFixture(t, "testdata/basic.md"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	scalars := []struct {
		name string
		got  any
		want any
	}{
		{"title", fm.Title, "Neural Network"},
		{"slug", fm.Slug, "neural-network"},
		{"category", fm.Category, "ai"},
		{"status", fm.Status, "published"},
		{"position", fm.Position, 2},
	}
	for _, f := range scalars {
		if f.got != f.want {
			t.Errorf("%s = %v, want %v", f.name, f.got, f.want)
		}
	}

	if want := []string{"NN", "Neural Net"}; !slices.Equal(fm.Aliases, want) {
		t.Fatalf("aliases = %v, want %v", fm.Aliases, want)
	}
	if fm.Custom["source"] != "handbook" {
		t.Fatalf("custom keys = %#v, want source=handbook", fm.Custom)
	}
	if fm.Raw["category"] != "ai" || fm.Raw["source"] != "handbook" {
		t.Fatalf("raw projection incomplete: %#v", fm.Raw)
	}
	if !bytes.Contains(body, []byte("# Neural Network")) {
		t.Fatalf("body lost its markdown: %q", body)
	}
}

func TestBuildDocument(t *testing.T) {
	modified := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	doc, err := BuildDocument("testdata/basic.md", readFixture(t, "testdata/basic.md"), modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	if doc.FilePath != "testdata/basic.md" {
		t.Fatalf("file path = %q", doc.FilePath)
	}
	if !doc.LastModified.Equal(modified) {
		t.Fatalf("last modified = %v, want %v", doc.LastModified, modified)
	}
	if doc.FrontMatter.Title != "Neural Network" {
		t.Fatalf("front matter not populated: %#v", doc.FrontMatter)
	}
	if len(doc.Body) == 0 {
		t.Fatalf("body is empty")
	}
	if doc.BodyHTML != nil {
		t.Fatalf("body html should stay unset until rendered, got %q", doc.BodyHTML)
	}
}

func TestGoldmarkParserDefaults(t *testing.T) {
	p := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := p.Parse([]byte(strings.Join([]string{
		"## Neural Network",
		"",
		"A model that ~~memorises~~ generalises. Docs: https://example.com/nn",
		"",
		"Perceptron",
		": The simplest trainable unit, see <abbr>NN</abbr>.",
	}, "\n")))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(out)
	for _, fragment := range []string{
		`<h2 id="neural-network">`,
		"<del>memorises</del>",
		`<a href="https://example.com/nn"`,
		"<dt>Perceptron</dt>",
		"<abbr>NN</abbr>",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("output missing %q:\n%s", fragment, got)
		}
	}
}

func TestGoldmarkParserHardWraps(t *testing.T) {
	p := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := p.ParseWithOptions([]byte("alpha layer\nbeta layer"), interfaces.ParseOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(out), "alpha layer<br") {
		t.Fatalf("soft break survived: %q", out)
	}
}

func TestGoldmarkParserSuppressesRawHTML(t *testing.T) {
	p := NewGoldmarkParser(interfaces.ParseOptions{})

	for _, opts := range []interfaces.ParseOptions{
		{SafeMode: true},
		{Sanitize: true},
	} {
		out, err := p.ParseWithOptions([]byte("before\n\n<script>alert(1)</script>\n\nafter"), opts)
		if err != nil {
			t.Fatalf("ParseWithOptions(%+v): %v", opts, err)
		}
		if strings.Contains(string(out), "<script>") {
			t.Fatalf("raw html leaked with %+v: %q", opts, out)
		}
	}
}

func TestCollectExtensions(t *testing.T) {
	if got := len(collectExtensions(nil)); got != 3 {
		t.Fatalf("default extender count = %d, want 3", got)
	}

	exts := collectExtensions([]string{"Table", "tables", " footnote ", "definition", "unknown", ""})
	if len(exts) != 3 {
		t.Fatalf("extender count = %d, want 3 (aliases fold, unknown names drop)", len(exts))
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("fixture %s: %v", path, err)
	}
	return data
}
