package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	keywordscmd "github.com/goliatone/go-glossary/internal/commands/keywords"
	"github.com/google/uuid"
)

func TestBuildModuleEnablesMarkdownIngestion(t *testing.T) {
	dir := t.TempDir()
	doc := "---\ntitle: Firewall\ncategory: networking\naliases:\n  - packet filter\n---\nA firewall filters traffic between network segments.\n"
	if err := os.WriteFile(filepath.Join(dir, "firewall.md"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	res, err := BuildModule(Options{
		ContentDir:     dir,
		Recursive:      true,
		EnableCommands: true,
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	t.Cleanup(func() {
		_ = res.Module.Close(context.Background())
	})

	if res.Module.Markdown() == nil {
		t.Fatal("expected markdown service to be configured")
	}
	if res.Collector == nil {
		t.Fatal("expected command collector when commands are enabled")
	}
	handlers := res.Collector.Handlers()
	if len(handlers) != 2 {
		t.Fatalf("expected import and rebuild handlers collected, got %d", len(handlers))
	}

	var importHandler *keywordscmd.ImportDirectoryHandler
	for _, handler := range handlers {
		if h, ok := handler.(*keywordscmd.ImportDirectoryHandler); ok {
			importHandler = h
		}
	}
	if importHandler == nil {
		t.Fatal("expected import handler in collector")
	}

	ctx := context.Background()
	if err := importHandler.Execute(ctx, keywordscmd.ImportDirectoryCommand{Directory: dir}); err != nil {
		t.Fatalf("import execute: %v", err)
	}

	keyword, err := res.Module.Keywords().GetKeywordBySlug(ctx, "firewall")
	if err != nil {
		t.Fatalf("get imported keyword: %v", err)
	}
	if keyword.Title != "Firewall" {
		t.Fatalf("expected imported title Firewall, got %q", keyword.Title)
	}

	category, err := res.Module.Keywords().GetCategoryBySlug(ctx, "networking")
	if err != nil {
		t.Fatalf("expected category created on demand: %v", err)
	}
	if category == nil {
		t.Fatal("expected networking category")
	}
}

func TestBuildModuleWithoutCommands(t *testing.T) {
	dir := t.TempDir()

	res, err := BuildModule(Options{ContentDir: dir})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	t.Cleanup(func() {
		_ = res.Module.Close(context.Background())
	})

	if res.Collector != nil {
		t.Fatal("expected no collector when commands are disabled")
	}
	if res.Module.Keywords() == nil {
		t.Fatal("expected keyword service to be configured")
	}
}

func TestSplitAliases(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "   ", want: nil},
		{name: "single", input: "packet filter", want: []string{"packet filter"}},
		{name: "trimmed", input: " vpn , tunnel ,", want: []string{"vpn", "tunnel"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SplitAliases(tc.input); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitAliases(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseUUID(t *testing.T) {
	id := uuid.New()

	parsed, err := ParseUUID(id.String())
	if err != nil {
		t.Fatalf("parse uuid: %v", err)
	}
	if parsed != id {
		t.Fatalf("expected %s, got %s", id, parsed)
	}

	empty, err := ParseUUID("  ")
	if err != nil {
		t.Fatalf("parse empty uuid: %v", err)
	}
	if empty != uuid.Nil {
		t.Fatalf("expected uuid.Nil for empty input, got %s", empty)
	}

	if _, err := ParseUUID("not-a-uuid"); err == nil {
		t.Fatal("expected error for malformed uuid")
	}
}

func TestParseUUIDPointer(t *testing.T) {
	ptr, err := ParseUUIDPointer("")
	if err != nil {
		t.Fatalf("parse empty pointer: %v", err)
	}
	if ptr != nil {
		t.Fatal("expected nil pointer for empty input")
	}

	id := uuid.New()
	ptr, err = ParseUUIDPointer(id.String())
	if err != nil {
		t.Fatalf("parse pointer: %v", err)
	}
	if ptr == nil || *ptr != id {
		t.Fatalf("expected pointer to %s, got %v", id, ptr)
	}
}
