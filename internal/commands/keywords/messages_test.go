package keywordscmd

import "testing"

func TestImportDirectoryCommandType(t *testing.T) {
	if got := (ImportDirectoryCommand{}).Type(); got != "glossary.keywords.import_directory" {
		t.Fatalf("unexpected message type %q", got)
	}
}

func TestImportDirectoryCommandValidate(t *testing.T) {
	cmd := ImportDirectoryCommand{}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected validation error when directory is missing")
	}

	cmd.Directory = "   "
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected validation error for blank directory")
	}

	cmd.Directory = "glossary"
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestRebuildSearchIndexCommand(t *testing.T) {
	cmd := RebuildSearchIndexCommand{}
	if got := cmd.Type(); got != "glossary.keywords.rebuild_search_index" {
		t.Fatalf("unexpected message type %q", got)
	}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
