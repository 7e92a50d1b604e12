package keywordscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	importDirectoryMessageType    = "glossary.keywords.import_directory"
	rebuildSearchIndexMessageType = "glossary.keywords.rebuild_search_index"
)

// ImportDirectoryCommand triggers a filesystem walk for keyword Markdown
// documents under the provided Directory. The command mirrors
// markdown.Service ImportDirectory semantics; its flags map directly onto
// interfaces.ImportOptions.
type ImportDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load keyword documents from.
	Directory string `json:"directory"`
	// DefaultCategory backfills the category slug for documents whose front matter omits one.
	DefaultCategory string `json:"default_category,omitempty"`
	// UpdateExisting refreshes keywords whose documents changed instead of skipping them.
	UpdateExisting bool `json:"update_existing,omitempty"`
	// Purge deletes keywords the run did not touch, treating the directory
	// as the catalog's source of truth. Runs that report document errors
	// never purge.
	Purge bool `json:"purge,omitempty"`
	// DryRun collects the would-be changes without persisting anything.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("glossary.keywords.import_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// RebuildSearchIndexCommand recomputes the flattened search index from the
// visible catalog and hands the entries to the configured sink.
type RebuildSearchIndexCommand struct{}

// Type implements command.Message.
func (RebuildSearchIndexCommand) Type() string { return rebuildSearchIndexMessageType }

// Validate implements command.Message; the command carries no inputs.
func (RebuildSearchIndexCommand) Validate() error { return nil }
