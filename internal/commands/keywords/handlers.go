package keywordscmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-glossary/internal/commands"
	"github.com/goliatone/go-glossary/internal/logging"
	"github.com/goliatone/go-glossary/keywords"
	"github.com/goliatone/go-glossary/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	importOperation  = "keywords.import_directory"
	rebuildOperation = "keywords.rebuild_search_index"
)

var (
	// ErrImportFeatureDisabled is returned when the markdown import feature is disabled at runtime.
	ErrImportFeatureDisabled = errors.New("keywords command: import feature disabled")
	// ErrCatalogRequired is returned when a handler runs without a keyword service.
	ErrCatalogRequired = errors.New("keywords command: catalog service is required")
)

var (
	_ command.Commander[ImportDirectoryCommand]    = (*ImportDirectoryHandler)(nil)
	_ command.Commander[RebuildSearchIndexCommand] = (*RebuildSearchIndexHandler)(nil)
)

// ImportDirectoryHandler orchestrates keyword directory imports via the
// shared command handler foundation.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler creates a handler bound to the supplied markdown
// service. The catalog service is only exercised by Purge runs, which walk
// the catalog to drop keywords with no backing document.
func NewImportDirectoryHandler(service interfaces.MarkdownService, catalog keywords.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		if !gates.importEnabled() {
			return ErrImportFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.ImportDirectory(ctx, msg.Directory, interfaces.ImportOptions{
			DefaultCategory: msg.DefaultCategory,
			DryRun:          msg.DryRun,
			UpdateExisting:  msg.UpdateExisting,
		})
		if err != nil {
			return err
		}

		purged := 0
		if msg.Purge && result != nil {
			purged, err = purgeUntouched(ctx, catalog, result, msg.DryRun, baseLogger)
			if err != nil {
				return err
			}
		}

		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count": len(result.CreatedKeywords),
				"updated_count": len(result.UpdatedKeywords),
				"skipped_count": len(result.SkippedKeywords),
				"purged_count":  purged,
				"error_count":   len(result.Errors),
				"dry_run":       msg.DryRun,
			}).Info("keywords.command.import_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](baseLogger),
		commands.WithOperation[ImportDirectoryCommand](importOperation),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.DefaultCategory != "" {
				fields["default_category"] = msg.DefaultCategory
			}
			if msg.UpdateExisting {
				fields["update_existing"] = true
			}
			if msg.Purge {
				fields["purge"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// purgeUntouched deletes catalog keywords the import run did not see.
// Runs reporting document errors never purge: a partially read directory must
// not erase records whose files merely failed to import. Dry runs count the
// candidates without deleting.
func purgeUntouched(ctx context.Context, catalog keywords.Service, result *interfaces.ImportResult, dryRun bool, logger interfaces.Logger) (int, error) {
	if catalog == nil {
		return 0, ErrCatalogRequired
	}
	if len(result.Errors) > 0 {
		logger.Warn("keywords.command.purge_skipped", "error_count", len(result.Errors))
		return 0, nil
	}

	touched := make(map[string]struct{}, len(result.CreatedKeywords)+len(result.UpdatedKeywords)+len(result.SkippedKeywords))
	for _, group := range [][]string{result.CreatedKeywords, result.UpdatedKeywords, result.SkippedKeywords} {
		for _, slug := range group {
			touched[slug] = struct{}{}
		}
	}

	records, err := catalog.ListKeywords(ctx, keywords.ListOptions{})
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, record := range records {
		if _, ok := touched[record.Slug]; ok {
			continue
		}
		if dryRun {
			logger.Info("keywords.command.purge_candidate", "slug", record.Slug)
			purged++
			continue
		}
		if err := catalog.DeleteKeyword(ctx, record.ID); err != nil {
			return purged, fmt.Errorf("purge %s: %w", record.Slug, err)
		}
		logger.Info("keywords.command.purged", "slug", record.Slug)
		purged++
	}
	return purged, nil
}

// IndexSink receives the rebuilt search index so hosts can persist it, write
// it to a cache, or serve it from memory.
type IndexSink func(ctx context.Context, entries []keywords.SearchEntry) error

// RebuildSearchIndexHandler recomputes the search index on demand, typically
// after bulk imports or on a schedule.
type RebuildSearchIndexHandler struct {
	inner *commands.Handler[RebuildSearchIndexCommand]
}

// NewRebuildSearchIndexHandler creates a handler bound to the supplied
// catalog. A nil sink still validates the rebuild and reports the entry count.
func NewRebuildSearchIndexHandler(catalog keywords.Service, sink IndexSink, logger interfaces.Logger, opts ...commands.HandlerOption[RebuildSearchIndexCommand]) *RebuildSearchIndexHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RebuildSearchIndexCommand) error {
		if catalog == nil {
			return ErrCatalogRequired
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		entries, err := catalog.SearchIndex(ctx)
		if err != nil {
			return err
		}
		if sink != nil {
			if err := sink(ctx, entries); err != nil {
				return fmt.Errorf("search index sink: %w", err)
			}
		}

		logging.WithFields(baseLogger, map[string]any{
			"entry_count": len(entries),
		}).Info("keywords.command.rebuild_search_index.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[RebuildSearchIndexCommand]{
		commands.WithLogger[RebuildSearchIndexCommand](baseLogger),
		commands.WithOperation[RebuildSearchIndexCommand](rebuildOperation),
		commands.WithTelemetry(commands.DefaultTelemetry[RebuildSearchIndexCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RebuildSearchIndexHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RebuildSearchIndexCommand].
func (h *RebuildSearchIndexHandler) Execute(ctx context.Context, msg RebuildSearchIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}
