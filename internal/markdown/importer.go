package markdown

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/goliatone/go-glossary/internal/domain"
	"github.com/goliatone/go-glossary/internal/identity"
	"github.com/goliatone/go-glossary/internal/logging"
	"github.com/goliatone/go-glossary/keywords"
	"github.com/goliatone/go-glossary/pkg/interfaces"
)

var (
	ErrKeywordServiceRequired = errors.New("markdown importer: keyword service is required")
	ErrTitleMissing           = errors.New("markdown importer: frontmatter title is required")
	ErrCategoryMissing        = errors.New("markdown importer: category could not be determined")
)

// ImporterConfig encapsulates dependencies required to persist keyword documents.
type ImporterConfig struct {
	Keywords keywords.Service
	Logger   interfaces.Logger
}

// Importer turns parsed keyword documents into catalog records. Record IDs
// derive from slugs so repeated runs update the same rows instead of
// duplicating them.
type Importer struct {
	keywords keywords.Service
	logger   interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		keywords: cfg.Keywords,
		logger:   logger,
	}
}

// ImportDocument imports a single keyword document.
func (i *Importer) ImportDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.keywords == nil {
		return nil, ErrKeywordServiceRequired
	}

	acc := newImportAccumulator()
	if err := i.importDocument(ctx, doc, opts, acc); err != nil {
		acc.addError(err)
	}
	return acc.result(), firstError(acc.errors)
}

// ImportDocuments imports a slice of documents in order. Later documents that
// reuse an earlier document's slug are rejected rather than silently merged.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.keywords == nil {
		return nil, ErrKeywordServiceRequired
	}

	acc := newImportAccumulator()
	seen := map[string]string{}

	for _, doc := range docs {
		slug, err := documentSlug(doc)
		if err != nil {
			acc.addError(err)
			continue
		}
		if prev, ok := seen[slug]; ok {
			acc.addError(fmt.Errorf("markdown importer: duplicate slug %q in %s (already defined by %s)", slug, doc.FilePath, prev))
			continue
		}
		seen[slug] = doc.FilePath

		if err := i.importDocument(ctx, doc, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	return acc.result(), firstError(acc.errors)
}

func (i *Importer) importDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions, acc *importAccumulator) error {
	slug, err := documentSlug(doc)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(doc.FrontMatter.Title)
	if title == "" {
		return fmt.Errorf("%w: %s", ErrTitleMissing, doc.FilePath)
	}

	category, err := i.ensureCategory(ctx, doc, opts)
	if err != nil {
		return err
	}

	existing, err := i.keywords.GetKeywordBySlug(ctx, slug)
	if err != nil && !keywords.IsNotFound(err) {
		return fmt.Errorf("markdown importer: keyword lookup %s: %w", slug, err)
	}

	if existing == nil {
		if opts.DryRun {
			acc.created(slug)
			return nil
		}

		record, createErr := i.keywords.CreateKeyword(ctx, keywords.CreateKeywordRequest{
			ID:          identity.KeywordUUID(slug),
			CategoryID:  category.ID,
			Title:       title,
			Slug:        slug,
			Description: string(doc.Body),
			Status:      importStatus(doc),
			Position:    doc.FrontMatter.Position,
			Metadata:    importMetadata(doc),
		})
		if createErr != nil {
			return fmt.Errorf("markdown importer: create keyword %s: %w", slug, createErr)
		}
		if err := i.addAliases(ctx, record.ID, missingAliases(nil, doc.FrontMatter.Aliases)); err != nil {
			return err
		}

		acc.created(slug)
		logging.WithImportContext(i.logger, doc.FilePath, "created").
			Debug("imported keyword document", "slug", slug)
		return nil
	}

	if !opts.UpdateExisting {
		acc.skip(slug)
		return nil
	}

	description := string(doc.Body)
	status := importStatus(doc)
	position := doc.FrontMatter.Position
	metadata := importMetadata(doc)

	changed := keywordChanged(existing, title, description, status, position, category.ID) ||
		metadataChanged(existing.Metadata, metadata)
	missing := missingAliases(existing.Aliases, doc.FrontMatter.Aliases)

	if !changed && len(missing) == 0 {
		acc.skip(slug)
		return nil
	}

	if opts.DryRun {
		acc.updated(slug)
		return nil
	}

	if changed {
		if _, err := i.keywords.UpdateKeyword(ctx, keywords.UpdateKeywordRequest{
			ID:          existing.ID,
			CategoryID:  &category.ID,
			Title:       &title,
			Description: &description,
			Status:      &status,
			Position:    &position,
			Metadata:    metadata,
		}); err != nil {
			return fmt.Errorf("markdown importer: update keyword %s: %w", slug, err)
		}
	}
	if err := i.addAliases(ctx, existing.ID, missing); err != nil {
		return err
	}

	acc.updated(slug)
	logging.WithImportContext(i.logger, doc.FilePath, "updated").
		Debug("refreshed keyword document", "slug", slug)
	return nil
}

// ensureCategory resolves the category a document belongs to, creating it on
// demand. Dry runs return a placeholder instead of writing.
func (i *Importer) ensureCategory(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions) (*keywords.KeywordCategory, error) {
	source := strings.TrimSpace(doc.FrontMatter.Category)
	if source == "" {
		source = strings.TrimSpace(opts.DefaultCategory)
	}
	if source == "" {
		return nil, fmt.Errorf("%w: %s", ErrCategoryMissing, doc.FilePath)
	}

	slug, err := keywords.NormalizeSlug(source)
	if err != nil {
		return nil, fmt.Errorf("markdown importer: category slug %q: %w", source, err)
	}

	category, err := i.keywords.GetCategoryBySlug(ctx, slug)
	if err == nil {
		return category, nil
	}
	if !keywords.IsNotFound(err) {
		return nil, fmt.Errorf("markdown importer: category lookup %s: %w", slug, err)
	}

	if opts.DryRun {
		return &keywords.KeywordCategory{
			ID:   identity.CategoryUUID(slug),
			Name: displayName(slug),
			Slug: slug,
		}, nil
	}

	created, err := i.keywords.CreateCategory(ctx, keywords.CreateCategoryRequest{
		ID:     identity.CategoryUUID(slug),
		Name:   displayName(slug),
		Slug:   slug,
		Status: string(domain.StatusPublished),
	})
	if err != nil {
		return nil, fmt.Errorf("markdown importer: create category %s: %w", slug, err)
	}

	i.logger.Debug("created keyword category", "slug", slug)
	return created, nil
}

func (i *Importer) addAliases(ctx context.Context, keywordID uuid.UUID, titles []string) error {
	for _, title := range titles {
		slug, err := keywords.NormalizeSlug(title)
		if err != nil {
			return fmt.Errorf("markdown importer: alias slug %q: %w", title, err)
		}
		if _, err := i.keywords.AddAlias(ctx, keywords.AddAliasRequest{
			ID:        identity.AliasUUID(keywordID, slug),
			KeywordID: keywordID,
			Title:     title,
		}); err != nil {
			return fmt.Errorf("markdown importer: add alias %q: %w", title, err)
		}
	}
	return nil
}

func documentSlug(doc *interfaces.Document) (string, error) {
	if doc == nil {
		return "", errors.New("markdown importer: nil document")
	}

	source := strings.TrimSpace(doc.FrontMatter.Slug)
	if source == "" {
		source = strings.TrimSpace(doc.FrontMatter.Title)
	}
	if source == "" {
		return "", fmt.Errorf("%w: %s", ErrTitleMissing, doc.FilePath)
	}

	slug, err := keywords.NormalizeSlug(source)
	if err != nil {
		return "", fmt.Errorf("markdown importer: derive slug for %s: %w", doc.FilePath, err)
	}
	if slug == "" {
		return "", fmt.Errorf("markdown importer: derive slug for %s: %w", doc.FilePath, keywords.ErrSlugInvalid)
	}
	return slug, nil
}

// importStatus defaults to published so imported entries join the reader
// surfaces without a second publish step.
func importStatus(doc *interfaces.Document) string {
	status := strings.TrimSpace(doc.FrontMatter.Status)
	if status == "" {
		return string(domain.StatusPublished)
	}
	return status
}

func importMetadata(doc *interfaces.Document) map[string]any {
	if len(doc.FrontMatter.Custom) == 0 {
		return nil
	}
	out := make(map[string]any, len(doc.FrontMatter.Custom))
	for key, value := range doc.FrontMatter.Custom {
		out[key] = value
	}
	return out
}

func keywordChanged(existing *keywords.Keyword, title, description, status string, position int, categoryID uuid.UUID) bool {
	if strings.TrimSpace(existing.Title) != title {
		return true
	}
	if existing.Description != description {
		return true
	}
	if domain.ParseStatus(existing.Status) != domain.ParseStatus(status) {
		return true
	}
	if existing.Position != position {
		return true
	}
	if categoryID != uuid.Nil && existing.CategoryID != categoryID {
		return true
	}
	return false
}

func metadataChanged(current, next map[string]any) bool {
	if next == nil {
		return false
	}
	return !reflect.DeepEqual(current, next)
}

// missingAliases returns the alias titles not yet attached to the keyword,
// comparing by normalized slug. Reconciliation is additive; aliases removed
// from a document keep working until deleted through the service.
func missingAliases(existing []*keywords.KeywordAlias, titles []string) []string {
	have := map[string]struct{}{}
	for _, alias := range existing {
		if alias != nil {
			have[alias.Slug] = struct{}{}
		}
	}

	var missing []string
	seen := map[string]struct{}{}

	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		slug, err := keywords.NormalizeSlug(title)
		if err == nil && slug != "" {
			if _, ok := have[slug]; ok {
				continue
			}
			if _, dup := seen[slug]; dup {
				continue
			}
			seen[slug] = struct{}{}
		}
		missing = append(missing, title)
	}

	return missing
}

// displayName turns a slug into a readable name for auto-created categories.
func displayName(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(words) == 0 {
		return slug
	}
	for idx, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[idx] = string(runes)
	}
	return strings.Join(words, " ")
}

type importAccumulator struct {
	createdSlugs []string
	updatedSlugs []string
	skippedSlugs []string
	errors       []error
}

func newImportAccumulator() *importAccumulator {
	return &importAccumulator{
		createdSlugs: []string{},
		updatedSlugs: []string{},
		skippedSlugs: []string{},
		errors:       []error{},
	}
}

func (a *importAccumulator) created(slug string) {
	a.createdSlugs = append(a.createdSlugs, slug)
}

func (a *importAccumulator) updated(slug string) {
	a.updatedSlugs = append(a.updatedSlugs, slug)
}

func (a *importAccumulator) skip(slug string) {
	a.skippedSlugs = append(a.skippedSlugs, slug)
}

func (a *importAccumulator) addError(err error) {
	if err != nil {
		a.errors = append(a.errors, err)
	}
}

func (a *importAccumulator) result() *interfaces.ImportResult {
	return &interfaces.ImportResult{
		CreatedKeywords: a.createdSlugs,
		UpdatedKeywords: a.updatedSlugs,
		SkippedKeywords: a.skippedSlugs,
		Errors:          a.errors,
	}
}

func firstError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
