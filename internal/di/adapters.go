package di

import (
	"context"
	"fmt"

	keywordsvc "github.com/goliatone/go-glossary/internal/keywords"
	"github.com/goliatone/go-glossary/internal/markdown"
	"github.com/goliatone/go-glossary/internal/validation"
)

// snippetRenderer adapts the shared Markdown parser into the plain-text
// renderer the catalog uses for search snippets.
func (c *Container) snippetRenderer() keywordsvc.SnippetRenderer {
	parser := c.markdownParser()
	opts := c.parseOptions()
	return func(_ context.Context, source string) (string, error) {
		html, err := parser.ParseWithOptions([]byte(source), opts)
		if err != nil {
			return "", err
		}
		return markdown.StripTags(string(html)), nil
	}
}

// newMetadataValidator checks the configured metadata schema once and returns
// the validator applied to keyword writes.
func newMetadataValidator(schema map[string]any) (keywordsvc.MetadataValidator, error) {
	if err := validation.ValidateSchema(schema); err != nil {
		return nil, fmt.Errorf("metadata schema: %w", err)
	}
	normalized := validation.NormalizeSchema(schema)
	return func(metadata map[string]any) error {
		return validation.ValidatePayload(normalized, metadata)
	}, nil
}
