package keywords

import (
	"context"
	"fmt"

	"github.com/goliatone/go-glossary/keywords"
	"github.com/uptrace/bun"
)

// CreateSchema creates the glossary tables and their indexes when they do not
// exist yet. Keywords reference categories and aliases reference keywords, so
// tables are created parent-first. Slug uniqueness is scoped to live rows:
// hosts that stamp deleted_at instead of deleting can reuse the slug.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*keywords.KeywordCategory)(nil),
		(*keywords.Keyword)(nil),
		(*keywords.KeywordAlias)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table %T: %w", model, err)
		}
	}

	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_keyword_categories_slug_live ON keyword_categories(slug) WHERE deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_keywords_slug_live ON keywords(slug) WHERE deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_keyword_aliases_slug_live ON keyword_aliases(slug) WHERE deleted_at IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_keywords_category_id ON keywords(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_keyword_aliases_keyword_id ON keyword_aliases(keyword_id)",
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
