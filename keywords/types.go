package keywords

import (
	"time"

	"github.com/goliatone/go-glossary/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Keyword is the canonical record for a glossary entry. Description holds the
// Markdown source; rendering happens at page-assembly time.
type Keyword struct {
	bun.BaseModel `bun:"table:keywords,alias:k"`

	ID          uuid.UUID      `bun:",pk,type:uuid"                  json:"id"`
	CategoryID  uuid.UUID      `bun:"category_id,notnull,type:uuid"  json:"category_id"`
	Title       string         `bun:"title,notnull"                  json:"title"`
	Slug        string         `bun:"slug,notnull"                   json:"slug"`
	Description string         `bun:"description"                    json:"description"`
	Status      string         `bun:"status,notnull,default:'draft'" json:"status"`
	Position    int            `bun:"position,notnull,default:0"     json:"position"`
	ViewCount   int64          `bun:"view_count,notnull,default:0"   json:"view_count"`
	Metadata    map[string]any `bun:"metadata,type:jsonb"            json:"metadata,omitempty"`
	CreatedBy   uuid.UUID      `bun:"created_by,type:uuid"           json:"created_by"`
	UpdatedBy   uuid.UUID      `bun:"updated_by,type:uuid"           json:"updated_by"`
	DeletedAt   *time.Time     `bun:"deleted_at,nullzero"            json:"deleted_at,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Category *KeywordCategory `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
	Aliases  []*KeywordAlias  `bun:"rel:has-many,join:id=keyword_id"    json:"aliases,omitempty"`

	EffectiveStatus domain.Status `bun:"-" json:"effective_status"`
	IsVisible       bool          `bun:"-" json:"is_visible"`
}

// KeywordAlias is an alternative display text for a keyword. Aliases carry
// their own slug so alias URLs resolve to the owning keyword's page.
type KeywordAlias struct {
	bun.BaseModel `bun:"table:keyword_aliases,alias:ka"`

	ID        uuid.UUID  `bun:",pk,type:uuid"                 json:"id"`
	KeywordID uuid.UUID  `bun:"keyword_id,notnull,type:uuid"  json:"keyword_id"`
	Title     string     `bun:"title,notnull"                 json:"title"`
	Slug      string     `bun:"slug,notnull"                  json:"slug"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero"           json:"deleted_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Keyword *Keyword `bun:"rel:belongs-to,join:keyword_id=id" json:"keyword,omitempty"`
}

// KeywordCategory groups keywords; a keyword is only visible when its
// category is published too.
type KeywordCategory struct {
	bun.BaseModel `bun:"table:keyword_categories,alias:kc"`

	ID          uuid.UUID  `bun:",pk,type:uuid"                  json:"id"`
	Name        string     `bun:"name,notnull"                   json:"name"`
	Slug        string     `bun:"slug,notnull"                   json:"slug"`
	Description *string    `bun:"description"                    json:"description,omitempty"`
	Icon        *string    `bun:"icon"                           json:"icon,omitempty"`
	Position    int        `bun:"position,notnull,default:0"     json:"position"`
	Status      string     `bun:"status,notnull,default:'draft'" json:"status"`
	DeletedAt   *time.Time `bun:"deleted_at,nullzero"            json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// SearchKind distinguishes canonical titles from aliases in the search index.
type SearchKind string

const (
	SearchKindKeyword SearchKind = "keyword"
	SearchKindAlias   SearchKind = "alias"
)

// SearchEntry is one row of the flattened search index: every published
// keyword contributes one entry for its canonical title plus one per alias.
type SearchEntry struct {
	KeywordID    uuid.UUID  `json:"keyword_id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Category     string     `json:"category"`
	CategorySlug string     `json:"category_slug"`
	CategoryIcon *string    `json:"category_icon,omitempty"`
	Snippet      string     `json:"description"`
	URL          string     `json:"url"`
	Kind         SearchKind `json:"type"`
	Canonical    string     `json:"main_keyword,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
