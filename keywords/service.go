package keywords

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-glossary/domain"
	"github.com/goliatone/go-glossary/linker"
	"github.com/google/uuid"
)

// Service exposes the keyword catalog use-cases. LinkTargets is the catalog
// snapshot consumed by the linking engine: one candidate per visible keyword
// title plus one per alias, excluding the keyword being rendered.
type Service interface {
	CreateKeyword(ctx context.Context, req CreateKeywordRequest) (*Keyword, error)
	UpdateKeyword(ctx context.Context, req UpdateKeywordRequest) (*Keyword, error)
	DeleteKeyword(ctx context.Context, id uuid.UUID) error
	GetKeyword(ctx context.Context, id uuid.UUID) (*Keyword, error)
	GetKeywordBySlug(ctx context.Context, slug string) (*Keyword, error)
	// ResolveSlug finds the keyword owning slug, falling back to alias slugs.
	// The alias is non-nil only when the slug matched an alias.
	ResolveSlug(ctx context.Context, slug string) (*Keyword, *KeywordAlias, error)
	ListKeywords(ctx context.Context, opts ListOptions) ([]*Keyword, error)

	AddAlias(ctx context.Context, req AddAliasRequest) (*KeywordAlias, error)
	RemoveAlias(ctx context.Context, aliasID uuid.UUID) error
	ListAliases(ctx context.Context, keywordID uuid.UUID) ([]*KeywordAlias, error)

	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*KeywordCategory, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*KeywordCategory, error)
	ListCategories(ctx context.Context) ([]*KeywordCategory, error)

	Related(ctx context.Context, keywordID uuid.UUID, limit int) ([]*Keyword, error)
	SearchIndex(ctx context.Context) ([]SearchEntry, error)
	LinkTargets(ctx context.Context, excludeID uuid.UUID) ([]linker.Candidate, error)
	RecordView(ctx context.Context, keywordID uuid.UUID) error
}

// ListOptions filters keyword listings. Zero values mean "no filter".
type ListOptions struct {
	CategoryID uuid.UUID
	Status     domain.Status
	// VisibleOnly keeps published keywords in published categories, the set
	// the public portal shows.
	VisibleOnly bool
	Limit       int
	Offset      int
}

// CreateKeywordRequest captures the information required to create a keyword.
// Slug is optional; an empty slug derives from Title. ID is optional; setting
// it lets importers keep record identity deterministic across runs.
type CreateKeywordRequest struct {
	ID          uuid.UUID      `json:"id,omitempty"`
	CategoryID  uuid.UUID      `json:"category_id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug,omitempty"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status,omitempty"`
	Position    int            `json:"position,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Aliases     []string       `json:"aliases,omitempty"`
	CreatedBy   uuid.UUID      `json:"created_by,omitempty"`
	UpdatedBy   uuid.UUID      `json:"updated_by,omitempty"`
}

// Validate checks the request shape before the service applies domain rules.
func (r CreateKeywordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.By(requireTrimmed("keywords.create.title_required", "title is required"))),
		validation.Field(&r.CategoryID, validation.By(requireUUID("keywords.create.category_required", "category id is required"))),
		validation.Field(&r.Status, validation.By(statusRule("keywords.create.status_invalid"))),
	)
}

// UpdateKeywordRequest applies partial updates; nil fields are left untouched.
type UpdateKeywordRequest struct {
	ID          uuid.UUID      `json:"id"`
	CategoryID  *uuid.UUID     `json:"category_id,omitempty"`
	Title       *string        `json:"title,omitempty"`
	Slug        *string        `json:"slug,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *string        `json:"status,omitempty"`
	Position    *int           `json:"position,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	UpdatedBy   uuid.UUID      `json:"updated_by,omitempty"`
}

// Validate checks the request shape before the service applies domain rules.
func (r UpdateKeywordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.By(requireUUID("keywords.update.id_required", "keyword id is required"))),
		validation.Field(&r.Title, validation.By(optionalTrimmed("keywords.update.title_required", "title cannot be blank"))),
		validation.Field(&r.Status, validation.By(optionalStatusRule("keywords.update.status_invalid"))),
	)
}

// AddAliasRequest attaches an alternative display text to a keyword. Slug is
// optional; an empty slug derives from Title.
type AddAliasRequest struct {
	ID        uuid.UUID `json:"id,omitempty"`
	KeywordID uuid.UUID `json:"keyword_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug,omitempty"`
}

// Validate checks the request shape before the service applies domain rules.
func (r AddAliasRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.KeywordID, validation.By(requireUUID("keywords.alias.keyword_required", "keyword id is required"))),
		validation.Field(&r.Title, validation.Required, validation.By(requireTrimmed("keywords.alias.title_required", "title is required"))),
	)
}

// CreateCategoryRequest creates a keyword category. Slug is optional; an
// empty slug derives from Name.
type CreateCategoryRequest struct {
	ID          uuid.UUID `json:"id,omitempty"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug,omitempty"`
	Description *string   `json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	Position    int       `json:"position,omitempty"`
	Status      string    `json:"status,omitempty"`
}

// Validate checks the request shape before the service applies domain rules.
func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.By(requireTrimmed("keywords.category.name_required", "name is required"))),
		validation.Field(&r.Status, validation.By(statusRule("keywords.category.status_invalid"))),
	)
}

func requireTrimmed(code, message string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}

func optionalTrimmed(code, message string) validation.RuleFunc {
	return func(value any) error {
		s, ok := value.(*string)
		if !ok || s == nil {
			return nil
		}
		if strings.TrimSpace(*s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}

func requireUUID(code, message string) validation.RuleFunc {
	return func(value any) error {
		id, _ := value.(uuid.UUID)
		if id == uuid.Nil {
			return validation.NewError(code, message)
		}
		return nil
	}
}

func statusRule(code string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		return checkStatusToken(code, s)
	}
}

func optionalStatusRule(code string) validation.RuleFunc {
	return func(value any) error {
		s, ok := value.(*string)
		if !ok || s == nil {
			return nil
		}
		return checkStatusToken(code, *s)
	}
}

// checkStatusToken accepts the three lifecycle states in any casing; storage
// normalizes through domain.ParseStatus afterwards.
func checkStatusToken(code, value string) error {
	token := strings.ToLower(strings.TrimSpace(value))
	if token == "" {
		return nil
	}
	if !domain.Status(token).Valid() {
		return validation.NewError(code, "status must be draft, published, or archived")
	}
	return nil
}
