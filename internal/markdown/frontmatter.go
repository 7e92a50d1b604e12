package markdown

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-glossary/pkg/interfaces"
)

// ParseFrontMatter splits a keyword document into its YAML metadata envelope
// and the Markdown body that follows it. The body comes back with the
// delimiters stripped.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var env frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &env)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return env.toFrontMatter(), body, nil
}

// BuildDocument assembles an interfaces.Document from a file path, raw file
// content, and modification time. BodyHTML stays empty until a caller renders
// the document.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

// frontMatterEnvelope is the YAML shape of a keyword document header. Keys
// outside the known set collect into Custom via the inline tag.
type frontMatterEnvelope struct {
	Title    string         `yaml:"title"`
	Slug     string         `yaml:"slug"`
	Category string         `yaml:"category"`
	Aliases  []string       `yaml:"aliases"`
	Status   string         `yaml:"status"`
	Position int            `yaml:"position"`
	Custom   map[string]any `yaml:",inline"`
}

// toFrontMatter projects the envelope onto the public FrontMatter type. Raw
// mirrors every populated key, known and custom alike, so importers can reach
// values without caring which bucket they landed in.
func (env frontMatterEnvelope) toFrontMatter() interfaces.FrontMatter {
	custom := maps.Clone(env.Custom)
	if custom == nil {
		custom = map[string]any{}
	}

	raw := make(map[string]any, len(custom)+6)
	maps.Copy(raw, custom)
	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if env.Category != "" {
		raw["category"] = env.Category
	}
	if len(env.Aliases) > 0 {
		raw["aliases"] = slices.Clone(env.Aliases)
	}
	if env.Status != "" {
		raw["status"] = env.Status
	}
	if env.Position != 0 {
		raw["position"] = env.Position
	}

	return interfaces.FrontMatter{
		Title:    env.Title,
		Slug:     env.Slug,
		Category: env.Category,
		Aliases:  slices.Clone(env.Aliases),
		Status:   env.Status,
		Position: env.Position,
		Custom:   custom,
		Raw:      raw,
	}
}
