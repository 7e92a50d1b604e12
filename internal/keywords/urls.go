package keywords

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// URLResolver builds public URLs for keyword and category pages. Resolved
// URLs flow into search entries and link candidates, so they must be stable
// for a given slug pair.
type URLResolver interface {
	KeywordURL(categorySlug, slug string) (string, error)
	CategoryURL(categorySlug string) (string, error)
}

// StaticURLResolver joins slugs under a fixed base path. It is the fallback
// when no route manager is configured.
type StaticURLResolver struct {
	BasePath string
}

// NewStaticURLResolver creates a resolver rooted at basePath.
func NewStaticURLResolver(basePath string) StaticURLResolver {
	return StaticURLResolver{BasePath: basePath}
}

// KeywordURL returns <base>/<category>/<slug>.
func (r StaticURLResolver) KeywordURL(categorySlug, slug string) (string, error) {
	return joinPath(r.BasePath, categorySlug, slug), nil
}

// CategoryURL returns <base>/<category>.
func (r StaticURLResolver) CategoryURL(categorySlug string) (string, error) {
	return joinPath(r.BasePath, categorySlug), nil
}

func joinPath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, segment := range segments {
		b.WriteString("/")
		b.WriteString(url.PathEscape(segment))
	}
	return b.String()
}

// URLKitResolverOptions configures the go-urlkit backed resolver.
type URLKitResolverOptions struct {
	Manager       *urlkit.RouteManager
	Group         string
	KeywordRoute  string
	CategoryRoute string
	CategoryParam string
	SlugParam     string
}

// URLKitResolver resolves keyword URLs through a go-urlkit RouteManager, so
// the route layout stays configurable alongside the rest of the site.
type URLKitResolver struct {
	manager *urlkit.RouteManager

	group         string
	keywordRoute  string
	categoryRoute string
	categoryParam string
	slugParam     string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewURLKitResolver constructs a resolver backed by go-urlkit.
func NewURLKitResolver(opts URLKitResolverOptions) *URLKitResolver {
	if opts.Group == "" {
		opts.Group = "glossary"
	}
	if opts.KeywordRoute == "" {
		opts.KeywordRoute = "keyword"
	}
	if opts.CategoryRoute == "" {
		opts.CategoryRoute = "category"
	}
	if opts.CategoryParam == "" {
		opts.CategoryParam = "category"
	}
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}

	return &URLKitResolver{
		manager:       opts.Manager,
		group:         strings.TrimSpace(opts.Group),
		keywordRoute:  strings.TrimSpace(opts.KeywordRoute),
		categoryRoute: strings.TrimSpace(opts.CategoryRoute),
		categoryParam: opts.CategoryParam,
		slugParam:     opts.SlugParam,
		groupCache:    make(map[string]*urlkit.Group),
	}
}

// KeywordURL builds the detail page URL for a keyword or alias slug.
func (r *URLKitResolver) KeywordURL(categorySlug, slug string) (string, error) {
	builder, err := r.builderFor(r.keywordRoute)
	if err != nil {
		return "", err
	}
	return builder.
		WithParam(r.categoryParam, categorySlug).
		WithParam(r.slugParam, slug).
		Build()
}

// CategoryURL builds the listing page URL for a category slug.
func (r *URLKitResolver) CategoryURL(categorySlug string) (string, error) {
	builder, err := r.builderFor(r.categoryRoute)
	if err != nil {
		return "", err
	}
	return builder.
		WithParam(r.categoryParam, categorySlug).
		Build()
}

func (r *URLKitResolver) builderFor(route string) (*urlkit.Builder, error) {
	group, err := r.groupForPath(r.group)
	if err != nil {
		return nil, err
	}
	return safeBuilder(group, route)
}

func (r *URLKitResolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	if len(parts) == 0 || parts[0] == "" {
		return nil, fmt.Errorf("keywords: invalid route group path %q", path)
	}

	current, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

// go-urlkit panics on unknown groups and routes; the lookups below convert
// those panics into errors.

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("keywords: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("keywords: urlkit route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("keywords: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("keywords: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("keywords: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("keywords: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, nil
}
