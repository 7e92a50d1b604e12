package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goliatone/go-glossary/pkg/interfaces"
)

// LoaderConfig configures document discovery under a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where keyword documents live.
	BasePath string
	// Pattern is the glob documents must match; empty means "*.md".
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// LoadParams override discovery per call. A nil Recursive keeps the
// configured default.
type LoadParams struct {
	Pattern   string
	Recursive *bool
}

// Loader reads keyword documents off a filesystem and parses their front
// matter envelopes.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
}

// NewLoader builds a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}
	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadFile reads and parses a single keyword document.
func (l *Loader) LoadFile(ctx context.Context, path string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader: read %s: %w", rel, err)
	}
	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader: stat %s: %w", rel, err)
	}

	return BuildDocument(rel, data, info.ModTime())
}

// LoadDirectory discovers keyword documents under dir and returns them sorted
// by path, so repeated runs see the same order.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts LoadParams) ([]*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := l.resolve(dir)
	if err != nil {
		return nil, err
	}

	recurse := l.recursive
	if opts.Recursive != nil {
		recurse = *opts.Recursive
	}

	var docs []*interfaces.Document
	err = fs.WalkDir(l.fs, root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			if path != root && !recurse {
				return fs.SkipDir
			}
			return nil
		}
		if !l.matches(path, opts.Pattern) {
			return nil
		}

		doc, err := l.LoadFile(ctx, path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(docs, func(a, b *interfaces.Document) int {
		return strings.Compare(a.FilePath, b.FilePath)
	})
	return docs, nil
}

// matches reports whether path satisfies the effective glob. Patterns without
// a separator match against the basename; a "**/" prefix collapses to that
// same basename match.
func (l *Loader) matches(path, override string) bool {
	pattern := strings.TrimSpace(override)
	if pattern == "" {
		pattern = l.pattern
	}
	pattern = strings.ReplaceAll(filepath.ToSlash(pattern), "**/", "")

	target := path
	if !strings.Contains(pattern, "/") {
		target = filepath.Base(path)
	}
	matched, err := filepath.Match(pattern, target)
	return err == nil && matched
}

// resolve maps path onto the loader filesystem in slash form: relative paths
// pass through, absolute paths are rebased against BasePath.
func (l *Loader) resolve(path string) (string, error) {
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) {
		if l.basePath == "" {
			return "", fmt.Errorf("markdown loader: absolute path %s needs a base path", path)
		}
		rel, err := filepath.Rel(l.basePath, clean)
		if err != nil {
			return "", fmt.Errorf("markdown loader: resolve %s: %w", path, err)
		}
		clean = rel
	}
	return filepath.ToSlash(clean), nil
}
