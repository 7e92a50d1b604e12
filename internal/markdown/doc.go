// Package markdown renders keyword descriptions with goldmark and imports
// directories of front-matter annotated Markdown files into the keyword
// catalog. Imports derive record identity from slugs, so re-running a
// directory import refreshes existing entries instead of duplicating them.
package markdown
