package markdown

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags reduces rendered HTML to its readable text: tags drop away,
// entities decode, and whitespace collapses to single spaces. Script and
// style bodies are omitted entirely.
func StripTags(markup string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(markup))

	var words []string
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// The tokenizer only errors at end of input.
			return strings.Join(words, " ")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if dropContent(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if dropContent(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			words = append(words, strings.Fields(string(tokenizer.Text()))...)
		}
	}
}

func dropContent(tag string) bool {
	switch tag {
	case "script", "style":
		return true
	}
	return false
}
