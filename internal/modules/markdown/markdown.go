package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// wordsPerMinute is the reading speed used to derive reading_minutes from a
// post body.
const wordsPerMinute = 200

var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Strikethrough,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

var (
	codeFencePattern = regexp.MustCompile("(?s)```.*?```")
	inlineMDPattern  = regexp.MustCompile("[#*_`>\\[\\]()!-]")
)

// Render converts an MDX/markdown body to HTML. JSX component tags the body
// may contain pass through as raw HTML.
func Render(source string) string {
	text := strings.TrimSpace(source)
	if text == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := engine.Convert([]byte(text), &buf); err != nil {
		return text
	}
	return buf.String()
}

// ReadingMinutes estimates reading time from the word count of the markdown
// source. Always at least 1 for non-empty content.
func ReadingMinutes(source string) int {
	words := CountWords(source)
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// CountWords counts prose words, skipping fenced code blocks and markdown
// punctuation.
func CountWords(source string) int {
	text := codeFencePattern.ReplaceAllString(source, " ")
	text = inlineMDPattern.ReplaceAllString(text, " ")
	return len(strings.Fields(text))
}
