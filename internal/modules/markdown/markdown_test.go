package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBasicMarkdown(t *testing.T) {
	html := Render("# Title\n\nSome **bold** text.")
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestRenderEmptyInput(t *testing.T) {
	assert.Equal(t, "", Render(""))
	assert.Equal(t, "", Render("   \n  "))
}

func TestReadingMinutes(t *testing.T) {
	assert.Equal(t, 0, ReadingMinutes(""))
	assert.Equal(t, 1, ReadingMinutes("just a few words here"))

	long := strings.Repeat("word ", 450)
	assert.Equal(t, 3, ReadingMinutes(long))
}

func TestCountWordsSkipsCodeFences(t *testing.T) {
	source := "intro words\n```go\nfunc main() { fmt.Println(1) }\n```\noutro"
	assert.Equal(t, 3, CountWords(source))
}
