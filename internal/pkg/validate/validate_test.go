package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSlug(t *testing.T) {
	valid := []string{"hello", "hello-world", "a", "post-123", "2024-review"}
	for _, s := range valid {
		assert.True(t, IsSlug(s), "expected %q to be a valid slug", s)
	}

	invalid := []string{"", "Hello", "hello world", "hello_world", "héllo", "hello!", "UPPER"}
	for _, s := range invalid {
		assert.False(t, IsSlug(s), "expected %q to be rejected", s)
	}
}

type samplePayload struct {
	Title string `json:"title" validate:"required"`
	Slug  string `json:"slug"  validate:"required,slug"`
	Link  string `json:"link"  validate:"omitempty,url"`
	Kind  string `json:"kind"  validate:"omitempty,oneof=WEB LLM AIVIDEO"`
}

func TestStructPassesValidPayload(t *testing.T) {
	fields := Struct(&samplePayload{Title: "Hello", Slug: "hello-world"})
	assert.Nil(t, fields)
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	fields := Struct(&samplePayload{Slug: "My Slug"})
	require.Len(t, fields, 2)

	byField := map[string]string{}
	for _, f := range fields {
		byField[f.Field] = f.Message
	}
	assert.Equal(t, "Title is required", byField["title"])
	assert.Equal(t, "Slug must be lowercase with hyphens", byField["slug"])
}

func TestStructURLAndEnumMessages(t *testing.T) {
	fields := Struct(&samplePayload{
		Title: "x",
		Slug:  "x",
		Link:  "not a url",
		Kind:  "DESKTOP",
	})
	require.Len(t, fields, 2)

	byField := map[string]string{}
	for _, f := range fields {
		byField[f.Field] = f.Message
	}
	assert.Equal(t, "Link must be a valid URL", byField["link"])
	assert.Equal(t, "Kind must be one of: WEB, LLM, AIVIDEO", byField["kind"])
}
