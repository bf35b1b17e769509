package feed

import (
	"testing"
	"time"

	"github.com/foliolabs/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func testChannel() Channel {
	return Channel{
		Title:       "Notes & Things",
		Link:        "https://example.com/",
		Description: "A personal site.",
	}
}

func TestBuildChannelHeader(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	xml := Build(testChannel(), nil, now)

	assert.Contains(t, xml, `<rss version="2.0"`)
	assert.Contains(t, xml, "<title>Notes &amp; Things</title>")
	assert.Contains(t, xml, "<link>https://example.com</link>")
	assert.Contains(t, xml, "<description>A personal site.</description>")
	assert.Contains(t, xml, `href="https://example.com/rss.xml"`)
}

func TestBuildItems(t *testing.T) {
	published := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	posts := []models.PostModel{
		{
			Title:       "Hello <World>",
			Slug:        "hello-world",
			Excerpt:     "First post.",
			ContentMDX:  "Some **bold** text.",
			PublishedAt: &published,
		},
		{Title: "Draft", Slug: "draft"},
	}

	xml := Build(testChannel(), posts, time.Now())

	assert.Contains(t, xml, "<title>Hello &lt;World&gt;</title>")
	assert.Contains(t, xml, "<link>https://example.com/blog/hello-world</link>")
	assert.Contains(t, xml, `<guid isPermaLink="true">https://example.com/blog/hello-world</guid>`)
	assert.Contains(t, xml, "<pubDate>"+published.Format(time.RFC1123Z)+"</pubDate>")
	assert.Contains(t, xml, "<![CDATA[First post.]]>")
	assert.Contains(t, xml, "<strong>bold</strong>")
	assert.NotContains(t, xml, "Draft")
}

func TestCDATASafe(t *testing.T) {
	out := cdataSafe("before ]]> after")
	assert.NotContains(t, out, " ]]> ")
	assert.Contains(t, out, "]]]]><![CDATA[>")
}
