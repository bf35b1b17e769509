package feed

import (
	"strings"
	"time"

	"github.com/foliolabs/core/internal/models"
	"github.com/foliolabs/core/internal/modules/markdown"
)

// Channel describes the feed header.
type Channel struct {
	Title       string
	Link        string
	Description string
}

// Build renders an RSS 2.0 document of published posts, newest first by
// publish time. Post bodies are rendered to HTML for content:encoded so
// readers get the full article, not markdown source.
func Build(ch Channel, posts []models.PostModel, now time.Time) string {
	base := strings.TrimRight(ch.Link, "/")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom" xmlns:content="http://purl.org/rss/1.0/modules/content/">` + "\n")
	b.WriteString("<channel>\n")
	b.WriteString("  <title>" + escapeXML(ch.Title) + "</title>\n")
	b.WriteString("  <link>" + escapeXML(base) + "</link>\n")
	b.WriteString("  <description>" + escapeXML(ch.Description) + "</description>\n")
	b.WriteString("  <language>en</language>\n")
	b.WriteString("  <lastBuildDate>" + now.UTC().Format(time.RFC1123Z) + "</lastBuildDate>\n")
	b.WriteString(`  <atom:link href="` + escapeXML(base+"/rss.xml") + `" rel="self" type="application/rss+xml"/>` + "\n")

	for _, p := range posts {
		if !p.IsPublished() {
			continue
		}
		link := base + "/blog/" + p.Slug
		html := markdown.Render(p.ContentMDX)
		if html == "" {
			html = p.Excerpt
		}

		b.WriteString("  <item>\n")
		b.WriteString("    <title>" + escapeXML(p.Title) + "</title>\n")
		b.WriteString("    <link>" + escapeXML(link) + "</link>\n")
		b.WriteString(`    <guid isPermaLink="true">` + escapeXML(link) + "</guid>\n")
		b.WriteString("    <pubDate>" + p.PublishedAt.UTC().Format(time.RFC1123Z) + "</pubDate>\n")
		b.WriteString("    <description><![CDATA[" + cdataSafe(p.Excerpt) + "]]></description>\n")
		b.WriteString("    <content:encoded><![CDATA[" + cdataSafe(html) + "]]></content:encoded>\n")
		b.WriteString("  </item>\n")
	}

	b.WriteString("</channel>\n")
	b.WriteString("</rss>\n")
	return b.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// cdataSafe keeps a body from terminating its own CDATA section.
func cdataSafe(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}
