package sitemap

import (
	"strings"
	"time"

	"github.com/foliolabs/core/internal/models"
)

// staticRoutes are the site pages that always appear in the sitemap,
// ahead of any content-derived URLs.
var staticRoutes = []string{
	"",
	"/about",
	"/projects",
	"/blog",
	"/speaking",
	"/services",
	"/resume",
	"/contact",
}

// Entry is one <url> element.
type Entry struct {
	Loc     string
	LastMod time.Time
}

// Build renders the sitemap XML for the static pages plus every project
// and every published post. baseURL must not have a trailing slash.
func Build(baseURL string, posts []models.PostModel, projects []models.ProjectModel, now time.Time) string {
	base := strings.TrimRight(baseURL, "/")

	entries := make([]Entry, 0, len(staticRoutes)+len(posts)+len(projects))
	for _, route := range staticRoutes {
		entries = append(entries, Entry{Loc: base + route, LastMod: now})
	}
	for _, p := range projects {
		entries = append(entries, Entry{Loc: base + "/projects/" + p.Slug, LastMod: p.UpdatedAt})
	}
	for _, p := range posts {
		if !p.IsPublished() {
			continue
		}
		entries = append(entries, Entry{Loc: base + "/blog/" + p.Slug, LastMod: p.UpdatedAt})
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, e := range entries {
		b.WriteString("  <url>\n")
		b.WriteString("    <loc>" + escapeXML(e.Loc) + "</loc>\n")
		b.WriteString("    <lastmod>" + e.LastMod.UTC().Format("2006-01-02") + "</lastmod>\n")
		b.WriteString("  </url>\n")
	}
	b.WriteString("</urlset>\n")
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
