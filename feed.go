package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const feedLimit = 20

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}

// buildRSS renders the RSS 2.0 feed over the resolver's post collection.
// Newest first is inherited from the input; only the first feedLimit posts
// are included.
func buildRSS(posts []Post, s SiteSettings) string {
	if len(posts) > feedLimit {
		posts = posts[:feedLimit]
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">` + "\n")
	b.WriteString("  <channel>\n")
	fmt.Fprintf(&b, "    <title>%s - News</title>\n", xmlEscape(s.Title))
	fmt.Fprintf(&b, "    <link>%s/news</link>\n", s.BaseURL)
	fmt.Fprintf(&b, "    <description>%s</description>\n", xmlEscape(s.Description))
	fmt.Fprintf(&b, "    <atom:link href=\"%s/rss.xml\" rel=\"self\" type=\"application/rss+xml\"/>\n", s.BaseURL)

	for _, p := range posts {
		b.WriteString("    <item>\n")
		fmt.Fprintf(&b, "      <title>%s</title>\n", xmlEscape(p.Title))
		fmt.Fprintf(&b, "      <link>%s/news/%s</link>\n", s.BaseURL, xmlEscape(p.Slug))
		fmt.Fprintf(&b, "      <description>%s</description>\n", xmlEscape(p.Excerpt))
		fmt.Fprintf(&b, "      <pubDate>%s</pubDate>\n", p.Date.UTC().Format(http.TimeFormat))
		fmt.Fprintf(&b, "      <guid isPermaLink=\"true\">%s/news/%s</guid>\n", s.BaseURL, xmlEscape(p.Slug))
		b.WriteString("    </item>\n")
	}

	b.WriteString("  </channel>\n")
	b.WriteString("</rss>\n")
	return b.String()
}

// buildSitemap lists the static pages plus one entry per post. lastmod
// prefers the editorial updated date over the publish date.
func buildSitemap(posts []Post, s SiteSettings) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	staticPages := []struct {
		path       string
		priority   string
		changefreq string
	}{
		{"/", "1.0", "weekly"},
		{"/news", "0.9", "daily"},
		{"/team", "0.8", "monthly"},
		{"/faq", "0.8", "monthly"},
	}
	for _, page := range staticPages {
		b.WriteString("  <url>\n")
		fmt.Fprintf(&b, "    <loc>%s%s</loc>\n", xmlEscape(s.BaseURL), page.path)
		fmt.Fprintf(&b, "    <changefreq>%s</changefreq>\n", page.changefreq)
		fmt.Fprintf(&b, "    <priority>%s</priority>\n", page.priority)
		b.WriteString("  </url>\n")
	}

	for _, p := range posts {
		lastmod := p.Date
		if p.Updated != nil {
			lastmod = *p.Updated
		}
		b.WriteString("  <url>\n")
		fmt.Fprintf(&b, "    <loc>%s/news/%s</loc>\n", xmlEscape(s.BaseURL), xmlEscape(p.Slug))
		fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", lastmod.UTC().Format(time.DateOnly))
		b.WriteString("    <changefreq>monthly</changefreq>\n")
		b.WriteString("    <priority>0.7</priority>\n")
		b.WriteString("  </url>\n")
	}

	b.WriteString("</urlset>\n")
	return b.String()
}

func buildRobots(s SiteSettings) string {
	return fmt.Sprintf(`# Allow crawling everything by default
User-agent: *
Allow: /

# Sitemap
Sitemap: %s/sitemap.xml
`, s.BaseURL)
}
