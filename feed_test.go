package main

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func feedSettings() SiteSettings {
	return SiteSettings{
		BaseURL:     "https://example.com",
		Title:       "Example & Sons",
		Description: "News about <things>",
	}
}

func TestBuildRSS(t *testing.T) {
	posts := []Post{
		{
			Slug:    "first-post",
			Title:   `Quotes "and" ampersands & such`,
			Date:    time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			Excerpt: "An excerpt with <tags>",
		},
	}

	rss := buildRSS(posts, feedSettings())

	if !strings.Contains(rss, "<title>Example &amp; Sons - News</title>") {
		t.Error("expected escaped channel title")
	}
	if !strings.Contains(rss, "Quotes &quot;and&quot; ampersands &amp; such") {
		t.Error("expected escaped item title")
	}
	if !strings.Contains(rss, "An excerpt with &lt;tags&gt;") {
		t.Error("expected escaped description")
	}
	if !strings.Contains(rss, "<link>https://example.com/news/first-post</link>") {
		t.Error("expected item link")
	}
	if !strings.Contains(rss, "<pubDate>Sun, 15 Jun 2025 10:00:00 GMT</pubDate>") {
		t.Errorf("expected RFC 1123 pubDate, rss:\n%s", rss)
	}
	if !strings.Contains(rss, `<atom:link href="https://example.com/rss.xml"`) {
		t.Error("expected self link")
	}
}

func TestBuildRSS_LimitsItems(t *testing.T) {
	var posts []Post
	for i := 0; i < 30; i++ {
		posts = append(posts, Post{Slug: fmt.Sprintf("post-%d", i), Title: "t", Date: time.Now()})
	}

	rss := buildRSS(posts, feedSettings())
	if got := strings.Count(rss, "<item>"); got != feedLimit {
		t.Errorf("expected %d items, got %d", feedLimit, got)
	}
}

func TestBuildSitemap(t *testing.T) {
	updated := time.Date(2025, 6, 20, 9, 30, 0, 0, time.UTC)
	posts := []Post{
		{Slug: "with-update", Title: "a", Date: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), Updated: &updated},
		{Slug: "without-update", Title: "b", Date: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
	}

	sitemap := buildSitemap(posts, feedSettings())

	for _, path := range []string{"/", "/news", "/team", "/faq"} {
		if !strings.Contains(sitemap, fmt.Sprintf("<loc>https://example.com%s</loc>", path)) {
			t.Errorf("expected static page %s in sitemap", path)
		}
	}
	if !strings.Contains(sitemap, "<loc>https://example.com/news/with-update</loc>") {
		t.Error("expected post url in sitemap")
	}
	if !strings.Contains(sitemap, "<lastmod>2025-06-20</lastmod>") {
		t.Error("expected lastmod from updated date")
	}
	if !strings.Contains(sitemap, "<lastmod>2025-05-02</lastmod>") {
		t.Error("expected lastmod from publish date when updated is absent")
	}
}

func TestBuildRobots(t *testing.T) {
	robots := buildRobots(feedSettings())

	if !strings.Contains(robots, "User-agent: *") {
		t.Error("expected wildcard user-agent")
	}
	if !strings.Contains(robots, "Sitemap: https://example.com/sitemap.xml") {
		t.Error("expected sitemap pointer")
	}
}

func TestXMLEscape(t *testing.T) {
	got := xmlEscape(`<a href="x">it's &</a>`)
	want := "&lt;a href=&quot;x&quot;&gt;it&apos;s &amp;&lt;/a&gt;"
	if got != want {
		t.Errorf("xmlEscape() = %q, want %q", got, want)
	}
}
