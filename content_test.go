package main

import (
	"strings"
	"testing"
	"time"
)

func TestRowToPost(t *testing.T) {
	updated := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	row := NewsRow{
		Slug:       "hello",
		Title:      "Hello",
		Date:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Updated:    &updated,
		Excerpt:    "A short excerpt.",
		Body:       "Some **bold** text",
		CoverImage: "/images/cover.webp",
		Tags:       []string{"x", "y"},
	}

	post, err := rowToPost(row, nil)
	if err != nil {
		t.Fatalf("rowToPost() error: %v", err)
	}

	if post.Slug != "hello" || post.Title != "Hello" {
		t.Errorf("unexpected slug/title: %q/%q", post.Slug, post.Title)
	}
	if !strings.Contains(string(post.HTML), "<strong>bold</strong>") {
		t.Errorf("expected rendered markdown, got %q", post.HTML)
	}
	if post.Updated == nil || !post.Updated.Equal(updated) {
		t.Errorf("expected updated date to carry over, got %v", post.Updated)
	}
	if post.ReadingTime == "" {
		t.Error("expected reading time for non-empty excerpt")
	}
	if post.Related == nil || len(post.Related) != 0 {
		t.Errorf("expected empty related slice, got %v", post.Related)
	}
}

func TestRowToPost_OptionalFieldsAbsent(t *testing.T) {
	row := NewsRow{
		Slug:  "bare",
		Title: "Bare",
		Date:  time.Now(),
	}

	post, err := rowToPost(row, nil)
	if err != nil {
		t.Fatalf("rowToPost() error: %v", err)
	}

	if post.Updated != nil {
		t.Errorf("expected nil updated, got %v", post.Updated)
	}
	if post.CoverImage != "" {
		t.Errorf("expected empty cover image, got %q", post.CoverImage)
	}
	if len(post.Tags) != 0 {
		t.Errorf("expected no tags, got %v", post.Tags)
	}
	if post.ReadingTime != "" {
		t.Errorf("expected empty reading time for empty excerpt, got %q", post.ReadingTime)
	}
	if post.HTML != "" {
		t.Errorf("expected empty html for empty body, got %q", post.HTML)
	}
}

func TestRowToPost_MissingSlug(t *testing.T) {
	_, err := rowToPost(NewsRow{Title: "No slug"}, nil)
	if err == nil {
		t.Error("expected error for row without slug")
	}
}

func TestRowsToPosts_SkipsBadRows(t *testing.T) {
	rows := []NewsRow{
		{Slug: "good-1", Title: "Good 1", Date: time.Now()},
		{Title: "missing slug", Date: time.Now()},
		{Slug: "good-2", Title: "Good 2", Date: time.Now()},
	}

	posts := rowsToPosts(rows)
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Slug != "good-1" || posts[1].Slug != "good-2" {
		t.Errorf("unexpected slugs: %v", slugs(posts))
	}
}

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"paragraph", "Hello world", "<p>Hello world</p>"},
		{"heading", "## Title", "<h2>Title</h2>"},
		{"emphasis", "an *italic* word", "<em>italic</em>"},
		{"link", "[site](https://example.com)", `<a href="https://example.com">site</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderMarkdown(tt.input)
			if err != nil {
				t.Fatalf("renderMarkdown() error: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("renderMarkdown(%q) = %q, want substring %q", tt.input, got, tt.want)
			}
		})
	}
}
