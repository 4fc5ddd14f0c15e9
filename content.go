package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rowToPost maps a persisted row to the canonical post shape: markdown body
// rendered to HTML, reading time derived from the excerpt, optional fields
// left as zero values.
func rowToPost(row NewsRow, related []Post) (Post, error) {
	if row.Slug == "" || row.Title == "" {
		return Post{}, fmt.Errorf("news row missing slug or title (slug=%q)", row.Slug)
	}

	var html string
	if row.Body != "" {
		out, err := renderMarkdown(row.Body)
		if err != nil {
			return Post{}, fmt.Errorf("rendering body of %q: %w", row.Slug, err)
		}
		html = out
	}

	if related == nil {
		related = []Post{}
	}

	return Post{
		Slug:        row.Slug,
		Title:       row.Title,
		Date:        row.Date,
		Updated:     row.Updated,
		Excerpt:     row.Excerpt,
		HTML:        template.HTML(html),
		CoverImage:  row.CoverImage,
		Tags:        row.Tags,
		Hidden:      row.Hidden,
		ReadingTime: excerptReadingTime(row.Excerpt),
		Related:     related,
	}, nil
}

// rowsToPosts maps a batch, skipping rows that fail to map. One bad row is
// logged and dropped, never fatal to the batch.
func rowsToPosts(rows []NewsRow) []Post {
	posts := make([]Post, 0, len(rows))
	for _, row := range rows {
		post, err := rowToPost(row, nil)
		if err != nil {
			log.Printf("skipping news row: %v", err)
			continue
		}
		posts = append(posts, post)
	}
	return posts
}
