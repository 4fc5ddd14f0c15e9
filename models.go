package main

import (
	"html/template"
	"time"
)

// Post is the canonical content unit. Every public surface (pages, RSS,
// sitemap) renders posts in this shape, regardless of which source they
// came from.
type Post struct {
	Slug        string
	Title       string
	Date        time.Time
	Updated     *time.Time
	Excerpt     string
	HTML        template.HTML
	CoverImage  string
	Tags        []string
	Hidden      bool
	ReadingTime string
	Related     []Post
}

// NewsRow is the persisted shape of a post in the news_posts table.
// UpdatedAt is storage metadata, stamped on every write; Updated is the
// editorial "last updated" date shown to readers.
type NewsRow struct {
	Slug       string
	Title      string
	Date       time.Time
	Updated    *time.Time
	Excerpt    string
	Body       string
	CoverImage string
	Tags       []string
	Hidden     bool
	UpdatedAt  time.Time
}

// AdminSession is a verified admin identity carried by a signed cookie.
type AdminSession struct {
	SubjectID string
	Login     string
	ExpiresAt int64
}

type AdminUser struct {
	ID           string
	Login        string
	PasswordHash string
}

// Page is one page of the public post listing.
type Page struct {
	Items      []Post
	TotalPosts int
	TotalPages int
	Page       int
}

type FaqItem struct {
	ID       string
	Question string
	Answer   string
	Tag      string
	Position int
}

type SocialLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

type TeamMember struct {
	ID          string
	Section     string
	Name        string
	Role        string
	Description string
	Avatar      string
	Tags        []string
	Socials     []SocialLink
	Position    int
}
