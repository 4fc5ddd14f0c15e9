package main

import (
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

func (s *Site) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	settings := loadSiteSettings(s.db)

	latest, err := s.resolver.ListPosts(1, 3)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Title":    "Home",
		"Settings": settings,
		"Posts":    latest.Items,
	}

	if err := s.templates["home.html"].ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Site) NewsIndex(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err == nil && n > 0 {
			page = n
		}
	}

	listing, err := s.resolver.ListPosts(page, postsPerPage)
	if overflow, ok := err.(*ErrPageOverflow); ok {
		target := "/news"
		if overflow.LastPage > 1 {
			target = fmt.Sprintf("/news?page=%d", overflow.LastPage)
		}
		http.Redirect(w, r, target, http.StatusFound)
		return
	}
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Title":    "News",
		"Settings": loadSiteSettings(s.db),
		"Listing":  listing,
	}

	if err := s.templates["news.html"].ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Site) NewsDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	post := s.resolver.GetPost(slug)
	if post == nil || post.Hidden {
		http.NotFound(w, r)
		return
	}

	data := map[string]any{
		"Title":    post.Title,
		"Settings": loadSiteSettings(s.db),
		"Post":     post,
	}

	if err := s.templates["detail.html"].ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Site) Faq(w http.ResponseWriter, r *http.Request) {
	items, err := getFaqItems(s.db)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Title":    "FAQ",
		"Settings": loadSiteSettings(s.db),
		"Items":    items,
		"Tags":     faqTags(items),
	}

	if err := s.templates["faq.html"].ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Site) Team(w http.ResponseWriter, r *http.Request) {
	members, err := getTeamMembers(s.db)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Title":    "Team",
		"Settings": loadSiteSettings(s.db),
		"Sections": groupTeamSections(members),
	}

	if err := s.templates["team.html"].ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Feed endpoints: plain-text consumers of the resolver's collection.

func (s *Site) RSS(w http.ResponseWriter, r *http.Request) {
	settings := loadSiteSettings(s.db)
	posts := s.resolver.PublicPosts()

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	fmt.Fprint(w, buildRSS(posts, settings))
}

func (s *Site) Sitemap(w http.ResponseWriter, r *http.Request) {
	settings := loadSiteSettings(s.db)
	posts := s.resolver.PublicPosts()

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	fmt.Fprint(w, buildSitemap(posts, settings))
}

func (s *Site) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	fmt.Fprint(w, buildRobots(loadSiteSettings(s.db)))
}

// Admin area

func (s *Site) AdminLogin(w http.ResponseWriter, r *http.Request) {
	// Already signed in: straight to the dashboard
	if s.sessionFromRequest(r) != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		data := map[string]any{
			"Title":     "Admin Login",
			"CSRFToken": ensureCSRFToken(w, r),
		}
		if err := s.templates["login.html"].ExecuteTemplate(w, "base", data); err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !parseFormWithCSRF(w, r) {
		return
	}

	login := strings.TrimSpace(r.FormValue("login"))
	password := r.FormValue("password")
	if login == "" || password == "" {
		s.renderLoginError(w, r, http.StatusBadRequest, "Login and password required.")
		return
	}

	user, err := getAdminUser(s.db, login)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	// Identical response for unknown login and wrong password
	if user == nil || !checkPassword(user.PasswordHash, password) {
		s.renderLoginError(w, r, http.StatusUnauthorized, "Invalid login or password.")
		return
	}

	token, err := s.signer.createSession(user.ID, user.Login)
	if err != nil {
		log.Printf("creating admin session: %v", err)
		http.Error(w, "Server configuration error", http.StatusInternalServerError)
		return
	}

	w.Header().Add("Set-Cookie", sessionCookieHeader(token, int(sessionDuration.Seconds())))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Site) renderLoginError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.WriteHeader(status)
	data := map[string]any{
		"Title":     "Admin Login",
		"Error":     msg,
		"CSRFToken": ensureCSRFToken(w, r),
	}
	if err := s.templates["login.html"].ExecuteTemplate(w, "base", data); err != nil {
		log.Printf("rendering login page: %v", err)
	}
}

func (s *Site) AdminLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !parseFormWithCSRF(w, r) {
		return
	}

	// Sessions are stateless; ending one early means deleting the cookie
	w.Header().Add("Set-Cookie", sessionCookieHeader("", 0))
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func (s *Site) AdminHome(w http.ResponseWriter, r *http.Request) {
	session := s.sessionFromRequest(r)

	data := map[string]any{
		"Title":     "Admin",
		"Session":   session,
		"CSRFToken": ensureCSRFToken(w, r),
	}
	if err := s.templates["admin_home.html"].ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Site) AdminNews(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.adminNewsAction(w, r)
		return
	}

	rows, err := getAllNewsRows(s.db)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Title":     "Manage News",
		"Items":     rows,
		"CSRFToken": ensureCSRFToken(w, r),
	}
	if err := s.templates["admin_news.html"].ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Site) adminNewsAction(w http.ResponseWriter, r *http.Request) {
	if !parseFormWithCSRF(w, r) {
		return
	}

	action := r.FormValue("action")
	slug := slugify(r.FormValue("slug"))

	if slug == "" {
		http.Error(w, "Slug is required", http.StatusBadRequest)
		return
	}

	switch action {
	case "create", "update":
		title := strings.TrimSpace(r.FormValue("title"))
		if title == "" {
			http.Error(w, "Title is required", http.StatusBadRequest)
			return
		}
		row := NewsRow{
			Slug:       slug,
			Title:      title,
			Date:       parseFormDate(r.FormValue("date")),
			Excerpt:    strings.TrimSpace(r.FormValue("excerpt")),
			Body:       strings.TrimSpace(r.FormValue("body")),
			CoverImage: strings.TrimSpace(r.FormValue("cover_image")),
			Tags:       parseTagList(r.FormValue("tags")),
			Hidden:     r.FormValue("hidden") == "on" || r.FormValue("hidden") == "true",
		}

		var err error
		if action == "create" {
			err = insertNewsRow(s.db, row)
		} else {
			err = updateNewsRow(s.db, row)
		}
		if err != nil {
			log.Printf("admin news %s: %v", action, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

	case "delete":
		if err := deleteNewsRow(s.db, slug); err != nil {
			log.Printf("admin news delete: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

	default:
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/admin/news", http.StatusSeeOther)
}

func (s *Site) AdminFaq(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.adminFaqAction(w, r)
		return
	}

	items, err := getFaqItems(s.db)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Title":     "Manage FAQ",
		"Items":     items,
		"CSRFToken": ensureCSRFToken(w, r),
	}
	if err := s.templates["admin_faq.html"].ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Site) adminFaqAction(w http.ResponseWriter, r *http.Request) {
	if !parseFormWithCSRF(w, r) {
		return
	}

	position, _ := strconv.Atoi(r.FormValue("position"))
	item := FaqItem{
		ID:       r.FormValue("id"),
		Question: strings.TrimSpace(r.FormValue("question")),
		Answer:   strings.TrimSpace(r.FormValue("answer")),
		Tag:      strings.ToUpper(strings.TrimSpace(r.FormValue("tag"))),
		Position: position,
	}

	var err error
	switch r.FormValue("action") {
	case "create":
		if item.Question == "" || item.Answer == "" {
			http.Error(w, "Question and answer are required", http.StatusBadRequest)
			return
		}
		_, err = createFaqItem(s.db, item.Question, item.Answer, item.Tag, item.Position)
	case "update":
		err = updateFaqItem(s.db, item)
	case "delete":
		err = deleteFaqItem(s.db, item.ID)
	default:
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}

	if err != nil {
		log.Printf("admin faq action: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/faq", http.StatusSeeOther)
}

func (s *Site) AdminTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.adminTeamAction(w, r)
		return
	}

	members, err := getTeamMembers(s.db)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Title":     "Manage Team",
		"Members":   members,
		"CSRFToken": ensureCSRFToken(w, r),
	}
	if err := s.templates["admin_team.html"].ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Site) adminTeamAction(w http.ResponseWriter, r *http.Request) {
	if !parseFormWithCSRF(w, r) {
		return
	}

	position, _ := strconv.Atoi(r.FormValue("position"))
	member := TeamMember{
		ID:          r.FormValue("id"),
		Section:     strings.TrimSpace(r.FormValue("section")),
		Name:        strings.TrimSpace(r.FormValue("name")),
		Role:        strings.TrimSpace(r.FormValue("role")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Avatar:      strings.TrimSpace(r.FormValue("avatar")),
		Tags:        parseTagList(r.FormValue("tags")),
		Position:    position,
	}

	var err error
	switch r.FormValue("action") {
	case "create":
		if member.Section == "" || member.Name == "" {
			http.Error(w, "Section and name are required", http.StatusBadRequest)
			return
		}
		err = insertTeamMember(s.db, member, member.Position)
	case "update":
		err = updateTeamMember(s.db, member)
	case "delete":
		err = deleteTeamMember(s.db, member.ID)
	default:
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}

	if err != nil {
		log.Printf("admin team action: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/team", http.StatusSeeOther)
}

func (s *Site) AdminSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if !parseFormWithCSRF(w, r) {
			return
		}
		for _, key := range []string{"site_base_url", "site_title", "site_description", "site_intro"} {
			if err := setSetting(s.db, key, strings.TrimSpace(r.FormValue(key))); err != nil {
				log.Printf("admin settings: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Title":     "Site Settings",
		"Settings":  loadSiteSettings(s.db),
		"CSRFToken": ensureCSRFToken(w, r),
	}
	if err := s.templates["admin_settings.html"].ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Form helpers

var slugCleaner = regexp.MustCompile(`[^a-z0-9-]+`)

func slugify(raw string) string {
	slug := strings.ToLower(strings.TrimSpace(raw))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugCleaner.ReplaceAllString(slug, "")
	return strings.Trim(slug, "-")
}

func parseTagList(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseFormDate(raw string) time.Time {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}
