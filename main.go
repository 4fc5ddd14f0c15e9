package main

import (
	"database/sql"
	"html/template"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

type Site struct {
	db        *sql.DB
	resolver  *Resolver
	signer    *tokenSigner
	templates map[string]*template.Template
}

func NewSite(db *sql.DB, static []Post) *Site {
	return &Site{
		db:        db,
		resolver:  newResolver(&sqlPostStore{db: db}, static),
		signer:    newTokenSigner(),
		templates: loadTemplates(),
	}
}

func main() {
	godotenv.Load()

	initAuth()

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "site.db"
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err = initDB(db); err != nil {
		log.Fatalf("initializing database: %v", err)
	}

	if err = seedAdminUser(db); err != nil {
		log.Fatalf("seeding admin user: %v", err)
	}

	if err = seedFaq(db); err != nil {
		log.Fatalf("seeding faq: %v", err)
	}

	if err = seedTeam(db); err != nil {
		log.Fatalf("seeding team: %v", err)
	}

	static, err := loadStaticPosts()
	if err != nil {
		log.Fatalf("loading bundled posts: %v", err)
	}

	site := NewSite(db, static)

	fs := http.FileServer(http.Dir("static"))
	http.Handle("/static/", http.StripPrefix("/static/", fs))

	// Public routes
	http.HandleFunc("/", site.Home)
	http.HandleFunc("/news", site.NewsIndex)
	http.HandleFunc("/news/{slug}", site.NewsDetail)
	http.HandleFunc("/faq", site.Faq)
	http.HandleFunc("/team", site.Team)
	http.HandleFunc("/rss.xml", site.RSS)
	http.HandleFunc("/sitemap.xml", site.Sitemap)
	http.HandleFunc("/robots.txt", site.Robots)

	// Admin routes
	http.HandleFunc("/admin/login", site.AdminLogin)
	http.HandleFunc("/admin/logout", site.AdminLogout)
	http.HandleFunc("/admin", site.requireAdmin(site.AdminHome))
	http.HandleFunc("/admin/news", site.requireAdmin(site.AdminNews))
	http.HandleFunc("/admin/faq", site.requireAdmin(site.AdminFaq))
	http.HandleFunc("/admin/team", site.requireAdmin(site.AdminTeam))
	http.HandleFunc("/admin/settings", site.requireAdmin(site.AdminSettings))

	log.Println("Server starting on :8080")
	log.Fatal(http.ListenAndServe(":8080", nil))
}
