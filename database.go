package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func initDB(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS news_posts (
		slug TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		date DATETIME NOT NULL,
		updated DATETIME,
		excerpt TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		cover_image TEXT,
		tags TEXT NOT NULL DEFAULT '[]',
		hidden BOOLEAN NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS admin_users (
		id TEXT PRIMARY KEY,
		login TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS site_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS faq_items (
		id TEXT PRIMARY KEY,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		tag TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS team_members (
		id TEXT PRIMARY KEY,
		section TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		avatar TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		socials TEXT NOT NULL DEFAULT '[]',
		position INTEGER NOT NULL DEFAULT 0
	);`

	if _, err := db.Exec(schema); err != nil {
		return err
	}

	return migrateDB(db)
}

func migrateDB(db *sql.DB) error {
	// Check if updated_at column exists (added after the first deploy)
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('news_posts') WHERE name='updated_at'`).Scan(&count)
	if err != nil {
		return err
	}

	if count == 0 {
		_, err = db.Exec(`ALTER TABLE news_posts ADD COLUMN updated_at DATETIME`)
		if err != nil {
			return err
		}
	}

	return nil
}

// seedAdminUser creates the initial admin account from ADMIN_LOGIN and
// ADMIN_PASSWORD. Skipped when the account already exists or the env is not
// set, so a running deployment is never overwritten.
func seedAdminUser(db *sql.DB) error {
	login := os.Getenv("ADMIN_LOGIN")
	password := os.Getenv("ADMIN_PASSWORD")
	if login == "" || password == "" {
		log.Println("WARNING: ADMIN_LOGIN/ADMIN_PASSWORD not set, no admin account seeded")
		return nil
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM admin_users WHERE login = ?", login).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO admin_users (id, login, password_hash)
		VALUES (?, ?, ?)`, uuid.NewString(), login, mustHashPassword(password))
	return err
}

func seedFaq(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM faq_items").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []FaqItem{
		{
			Question: "What is Reiryoku Online?",
			Answer:   "A fan-made content mod that brings a spirit-world RPG to the game. Awaken your blade, craft reaper gear, and explore the afterlife districts.",
			Tag:      "ABOUT",
		},
		{
			Question: "How do I install the mod?",
			Answer:   "Download the mod, place the file in the game's mods folder, then enable it in your world settings.",
			Tag:      "INSTALLATION",
		},
		{
			Question: "Is the mod released yet?",
			Answer:   "The mod is in Early Access and actively developed. Follow our Discord for updates and playtest opportunities.",
			Tag:      "DEVELOPMENT",
		},
		{
			Question: "Is this official content?",
			Answer:   "No. This is a fan-made project and we are not affiliated with the license holders.",
			Tag:      "ABOUT",
		},
	}

	for i, item := range items {
		_, err := db.Exec(`
			INSERT INTO faq_items (id, question, answer, tag, position)
			VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), item.Question, item.Answer, item.Tag, i)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedTeam(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM team_members").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	members := []TeamMember{
		{Section: "Leadership", Name: "Sora", Role: "Project Lead & Developer", Tags: []string{"Lead", "Development"}},
		{Section: "Leadership", Name: "Tsu", Role: "Community & Marketing Lead", Tags: []string{"Lead", "Marketing"}},
		{Section: "Art", Name: "Myst", Role: "3D & VFX", Tags: []string{"Art"}},
	}

	for i, m := range members {
		if err := insertTeamMember(db, m, i); err != nil {
			return err
		}
	}
	return nil
}
