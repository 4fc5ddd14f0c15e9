package main

import (
	"testing"
)

func TestInitDB_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	// Running the schema again must not fail or wipe data
	if err := insertNewsRow(db, NewsRow{Slug: "keep", Title: "Keep"}); err != nil {
		t.Fatalf("inserting row: %v", err)
	}
	if err := initDB(db); err != nil {
		t.Fatalf("second initDB() error: %v", err)
	}

	row, err := getNewsRow(db, "keep")
	if err != nil {
		t.Fatalf("getNewsRow() error: %v", err)
	}
	if row == nil {
		t.Error("expected data to survive a re-init")
	}
}

func TestSeedAdminUser(t *testing.T) {
	t.Setenv("ADMIN_LOGIN", "sora")
	t.Setenv("ADMIN_PASSWORD", "letmein")

	db := setupTestDB(t)
	if err := seedAdminUser(db); err != nil {
		t.Fatalf("seedAdminUser() error: %v", err)
	}

	user, err := getAdminUser(db, "sora")
	if err != nil {
		t.Fatalf("getAdminUser() error: %v", err)
	}
	if user == nil {
		t.Fatal("expected seeded admin user")
	}
	if user.ID == "" {
		t.Error("expected generated user id")
	}
	if !checkPassword(user.PasswordHash, "letmein") {
		t.Error("expected seeded password to verify")
	}

	// Seeding again must not duplicate or overwrite
	if err := seedAdminUser(db); err != nil {
		t.Fatalf("second seedAdminUser() error: %v", err)
	}
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM admin_users").Scan(&count); err != nil {
		t.Fatalf("counting admin users: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 admin user, got %d", count)
	}
}

func TestSeedAdminUser_NoEnv(t *testing.T) {
	t.Setenv("ADMIN_LOGIN", "")
	t.Setenv("ADMIN_PASSWORD", "")

	db := setupTestDB(t)
	if err := seedAdminUser(db); err != nil {
		t.Fatalf("seedAdminUser() error: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM admin_users").Scan(&count); err != nil {
		t.Fatalf("counting admin users: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no seeded users without env, got %d", count)
	}
}

func TestSeedFaq(t *testing.T) {
	db := setupTestDB(t)
	if err := seedFaq(db); err != nil {
		t.Fatalf("seedFaq() error: %v", err)
	}

	items, err := getFaqItems(db)
	if err != nil {
		t.Fatalf("getFaqItems() error: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected seeded faq items")
	}

	// Seeding again must not duplicate
	before := len(items)
	if err := seedFaq(db); err != nil {
		t.Fatalf("second seedFaq() error: %v", err)
	}
	items, _ = getFaqItems(db)
	if len(items) != before {
		t.Errorf("expected %d items after re-seed, got %d", before, len(items))
	}
}

func TestSeedTeam(t *testing.T) {
	db := setupTestDB(t)
	if err := seedTeam(db); err != nil {
		t.Fatalf("seedTeam() error: %v", err)
	}

	members, err := getTeamMembers(db)
	if err != nil {
		t.Fatalf("getTeamMembers() error: %v", err)
	}
	if len(members) == 0 {
		t.Fatal("expected seeded team members")
	}

	sections := groupTeamSections(members)
	if len(sections) == 0 {
		t.Error("expected at least one team section")
	}
}
