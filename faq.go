package main

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

func getFaqItems(db *sql.DB) ([]FaqItem, error) {
	rows, err := db.Query(`
		SELECT id, question, answer, tag, position
		FROM faq_items
		ORDER BY position ASC, question ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []FaqItem
	for rows.Next() {
		var item FaqItem
		if err := rows.Scan(&item.ID, &item.Question, &item.Answer, &item.Tag, &item.Position); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// faqTags returns the distinct tags across items, sorted, for the filter bar.
func faqTags(items []FaqItem) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, item := range items {
		if item.Tag == "" || seen[item.Tag] {
			continue
		}
		seen[item.Tag] = true
		tags = append(tags, item.Tag)
	}
	sort.Strings(tags)
	return tags
}

func createFaqItem(db *sql.DB, question, answer, tag string, position int) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO faq_items (id, question, answer, tag, position)
		VALUES (?, ?, ?, ?, ?)`, id, question, answer, tag, position)
	if err != nil {
		return "", fmt.Errorf("creating faq item: %w", err)
	}
	return id, nil
}

func updateFaqItem(db *sql.DB, item FaqItem) error {
	_, err := db.Exec(`
		UPDATE faq_items
		SET question = ?, answer = ?, tag = ?, position = ?
		WHERE id = ?`, item.Question, item.Answer, item.Tag, item.Position, item.ID)
	if err != nil {
		return fmt.Errorf("updating faq item %s: %w", item.ID, err)
	}
	return nil
}

func deleteFaqItem(db *sql.DB, id string) error {
	_, err := db.Exec("DELETE FROM faq_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting faq item %s: %w", id, err)
	}
	return nil
}
