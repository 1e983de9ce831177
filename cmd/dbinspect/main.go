// Package main provides a read-only inspection tool for the Savorly
// database: row counts per table plus a few integrity checks. Useful when
// debugging a data directory without starting the server.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = "./data"
	}
	dbPath := filepath.Join(dataPath, "savorly.db")

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	tables := []string{
		"users", "sessions", "tags", "ingredients",
		"recipes", "recipe_tags", "recipe_ingredients",
		"user_recipe_relations", "subscriptions",
	}
	for _, table := range tables {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			fmt.Printf("  %-22s error: %v\n", table, err)
			continue
		}
		fmt.Printf("  %-22s %d\n", table, count)
	}

	fmt.Println()
	fmt.Println("=== Integrity Checks ===")
	fmt.Println()

	checks := []struct {
		name  string
		query string
	}{
		{
			"recipes without ingredients",
			`SELECT COUNT(*) FROM recipes r
			 WHERE NOT EXISTS (SELECT 1 FROM recipe_ingredients ri WHERE ri.recipe_id = r.id)`,
		},
		{
			"recipes without tags",
			`SELECT COUNT(*) FROM recipes r
			 WHERE NOT EXISTS (SELECT 1 FROM recipe_tags rt WHERE rt.recipe_id = r.id)`,
		},
		{
			// Timestamps are stored as RFC 3339 UTC strings, so a string
			// comparison against "now" in the same format is correct.
			"expired sessions still stored",
			`SELECT COUNT(*) FROM sessions
			 WHERE expires_at < strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		},
	}
	for _, check := range checks {
		var count int
		if err := db.QueryRow(check.query).Scan(&count); err != nil {
			fmt.Printf("  %-32s error: %v\n", check.name, err)
			continue
		}
		marker := "ok"
		if count > 0 {
			marker = fmt.Sprintf("%d found", count)
		}
		fmt.Printf("  %-32s %s\n", check.name, marker)
	}
}
