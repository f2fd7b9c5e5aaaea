package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/yamdb/yamdb/config"
	"github.com/yamdb/yamdb/pkg/helpers"
)

// Seeds an admin account plus a starter catalog for local development.
// The admin confirmation code is printed once; exchange it for a token
// at /api/v1/auth/token.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := getenvDefault("SEED_ADMIN_EMAIL", "admin@yamdb.local")
	username := getenvDefault("SEED_ADMIN_USERNAME", "admin")

	code, err := helpers.GenConfirmationCode()
	if err != nil {
		log.Fatalf("failed to generate confirmation code: %v", err)
	}
	hash, err := helpers.HashSecret(code)
	if err != nil {
		log.Fatalf("failed to hash confirmation code: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = 'admin'
		RETURNING id
	`, username, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s confirmation_code=%s\n", id, email, code)

	categories := [][2]string{
		{"Books", "books"},
		{"Films", "films"},
		{"Music", "music"},
	}
	for _, c := range categories {
		if _, err := db.Exec(`
			INSERT INTO categories (name, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO NOTHING
		`, c[0], c[1]); err != nil {
			log.Fatalf("failed to seed category %s: %v", c[1], err)
		}
	}

	genres := [][2]string{
		{"Drama", "drama"},
		{"Comedy", "comedy"},
		{"Fantasy", "fantasy"},
		{"Rock", "rock"},
	}
	for _, g := range genres {
		if _, err := db.Exec(`
			INSERT INTO genres (name, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO NOTHING
		`, g[0], g[1]); err != nil {
			log.Fatalf("failed to seed genre %s: %v", g[1], err)
		}
	}
	fmt.Printf("seeded %d categories and %d genres\n", len(categories), len(genres))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
