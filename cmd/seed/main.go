package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/user-management-api/config"
	"github.com/oksasatya/user-management-api/pkg/helpers"
)

// Seeds a handful of local dev accounts. Safe to run repeatedly.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	seeds := []struct {
		name  string
		email string
	}{
		{"Demo Admin", "admin@example.com"},
		{"Alice Johnson", "alice@example.com"},
		{"Bob Santoso", "bob@example.com"},
	}

	hash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	for _, s := range seeds {
		var id int64
		err := db.QueryRow(`
			INSERT INTO users (name, email, password_hash)
			VALUES ($1, $2, $3)
			ON CONFLICT (lower(email)) DO UPDATE SET name = EXCLUDED.name, updated_at = now()
			RETURNING id
		`, s.name, s.email, hash).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", s.email, err)
		}
		fmt.Printf("seeded user: id=%d email=%s password=password123\n", id, s.email)
	}
}
