package main

import (
	"context"
	"log"
	"os"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/joho/godotenv"
	"github.com/voxology/assistant-backend/internal/infrastructure/clients/postgres"
	"github.com/voxology/assistant-backend/pkg/config"
)

// Seeds the identity store with demo patients for local development.
// Run with RESET_DB=true to wipe and recreate the users table first.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping users table before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `DROP TABLE IF EXISTS users`); err != nil {
			log.Fatalf("Failed to drop users table: %v", err)
		}
	}

	_, err = pgClient.DB().ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            SERIAL PRIMARY KEY,
			first_name    TEXT NOT NULL,
			last_name     TEXT NOT NULL,
			date_of_birth DATE NOT NULL,
			email         TEXT NOT NULL,
			phone_number  TEXT,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		log.Fatalf("Failed to create users table: %v", err)
	}

	db := goqu.New("postgres", pgClient.DB())

	demoUsers := []goqu.Record{
		{"first_name": "Maria", "last_name": "Lopez", "date_of_birth": "1985-03-12", "email": "maria.lopez@example.com", "phone_number": "+15550100"},
		{"first_name": "James", "last_name": "Carter", "date_of_birth": "1978-11-02", "email": "james.carter@example.com", "phone_number": "+15550101"},
		{"first_name": "Aisha", "last_name": "Bello", "date_of_birth": "1992-06-25", "email": "aisha.bello@example.com", "phone_number": "+15550102"},
		{"first_name": "Wei", "last_name": "Zhang", "date_of_birth": "1969-01-30", "email": "wei.zhang@example.com", "phone_number": nil},
	}

	for _, record := range demoUsers {
		query, args, err := db.Insert("users").Rows(record).ToSQL()
		if err != nil {
			log.Fatalf("Failed to build insert: %v", err)
		}
		if _, err := pgClient.DB().ExecContext(ctx, query, args...); err != nil {
			log.Printf("Failed to seed user %v %v: %v", record["first_name"], record["last_name"], err)
		}
	}

	log.Printf("Seeded %d demo users", len(demoUsers))
}
