package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS activity_registrations CASCADE`,
		`DROP TABLE IF EXISTS activities CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			full_name VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'volunteer',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS activities (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			date TIMESTAMPTZ,
			location VARCHAR(255),
			image TEXT,
			participants_current INTEGER NOT NULL DEFAULT 0,
			participants_max INTEGER NOT NULL DEFAULT 0,
			participants_percentage INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS activity_registrations (
			id BIGSERIAL PRIMARY KEY,
			activity_id BIGINT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
			user_id BIGINT REFERENCES users(id) ON DELETE CASCADE,
			full_name VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL,
			email VARCHAR(255) NOT NULL,
			birth_date TIMESTAMPTZ,
			gender VARCHAR(10) NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			education VARCHAR(100) NOT NULL DEFAULT '',
			school VARCHAR(255) NOT NULL DEFAULT '',
			major VARCHAR(255) NOT NULL DEFAULT '',
			occupation VARCHAR(255) NOT NULL DEFAULT '',
			company VARCHAR(255) NOT NULL DEFAULT '',
			experience TEXT NOT NULL DEFAULT '',
			skills TEXT NOT NULL DEFAULT '',
			participation_ability TEXT NOT NULL DEFAULT '',
			status VARCHAR(10) NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'approved', 'rejected')),
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// One registration per (activity, user) when the user is known
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_registrations_activity_user
			ON activity_registrations(activity_id, user_id)
			WHERE user_id IS NOT NULL`,

		`CREATE INDEX IF NOT EXISTS idx_registrations_activity_status
			ON activity_registrations(activity_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_user_id
			ON activity_registrations(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_created_at
			ON activity_registrations(created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", getTableName(query))
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	userQuery := `
		INSERT INTO users (email, full_name, role) VALUES
		('admin@example.com', 'Site Admin', 'admin'),
		('leader@example.com', 'Team Leader', 'leader'),
		('volunteer@example.com', 'First Volunteer', 'volunteer')
		ON CONFLICT (email) DO NOTHING
	`

	if _, err := conn.Exec(ctx, userQuery); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	fmt.Println("  Seeded 3 users")

	activityQuery := `
		INSERT INTO activities (title, description, date, location, participants_max) VALUES
		('Beach Cleanup', 'Collect litter along the waterfront', NOW() + INTERVAL '14 days', 'North Beach', 30),
		('Food Bank Sorting', 'Sort and pack donated food', NOW() + INTERVAL '7 days', 'Community Center', 20),
		('Tree Planting', 'Plant saplings in the city park', NOW() + INTERVAL '30 days', 'Riverside Park', 50)
	`

	if _, err := conn.Exec(ctx, activityQuery); err != nil {
		return fmt.Errorf("failed to seed activities: %w", err)
	}
	fmt.Println("  Seeded 3 activities")

	return nil
}

func getTableName(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
