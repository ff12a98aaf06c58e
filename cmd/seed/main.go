// seed inserts a demo user and a handful of tasks into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"taskhub/internal/auth"
	"taskhub/internal/infrastructure/postgres"
)

const (
	seedEmail    = "seed@test.local"
	seedName     = "Seed User"
	seedPassword = "secret1"
)

type taskSpec struct {
	title       string
	description string
	completed   bool
}

var tasks = []taskSpec{
	{"Buy milk", "Oat milk if they have it", false},
	{"Write status report", "", false},
	{"Book dentist appointment", "", false},
	{"Water the plants", "Kitchen and balcony", true},
	{"Pay electricity bill", "", true},
	{"Review pull requests", "At least the two oldest ones", false},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	passwordHash, err := auth.NewPasswordHasher().Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user. The hash is only written on first insert so
	// re-runs don't rotate it.
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedName, seedEmail, passwordHash,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	// Insert tasks, skip duplicates on re-runs.
	var inserted, skipped int
	for _, spec := range tasks {
		var desc *string
		if spec.description != "" {
			desc = &spec.description
		}

		tag, err := pool.Exec(ctx, `
			INSERT INTO tasks (user_id, title, description, completed)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (
				SELECT 1 FROM tasks WHERE user_id = $1 AND title = $2
			)`,
			userID, spec.title, desc, spec.completed,
		)
		if err != nil {
			log.Fatalf("insert task %q: %v", spec.title, err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
		} else {
			inserted++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:          %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:       %s\n", userID)
	fmt.Printf("  Tasks created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/api/v1/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println("    # → {\"token\":\"eyJ...\"}")
	fmt.Println()
	fmt.Println("  Step 2 — list tasks:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s 'http://localhost:8080/api/v1/tasks?search=milk' -H \"Authorization: Bearer $JWT\"")
}
