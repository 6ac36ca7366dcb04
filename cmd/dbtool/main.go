package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"optiroute/internal/adapters/repositories"
	"optiroute/internal/config"
	"optiroute/internal/platform/db"
)

// dbtool provisions the Postgres schema and seeds demo deliveries.
// The SQLite path self-initializes inside the server; this tool exists
// for the shared-database deployment.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	handle, err := db.Open("pgx", databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer handle.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/deliveries.json")
	if err := initAndSeed(handle, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(handle *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(handle); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	rows, err := repositories.LoadSeed(seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	repo := repositories.NewSQLDeliveryRepository(handle)
	for _, d := range rows {
		if err := repo.SaveDelivery(context.Background(), d); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
	}
	log.Println("Seeding complete.")

	return nil
}
