package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"optiroute/internal/adapters/cache"
	"optiroute/internal/adapters/repositories"
	"optiroute/internal/api"
	"optiroute/internal/config"
	"optiroute/internal/domain"
	"optiroute/internal/platform/db"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, optional Redis)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driver := config.Get("DB_DRIVER", "sqlite")
	port := config.Get("PORT", "8080")

	tuning, err := config.LoadTuning(config.Get("TUNING_PATH", ""))
	if err != nil {
		log.Fatal(err)
	}

	handle, deps, err := openStore(driver, tuning)
	if err != nil {
		log.Fatal(err)
	}
	defer handle.Close()

	// Redis keeps a capped list of recent results; the server runs
	// fine without it.
	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		deps.Cache = cache.NewRedisRouteCache(client, 50)
		defer client.Close()
	}

	router := api.NewRouter(deps)

	log.Printf("Server listening addr=:%s driver=%s", port, driver)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStore opens the configured database and binds the matching
// repository implementations. SQLite installs the schema (and seeds
// demo data when SEED_PATH points at a file) for local runs; Postgres
// is expected to be provisioned by the dbtool.
func openStore(driver string, tuning domain.Tuning) (*sql.DB, api.Deps, error) {
	deps := api.Deps{Tuning: tuning}

	switch driver {
	case "sqlite":
		handle, err := db.Open("sqlite", config.Get("DB_PATH", "data/app.db"))
		if err != nil {
			return nil, api.Deps{}, err
		}

		if err := repositories.InitSchema(handle); err != nil {
			return nil, api.Deps{}, err
		}
		if seedPath := config.Get("SEED_PATH", ""); seedPath != "" {
			if err := repositories.SeedFromJSON(handle, seedPath); err != nil {
				return nil, api.Deps{}, err
			}
		}

		routes := repositories.NewSqliteRouteRepository(handle)
		deps.Repo = repositories.NewSqliteDeliveryRepository(handle)
		deps.Sink = routes
		deps.History = routes
		return handle, deps, nil

	case "postgres":
		handle, err := db.Open("pgx", config.Get("DATABASE_URL", ""))
		if err != nil {
			return nil, api.Deps{}, err
		}

		routes := repositories.NewSQLRouteRepository(handle)
		deps.Repo = repositories.NewSQLDeliveryRepository(handle)
		deps.Sink = routes
		deps.History = routes
		return handle, deps, nil

	default:
		return nil, api.Deps{}, fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", driver)
	}
}
