package database

import (
	"database/sql"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// InitDB opens the Postgres pool from DB_* environment variables and verifies
// the connection. Startup aborts on failure.
func InitDB() {
	host := envOr("DB_HOST", "localhost")
	name := envOr("DB_NAME", "portfolio")

	settings := []string{
		"host=" + host,
		"port=" + envOr("DB_PORT", "5432"),
		"user=" + envOr("DB_USER", "postgres"),
		"password=" + envOr("DB_PASSWORD", "password"),
		"dbname=" + name,
		"sslmode=" + envOr("DB_SSLMODE", "disable"),
	}

	var err error
	DB, err = sql.Open("postgres", strings.Join(settings, " "))
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}

	DB.SetMaxOpenConns(envIntOr("DB_MAX_OPEN_CONNS", 25))
	DB.SetMaxIdleConns(envIntOr("DB_MAX_IDLE_CONNS", 25))
	DB.SetConnMaxIdleTime(time.Duration(envIntOr("DB_CONN_MAX_IDLE_MINUTES", 5)) * time.Minute)
	DB.SetConnMaxLifetime(time.Duration(envIntOr("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute)

	if err := DB.Ping(); err != nil {
		log.Fatal("Failed to reach database: ", err)
	}

	log.Printf("Database ready: %s on %s", name, host)
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("Invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return value
}

// CloseDB releases the connection pool at shutdown.
func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
