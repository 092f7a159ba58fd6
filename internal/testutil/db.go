// Package testutil opens the integration-test database. Tests that need
// Postgres skip themselves unless TEST_DB_HOST is set.
package testutil

import (
	"database/sql"
	"os"
	"testing"

	"github.com/postly/postly/internal/config"
	"github.com/postly/postly/internal/db"
)

func OpenTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "postly",
		Password: "postly_pass",
		DBName:   "postly_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	ResetTables(t, conn)
	return conn, func() {
		_ = conn.Close()
	}
}

func ResetTables(t *testing.T, conn *sql.DB) {
	t.Helper()
	for _, table := range []string{"posts", "users"} {
		if _, err := conn.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("reset %s: %v", table, err)
		}
	}
}
