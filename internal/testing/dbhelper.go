// Package testing holds helpers shared by integration tests.
package testing

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/vvka-141/csv2table/internal/db"
	"github.com/vvka-141/csv2table/internal/testinfra"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// TestConnEnv overrides the auto-started container.
const TestConnEnv = "CSV2TABLE_TEST_CONN"

var (
	containerOnce sync.Once
	containerConn string
	containerErr  error
)

func getOrStartContainer() (string, error) {
	containerOnce.Do(func() {
		ctr, err := testinfra.StartPostgres(context.Background())
		if err != nil {
			containerErr = err
			return
		}
		containerConn = ctr.ConnString
	})
	return containerConn, containerErr
}

// GetTestConnectionString returns $CSV2TABLE_TEST_CONN or the URI of a
// shared PostgreSQL container, skipping the test if neither is available.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv(TestConnEnv); connString != "" {
		return connString
	}

	connString, err := getOrStartContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", TestConnEnv, err)
	}
	return connString
}

// SkipIfShort skips the test in -short mode.
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString and
// returns the parsed connection.
func RequireDatabase(t *testing.T) *csv2table.ConnectionConfig {
	t.Helper()

	SkipIfShort(t)
	cfg, err := db.ParseConnectionString(GetTestConnectionString(t))
	if err != nil {
		t.Fatalf("parse test connection string: %v", err)
	}
	return cfg
}

// UniqueTableName returns a table name no other test uses and drops the
// table when the test ends. Names are double-quoted in the cleanup, so
// this suits PostgreSQL and SQLite.
func UniqueTableName(t *testing.T, cfg *csv2table.ConnectionConfig, prefix string) string {
	t.Helper()

	name := fmt.Sprintf("%s_%s", prefix, uuid.NewString()[:8])
	t.Cleanup(func() {
		conn := Open(t, cfg)
		defer conn.Close()
		conn.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, name)) //nolint:errcheck
	})
	return name
}

// Open connects to the test database with the standard connector.
func Open(t *testing.T, cfg *csv2table.ConnectionConfig) *sql.DB {
	t.Helper()

	connector, err := db.NewConnector(cfg, nil)
	if err != nil {
		t.Fatalf("create connector: %v", err)
	}
	conn, err := connector.Connect(context.Background())
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	return conn
}
