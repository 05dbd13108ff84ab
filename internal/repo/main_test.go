package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/bikeshare-stats/internal/repo"
	"github.com/pkordes/bikeshare-stats/testutil"
)

// TestMain runs before any test in the repo_test package.
// It applies all pending migrations to the test database so individual tests
// never need to think about schema state. CSV tests need no database and run
// either way.
func TestMain(m *testing.M) {
	if os.Getenv(testutil.DSNEnv) == "" {
		os.Exit(m.Run())
	}

	// goose needs database/sql, and TestMain has no *testing.T for testutil.NewSQLDB.
	db := testutil.MustOpenSQLDB(os.Getenv(testutil.DSNEnv))

	if _, err := repo.Migrate(context.Background(), db); err != nil {
		db.Close()
		log.Fatalf("TestMain: run migrations: %v", err)
	}
	db.Close()

	os.Exit(m.Run())
}
