package shared

import (
	"database/sql"
	"testing"
)

func newMigratedDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	return count > 0
}

func TestRunMigrations(t *testing.T) {
	t.Run("creates the schema", func(t *testing.T) {
		db := newMigratedDB(t)

		for _, table := range []string{"schema_migrations", "session_tokens", "favorites"} {
			if !tableExists(t, db, table) {
				t.Errorf("expected table %s to exist", table)
			}
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		db := newMigratedDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}

		var applied int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
			t.Fatalf("failed to count migrations: %v", err)
		}
		if applied != 1 {
			t.Errorf("expected 1 applied migration, got %d", applied)
		}
	})
}

func TestRollbackMigration(t *testing.T) {
	t.Run("drops the schema", func(t *testing.T) {
		db := newMigratedDB(t)

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("rollback failed: %v", err)
		}

		if tableExists(t, db, "session_tokens") || tableExists(t, db, "favorites") {
			t.Error("expected tables to be dropped")
		}

		var applied int
		db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied)
		if applied != 0 {
			t.Errorf("expected no applied migrations, got %d", applied)
		}
	})

	t.Run("nothing to roll back", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := db.Exec("CREATE TABLE schema_migrations (version INTEGER PRIMARY KEY)"); err != nil {
			t.Fatalf("failed to create table: %v", err)
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error with no applied migrations")
		}
	})
}
