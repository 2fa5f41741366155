// Startup migrations reconciling older database files with the current
// schema. Both steps are idempotent and run on every Open.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// runMigrations applies the ad-hoc migrations in order: first the is_admin
// column add, then the admin bootstrap.
func runMigrations(db *sql.DB, log *slog.Logger) error {
	if err := ensureAdminColumn(db, log); err != nil {
		return err
	}
	return bootstrapAdmin(db, log)
}

// ensureAdminColumn adds the is_admin column to users if it is missing.
// Databases created before the column existed lack it; the probe query fails
// on those and succeeds (or finds no rows) everywhere else.
func ensureAdminColumn(db *sql.DB, log *slog.Logger) error {
	var probe sql.NullInt64
	err := db.QueryRow("SELECT is_admin FROM users LIMIT 1").Scan(&probe)
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return nil
	}

	log.Info("migration: adding is_admin column to users")
	if _, err := db.Exec("ALTER TABLE users ADD COLUMN is_admin INTEGER DEFAULT 0"); err != nil {
		return fmt.Errorf("adding is_admin column: %w", err)
	}
	return nil
}

// bootstrapAdmin promotes the first user (lowest ID) to admin when the table
// holds users but no admin. Runs at most once per database: afterwards the
// admin count is non-zero, so re-running changes nothing.
func bootstrapAdmin(db *sql.DB, log *slog.Logger) error {
	var admins int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE is_admin = 1").Scan(&admins); err != nil {
		return fmt.Errorf("counting admins: %w", err)
	}
	if admins > 0 {
		return nil
	}

	var id int64
	err := db.QueryRow("SELECT id FROM users ORDER BY id LIMIT 1").Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // no users yet; nothing to promote
	}
	if err != nil {
		return fmt.Errorf("selecting bootstrap admin: %w", err)
	}

	if _, err := db.Exec("UPDATE users SET is_admin = 1 WHERE id = ?", id); err != nil {
		return fmt.Errorf("promoting bootstrap admin: %w", err)
	}
	log.Info("migration: promoted first user to admin", "user_id", id)
	return nil
}
