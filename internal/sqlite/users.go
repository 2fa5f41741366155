// User account operations: creation, lookup, profile and credential updates.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/satchel-io/satchel/pkg/types"
)

// userColumns is the column list hydrateUser expects, in scan order.
const userColumns = `id, username, password_hash, full_name, parent_name,
	dob, class, section, school, is_admin, created_at, last_login`

// AddUser creates a user row together with its empty progress row in a
// single transaction, so a progress insert failure can never leave an
// orphaned user. The user_created event is logged after commit; its failure
// never affects the returned ID.
func (s *Store) AddUser(username, passwordHash string, profile *types.Profile, isAdmin bool) (int64, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}
	if username == "" {
		return 0, types.ErrUsernameEmpty
	}

	var p types.Profile
	if profile != nil {
		p = *profile
	}
	now := nowUTC()

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT 1 FROM users WHERE username = ?", username).Scan(&exists)
	if err == nil {
		return 0, types.ErrDuplicateUsername
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("checking username: %w", err)
	}

	res, err := tx.Exec(
		`INSERT INTO users (username, password_hash, full_name, parent_name,
			dob, class, section, school, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		username, passwordHash, p.FullName, p.ParentName,
		p.DOB, p.Class, p.Section, p.School, boolToInt(isAdmin), now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, types.ErrDuplicateUsername
		}
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new user ID: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO user_progress (user_id, last_updated) VALUES (?, ?)", id, now,
	); err != nil {
		return 0, fmt.Errorf("inserting progress row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing user: %w", err)
	}

	s.LogEvent(id, types.EventUserCreated, fmt.Sprintf("User account created for %s", username))

	return id, nil
}

// GetUser returns the user with the given username, or ErrNotFound.
func (s *Store) GetUser(username string) (*types.User, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username)
	user, err := hydrateUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting user %q: %w", username, err)
	}
	return user, nil
}

// GetUserByID returns the user with the given ID, or ErrNotFound.
func (s *Store) GetUserByID(id int64) (*types.User, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, types.ErrInvalidID
	}

	row := db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := hydrateUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	return user, nil
}

// GetAllUsers returns every user ordered by creation time, newest first.
func (s *Store) GetAllUsers() ([]*types.User, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT " + userColumns + " FROM users ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := []*types.User{}
	for rows.Next() {
		user, err := hydrateUser(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

// UpdateLastLogin stamps the user's last_login with the current time.
func (s *Store) UpdateLastLogin(id int64) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec("UPDATE users SET last_login = ? WHERE id = ?", nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return requireRowAffected(res)
}

// UpdateUserProfile overwrites all profile fields for the user. Fields the
// caller leaves empty are stored as empty strings.
func (s *Store) UpdateUserProfile(id int64, profile types.Profile) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec(
		`UPDATE users
		SET full_name = ?, parent_name = ?, dob = ?, class = ?, section = ?, school = ?
		WHERE id = ?`,
		profile.FullName, profile.ParentName, profile.DOB,
		profile.Class, profile.Section, profile.School, id,
	)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	return requireRowAffected(res)
}

// SetAdminStatus grants or revokes admin rights for the user.
func (s *Store) SetAdminStatus(id int64, isAdmin bool) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec("UPDATE users SET is_admin = ? WHERE id = ?", boolToInt(isAdmin), id)
	if err != nil {
		return fmt.Errorf("setting admin status: %w", err)
	}
	return requireRowAffected(res)
}

// ResetUserPassword replaces the user's password hash and records a
// password_reset event. The caller supplies the hash; the store never
// hashes passwords itself.
func (s *Store) ResetUserPassword(id int64, newHash string) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", newHash, id)
	if err != nil {
		return fmt.Errorf("resetting password: %w", err)
	}
	if err := requireRowAffected(res); err != nil {
		return err
	}

	s.LogEvent(id, types.EventPasswordReset, "Password was reset by administrator")
	return nil
}

// countUsers returns the total number of user rows.
func (s *Store) countUsers() (int, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateUser converts a SQLite row into a *types.User snapshot.
func hydrateUser(row rowScanner) (*types.User, error) {
	var (
		u         types.User
		isAdmin   int
		createdAt string
		lastLogin sql.NullString
	)
	if err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash,
		&u.Profile.FullName, &u.Profile.ParentName, &u.Profile.DOB,
		&u.Profile.Class, &u.Profile.Section, &u.Profile.School,
		&isAdmin, &createdAt, &lastLogin,
	); err != nil {
		return nil, err
	}

	u.IsAdmin = isAdmin != 0

	var err error
	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	u.LastLogin, err = parseNullTime(lastLogin)
	if err != nil {
		return nil, fmt.Errorf("parsing last_login: %w", err)
	}
	return &u, nil
}

// requireRowAffected maps a zero-row UPDATE to ErrNotFound.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure, used to map a racing duplicate insert to ErrDuplicateUsername.
func isUniqueViolation(err error) bool {
	var se *sqlite3.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
