package types

import "errors"

// Store defines the interface for the satchel data store. Callers open the
// store against a database file, perform operations, and close it when done.
// Every operation is a self-contained call; the store manages connections
// internally.
type Store interface {
	// Open initializes the store: creates the database file if absent,
	// applies the schema, and runs startup migrations. Idempotent across
	// process runs; returns ErrAlreadyOpen if called while already open.
	Open(config Config) error

	// Close releases the underlying database handle. Idempotent: multiple
	// calls succeed. After Close, operations return ErrStoreClosed.
	Close() error

	// AddUser creates a user together with its empty progress record and
	// returns the new user ID. Returns ErrDuplicateUsername if the username
	// is already taken.
	AddUser(username, passwordHash string, profile *Profile, isAdmin bool) (int64, error)

	// GetUser returns the user with the given username.
	// Returns ErrNotFound if no such user exists.
	GetUser(username string) (*User, error)

	// GetUserByID returns the user with the given ID.
	// Returns ErrNotFound if no such user exists.
	GetUserByID(id int64) (*User, error)

	// GetAllUsers returns every user, newest first.
	GetAllUsers() ([]*User, error)

	// UpdateLastLogin stamps the user's last_login with the current time.
	UpdateLastLogin(id int64) error

	// UpdateUserProfile overwrites all profile fields for the user.
	UpdateUserProfile(id int64, profile Profile) error

	// SetAdminStatus grants or revokes admin rights for the user.
	SetAdminStatus(id int64, isAdmin bool) error

	// ResetUserPassword replaces the user's password hash and records a
	// password_reset event.
	ResetUserPassword(id int64, newHash string) error

	// UserProgress returns the user's progress snapshot. A user without a
	// progress row gets a zero-value snapshot, not an error.
	UserProgress(userID int64) (*Progress, error)

	// UpdateUserProgress overwrites points and all three collections and
	// refreshes the last_updated timestamp.
	UpdateUserProgress(userID int64, points int, tutorials, challenges, emojis []string) error

	// LogEvent appends an activity event. Failures are logged and
	// suppressed; event logging never blocks the operation it annotates.
	LogEvent(userID int64, eventType, details string)

	// UserEvents returns the user's most recent events, newest first,
	// bounded by limit. A non-positive limit uses DefaultEventLimit.
	UserEvents(userID int64, limit int) ([]*Event, error)

	// CreateCertificate issues a certificate of the given type and returns
	// its unique verification code.
	CreateCertificate(userID int64, certificateType string) (string, error)

	// CompleteCertificate marks the certificate with the given code as
	// completed. Returns ErrNotFound if the code matches no certificate.
	CompleteCertificate(code string) error

	// UserCertificates returns the user's certificates, most recently
	// issued first.
	UserCertificates(userID int64) ([]*Certificate, error)

	// VerifyCertificate resolves a code to the certificate and its owner's
	// profile. An unknown code yields IsValid=false, not an error.
	VerifyCertificate(code string) (*Verification, error)

	// ImportLegacyJSON imports users and progress from the legacy flat-file
	// layout in dir, routing each record through AddUser and
	// UpdateUserProgress.
	ImportLegacyJSON(dir string) (*ImportResult, error)

	// ImportLegacyIfEmpty runs ImportLegacyJSON only when the store holds
	// zero users, so repeated startups never double-import.
	ImportLegacyIfEmpty(dir string) (*ImportResult, error)
}

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)

// Record operation errors.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrInvalidID         = errors.New("invalid record ID")
	ErrUsernameEmpty     = errors.New("username must not be empty")
)
