// Certificate operations: issuing, one-way completion, per-user listing,
// and code verification against the owner's profile.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/satchel-io/satchel/pkg/types"
)

// CreateCertificate issues a certificate of the given type and returns the
// generated verification code. Codes are random UUIDs, unguessable and
// unique for any realistic population.
func (s *Store) CreateCertificate(userID int64, certificateType string) (string, error) {
	db, err := s.handle()
	if err != nil {
		return "", err
	}

	code := uuid.NewString()
	_, err = db.Exec(
		"INSERT INTO certificates (user_id, certificate_type, certificate_code, issue_date) VALUES (?, ?, ?, ?)",
		userID, certificateType, code, nowUTC(),
	)
	if err != nil {
		return "", fmt.Errorf("inserting certificate: %w", err)
	}

	s.LogEvent(userID, types.EventCertificateCreated,
		fmt.Sprintf("Certificate of type %q created with code %s", certificateType, code))

	return code, nil
}

// CompleteCertificate marks the certificate with the given code as
// completed. Returns ErrNotFound when the code matches no certificate.
// Completing an already-completed certificate is a no-op: the original
// completion date stands and no event is logged.
func (s *Store) CompleteCertificate(code string) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	var (
		id              int64
		userID          int64
		certificateType string
		completedDate   sql.NullString
	)
	err = db.QueryRow(
		"SELECT id, user_id, certificate_type, completed_date FROM certificates WHERE certificate_code = ?",
		code,
	).Scan(&id, &userID, &certificateType, &completedDate)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("looking up certificate: %w", err)
	}
	if completedDate.Valid {
		return nil // already completed; the transition happens once
	}

	if _, err := db.Exec(
		"UPDATE certificates SET completed_date = ? WHERE id = ?", nowUTC(), id,
	); err != nil {
		return fmt.Errorf("completing certificate: %w", err)
	}

	s.LogEvent(userID, types.EventCertificateCompleted,
		fmt.Sprintf("Certificate of type %q with code %s completed", certificateType, code))

	return nil
}

// UserCertificates returns the user's certificates, most recently issued
// first, each annotated with the derived IsCompleted flag.
func (s *Store) UserCertificates(userID int64) ([]*types.Certificate, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		`SELECT id, user_id, certificate_type, certificate_code, issue_date, completed_date
		FROM certificates
		WHERE user_id = ?
		ORDER BY issue_date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying certificates: %w", err)
	}
	defer rows.Close()

	certificates := []*types.Certificate{}
	for rows.Next() {
		cert, err := hydrateCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating certificate: %w", err)
		}
		certificates = append(certificates, cert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating certificates: %w", err)
	}
	return certificates, nil
}

// VerifyCertificate resolves a code to the certificate joined with its
// owner's username and profile. An unknown code yields IsValid=false and a
// nil error; invalidity is the verification answer, not a failure.
func (s *Store) VerifyCertificate(code string) (*types.Verification, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	var (
		v             types.Verification
		issueDate     string
		completedDate sql.NullString
	)
	err = db.QueryRow(
		`SELECT c.certificate_type, c.issue_date, c.completed_date, c.user_id,
			u.username, u.full_name, u.parent_name, u.dob, u.class, u.section, u.school
		FROM certificates c
		JOIN users u ON c.user_id = u.id
		WHERE c.certificate_code = ?`,
		code,
	).Scan(
		&v.Type, &issueDate, &completedDate, &v.UserID,
		&v.Username, &v.Profile.FullName, &v.Profile.ParentName, &v.Profile.DOB,
		&v.Profile.Class, &v.Profile.Section, &v.Profile.School,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &types.Verification{IsValid: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("verifying certificate: %w", err)
	}

	if v.IssueDate, err = parseTime(issueDate); err != nil {
		return nil, fmt.Errorf("parsing issue_date: %w", err)
	}
	if v.CompletedDate, err = parseNullTime(completedDate); err != nil {
		return nil, fmt.Errorf("parsing completed_date: %w", err)
	}
	v.IsValid = true
	v.IsCompleted = v.CompletedDate != nil
	return &v, nil
}

// hydrateCertificate converts a SQLite row into a *types.Certificate.
func hydrateCertificate(row rowScanner) (*types.Certificate, error) {
	var (
		c             types.Certificate
		issueDate     string
		completedDate sql.NullString
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Type, &c.Code, &issueDate, &completedDate); err != nil {
		return nil, err
	}

	var err error
	if c.IssueDate, err = parseTime(issueDate); err != nil {
		return nil, fmt.Errorf("parsing issue_date: %w", err)
	}
	if c.CompletedDate, err = parseNullTime(completedDate); err != nil {
		return nil, fmt.Errorf("parsing completed_date: %w", err)
	}
	c.IsCompleted = c.CompletedDate != nil
	return &c, nil
}
