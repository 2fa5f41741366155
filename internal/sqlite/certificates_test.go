// Unit tests for certificate issue, completion, listing, and verification.
package sqlite

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satchel-io/satchel/pkg/types"
)

func TestCreateCertificate(t *testing.T) {
	s := setupStore(t)

	id, err := s.AddUser("ada", "hash", nil, false)
	require.NoError(t, err)

	code, err := s.CreateCertificate(id, "python-basics")
	require.NoError(t, err)

	_, err = uuid.Parse(code)
	require.NoError(t, err, "certificate codes are UUIDs")

	// Codes are unique per certificate.
	other, err := s.CreateCertificate(id, "python-basics")
	require.NoError(t, err)
	assert.NotEqual(t, code, other)

	events, err := s.UserEvents(id, 0)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, types.EventCertificateCreated, events[0].Type)
	assert.Contains(t, events[0].Details, other)
}

func TestCompleteCertificate(t *testing.T) {
	t.Run("marks the certificate completed and logs an event", func(t *testing.T) {
		s := setupStore(t)

		id, err := s.AddUser("ada", "hash", nil, false)
		require.NoError(t, err)
		code, err := s.CreateCertificate(id, "python-basics")
		require.NoError(t, err)

		require.NoError(t, s.CompleteCertificate(code))

		certificates, err := s.UserCertificates(id)
		require.NoError(t, err)
		require.Len(t, certificates, 1)
		assert.True(t, certificates[0].IsCompleted)
		require.NotNil(t, certificates[0].CompletedDate)

		events, err := s.UserEvents(id, 0)
		require.NoError(t, err)
		assert.Equal(t, types.EventCertificateCompleted, events[0].Type)
	})

	t.Run("unknown code returns ErrNotFound", func(t *testing.T) {
		s := setupStore(t)
		err := s.CompleteCertificate("no-such-code")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("completing twice keeps the original date", func(t *testing.T) {
		s := setupStore(t)

		id, err := s.AddUser("ada", "hash", nil, false)
		require.NoError(t, err)
		code, err := s.CreateCertificate(id, "python-basics")
		require.NoError(t, err)

		require.NoError(t, s.CompleteCertificate(code))
		certificates, err := s.UserCertificates(id)
		require.NoError(t, err)
		first := *certificates[0].CompletedDate

		require.NoError(t, s.CompleteCertificate(code))
		certificates, err = s.UserCertificates(id)
		require.NoError(t, err)
		assert.Equal(t, first, *certificates[0].CompletedDate)
	})
}

func TestUserCertificates(t *testing.T) {
	s := setupStore(t)

	id, err := s.AddUser("ada", "hash", nil, false)
	require.NoError(t, err)

	codes := make([]string, 3)
	for i, certType := range []string{"basics", "loops", "functions"} {
		codes[i], err = s.CreateCertificate(id, certType)
		require.NoError(t, err)
	}

	certificates, err := s.UserCertificates(id)
	require.NoError(t, err)
	require.Len(t, certificates, 3)

	// Most recently issued first.
	assert.Equal(t, "functions", certificates[0].Type)
	assert.Equal(t, "basics", certificates[2].Type)
	for _, c := range certificates {
		assert.False(t, c.IsCompleted)
		assert.Nil(t, c.CompletedDate)
	}

	empty, err := s.UserCertificates(404)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestVerifyCertificate(t *testing.T) {
	t.Run("resolves the certificate and the owner's profile", func(t *testing.T) {
		s := setupStore(t)

		profile := &types.Profile{FullName: "Ada Lovelace", School: "Analytical Engine Primary"}
		id, err := s.AddUser("ada", "hash", profile, false)
		require.NoError(t, err)
		code, err := s.CreateCertificate(id, "python-basics")
		require.NoError(t, err)

		verification, err := s.VerifyCertificate(code)
		require.NoError(t, err)
		assert.True(t, verification.IsValid)
		assert.False(t, verification.IsCompleted)
		assert.Nil(t, verification.CompletedDate)
		assert.Equal(t, "python-basics", verification.Type)
		assert.Equal(t, "ada", verification.Username)
		assert.Equal(t, id, verification.UserID)
		assert.Equal(t, *profile, verification.Profile)
		assert.False(t, verification.IssueDate.IsZero())
	})

	t.Run("reflects completion after CompleteCertificate", func(t *testing.T) {
		s := setupStore(t)

		id, err := s.AddUser("ada", "hash", nil, false)
		require.NoError(t, err)
		code, err := s.CreateCertificate(id, "python-basics")
		require.NoError(t, err)
		require.NoError(t, s.CompleteCertificate(code))

		verification, err := s.VerifyCertificate(code)
		require.NoError(t, err)
		assert.True(t, verification.IsValid)
		assert.True(t, verification.IsCompleted)
		require.NotNil(t, verification.CompletedDate)
		assert.False(t, verification.CompletedDate.IsZero())
	})

	t.Run("unknown code is invalid, not an error", func(t *testing.T) {
		s := setupStore(t)

		verification, err := s.VerifyCertificate("no-such-code")
		require.NoError(t, err)
		assert.False(t, verification.IsValid)
		assert.Empty(t, verification.Username)
	})
}
