// Unit tests for the legacy flat-file import.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satchel-io/satchel/pkg/types"
)

// writeLegacyFiles lays out a legacy data directory: users.json plus one
// progress file per entry in progress.
func writeLegacyFiles(t *testing.T, dir, usersJSON string, progress map[string]string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, legacyUsersFile), []byte(usersJSON), 0o644))
	for username, content := range progress {
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, legacyProgressFile(username)), []byte(content), 0o644))
	}
}

func TestImportLegacyJSON(t *testing.T) {
	t.Run("imports users and progress", func(t *testing.T) {
		s := setupStore(t)
		dir := t.TempDir()
		writeLegacyFiles(t, dir,
			`{"ada": {"password": "hash-ada"}, "alan": {"password": "hash-alan"}}`,
			map[string]string{
				"ada": `{"points": 150, "completed_tutorials": ["loops"], "completed_challenges": ["fizzbuzz"], "emoji_collection": ["🚀"]}`,
			})

		result, err := s.ImportLegacyJSON(dir)
		require.NoError(t, err)
		assert.Equal(t, types.ImportStatusImported, result.Status)
		assert.Equal(t, 2, result.Users)
		assert.Equal(t, 1, result.Progress)
		assert.Equal(t, 0, result.Failed)

		ada, err := s.GetUser("ada")
		require.NoError(t, err)
		assert.Equal(t, "hash-ada", ada.PasswordHash)

		progress, err := s.UserProgress(ada.ID)
		require.NoError(t, err)
		assert.Equal(t, 150, progress.Points)
		assert.Equal(t, []string{"loops"}, progress.CompletedTutorials)

		// alan had no progress file; he keeps the empty default.
		alan, err := s.GetUser("alan")
		require.NoError(t, err)
		progress, err = s.UserProgress(alan.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, progress.Points)
	})

	t.Run("missing users.json reports no-data", func(t *testing.T) {
		s := setupStore(t)

		result, err := s.ImportLegacyJSON(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, types.ImportStatusNoData, result.Status)
		assert.Zero(t, result.Users)
	})

	t.Run("usernames import in sorted order", func(t *testing.T) {
		s := setupStore(t)
		dir := t.TempDir()
		writeLegacyFiles(t, dir,
			`{"zoe": {"password": "h"}, "amy": {"password": "h"}, "mia": {"password": "h"}}`, nil)

		_, err := s.ImportLegacyJSON(dir)
		require.NoError(t, err)

		amy, err := s.GetUser("amy")
		require.NoError(t, err)
		mia, err := s.GetUser("mia")
		require.NoError(t, err)
		zoe, err := s.GetUser("zoe")
		require.NoError(t, err)
		assert.Less(t, amy.ID, mia.ID)
		assert.Less(t, mia.ID, zoe.ID)
	})

	t.Run("existing username counts as failed, others still import", func(t *testing.T) {
		s := setupStore(t)
		_, err := s.AddUser("ada", "existing-hash", nil, false)
		require.NoError(t, err)

		dir := t.TempDir()
		writeLegacyFiles(t, dir,
			`{"ada": {"password": "legacy-hash"}, "alan": {"password": "h"}}`, nil)

		result, err := s.ImportLegacyJSON(dir)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Users)
		assert.Equal(t, 1, result.Failed)

		// The existing row is untouched.
		ada, err := s.GetUser("ada")
		require.NoError(t, err)
		assert.Equal(t, "existing-hash", ada.PasswordHash)
	})

	t.Run("malformed progress file counts as failed but keeps the user", func(t *testing.T) {
		s := setupStore(t)
		dir := t.TempDir()
		writeLegacyFiles(t, dir,
			`{"ada": {"password": "h"}}`,
			map[string]string{"ada": `{not json`})

		result, err := s.ImportLegacyJSON(dir)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Users)
		assert.Equal(t, 0, result.Progress)
		assert.Equal(t, 1, result.Failed)

		_, err = s.GetUser("ada")
		require.NoError(t, err)
	})

	t.Run("malformed users.json is an error", func(t *testing.T) {
		s := setupStore(t)
		dir := t.TempDir()
		writeLegacyFiles(t, dir, `{broken`, nil)

		_, err := s.ImportLegacyJSON(dir)
		assert.Error(t, err)
	})
}

func TestImportLegacyIfEmpty(t *testing.T) {
	t.Run("imports into an empty store", func(t *testing.T) {
		s := setupStore(t)
		dir := t.TempDir()
		writeLegacyFiles(t, dir, `{"ada": {"password": "h"}}`, nil)

		result, err := s.ImportLegacyIfEmpty(dir)
		require.NoError(t, err)
		assert.Equal(t, types.ImportStatusImported, result.Status)
		assert.Equal(t, 1, result.Users)
	})

	t.Run("skips when users exist", func(t *testing.T) {
		s := setupStore(t)
		_, err := s.AddUser("existing", "h", nil, false)
		require.NoError(t, err)

		dir := t.TempDir()
		writeLegacyFiles(t, dir, `{"ada": {"password": "h"}}`, nil)

		result, err := s.ImportLegacyIfEmpty(dir)
		require.NoError(t, err)
		assert.Equal(t, types.ImportStatusSkipped, result.Status)

		_, err = s.GetUser("ada")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("rerunning after import is a no-op", func(t *testing.T) {
		s := setupStore(t)
		dir := t.TempDir()
		writeLegacyFiles(t, dir, `{"ada": {"password": "h"}}`, nil)

		first, err := s.ImportLegacyIfEmpty(dir)
		require.NoError(t, err)
		require.Equal(t, types.ImportStatusImported, first.Status)

		second, err := s.ImportLegacyIfEmpty(dir)
		require.NoError(t, err)
		assert.Equal(t, types.ImportStatusSkipped, second.Status)

		users, err := s.GetAllUsers()
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}
