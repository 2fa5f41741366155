// Legacy flat-file import. Earlier releases of the application kept one
// users.json mapping username to password hash, plus one
// progress_<username>.json per user. Each record is routed through the
// normal AddUser / UpdateUserProgress operations; records that fail to
// import are skipped and counted, never fatal.
package sqlite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/satchel-io/satchel/pkg/types"
)

// legacyUsersFile is the flat file holding all users keyed by username.
const legacyUsersFile = "users.json"

// legacyUser mirrors one value of the users.json map.
type legacyUser struct {
	Password string `json:"password"`
}

// legacyProgress mirrors a progress_<username>.json file.
type legacyProgress struct {
	Points              int      `json:"points"`
	CompletedTutorials  []string `json:"completed_tutorials"`
	CompletedChallenges []string `json:"completed_challenges"`
	EmojiCollection     []string `json:"emoji_collection"`
}

// legacyProgressFile returns the per-user progress filename.
func legacyProgressFile(username string) string {
	return fmt.Sprintf("progress_%s.json", username)
}

// ImportLegacyJSON imports users and their progress from the legacy layout
// in dir. An empty dir falls back to the configured LegacyDir, then to the
// current directory. Usernames are imported in sorted order so repeated
// imports against an empty store assign stable IDs.
func (s *Store) ImportLegacyJSON(dir string) (*types.ImportResult, error) {
	if _, err := s.handle(); err != nil {
		return nil, err
	}
	dir = s.legacyDir(dir)

	data, err := os.ReadFile(filepath.Join(dir, legacyUsersFile))
	if os.IsNotExist(err) {
		return &types.ImportResult{Status: types.ImportStatusNoData}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", legacyUsersFile, err)
	}

	var users map[string]legacyUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", legacyUsersFile, err)
	}

	usernames := make([]string, 0, len(users))
	for username := range users {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	result := &types.ImportResult{Status: types.ImportStatusImported}
	for _, username := range usernames {
		id, err := s.AddUser(username, users[username].Password, nil, false)
		if err != nil {
			s.log.Warn("skipping legacy user", "username", username, "error", err)
			result.Failed++
			continue
		}
		result.Users++

		restored, err := s.importLegacyProgress(dir, username, id)
		if err != nil {
			s.log.Warn("skipping legacy progress", "username", username, "error", err)
			result.Failed++
			continue
		}
		if restored {
			result.Progress++
		}
	}
	return result, nil
}

// ImportLegacyIfEmpty runs ImportLegacyJSON only when the store holds zero
// users. The zero-user guard keeps repeated startups from double-importing.
func (s *Store) ImportLegacyIfEmpty(dir string) (*types.ImportResult, error) {
	count, err := s.countUsers()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		s.log.Info("legacy import skipped", "users", count)
		return &types.ImportResult{Status: types.ImportStatusSkipped}, nil
	}
	return s.ImportLegacyJSON(dir)
}

// importLegacyProgress restores one user's progress file, if present. A
// missing file is not an error; the user simply keeps the empty progress
// row AddUser created.
func (s *Store) importLegacyProgress(dir, username string, userID int64) (bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, legacyProgressFile(username)))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading progress file: %w", err)
	}

	var p legacyProgress
	if err := json.Unmarshal(data, &p); err != nil {
		return false, fmt.Errorf("parsing progress file: %w", err)
	}

	if err := s.UpdateUserProgress(userID, p.Points, p.CompletedTutorials, p.CompletedChallenges, p.EmojiCollection); err != nil {
		return false, err
	}
	return true, nil
}

// legacyDir resolves the directory searched for legacy files.
func (s *Store) legacyDir(dir string) string {
	if dir != "" {
		return dir
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.config.LegacyDir != "" {
		return s.config.LegacyDir
	}
	return "."
}
