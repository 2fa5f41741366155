// Learning-progress operations. The three collection columns hold JSON
// arrays of opaque string identifiers; order is preserved as written.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/satchel-io/satchel/pkg/types"
)

// UserProgress returns the user's progress snapshot. A user with no progress
// row gets the zero-value snapshot (0 points, empty collections) rather than
// an error.
func (s *Store) UserProgress(userID int64) (*types.Progress, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	var (
		p           = types.Progress{UserID: userID}
		tutorials   string
		challenges  string
		emojis      string
		lastUpdated string
	)
	err = db.QueryRow(
		`SELECT points, completed_tutorials, completed_challenges, emoji_collection, last_updated
		FROM user_progress WHERE user_id = ?`,
		userID,
	).Scan(&p.Points, &tutorials, &challenges, &emojis, &lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return types.NewProgress(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting progress for user %d: %w", userID, err)
	}

	if p.CompletedTutorials, err = decodeList(tutorials); err != nil {
		return nil, fmt.Errorf("parsing completed_tutorials: %w", err)
	}
	if p.CompletedChallenges, err = decodeList(challenges); err != nil {
		return nil, fmt.Errorf("parsing completed_challenges: %w", err)
	}
	if p.EmojiCollection, err = decodeList(emojis); err != nil {
		return nil, fmt.Errorf("parsing emoji_collection: %w", err)
	}
	if p.LastUpdated, err = parseTime(lastUpdated); err != nil {
		return nil, fmt.Errorf("parsing last_updated: %w", err)
	}
	return &p, nil
}

// UpdateUserProgress overwrites points and all three collections (not a
// merge) and refreshes the last_updated timestamp. Concurrent writers follow
// last-write-wins; the store performs no merging.
func (s *Store) UpdateUserProgress(userID int64, points int, tutorials, challenges, emojis []string) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	tutorialsJSON, err := encodeList(tutorials)
	if err != nil {
		return fmt.Errorf("encoding completed_tutorials: %w", err)
	}
	challengesJSON, err := encodeList(challenges)
	if err != nil {
		return fmt.Errorf("encoding completed_challenges: %w", err)
	}
	emojisJSON, err := encodeList(emojis)
	if err != nil {
		return fmt.Errorf("encoding emoji_collection: %w", err)
	}

	res, err := db.Exec(
		`UPDATE user_progress
		SET points = ?, completed_tutorials = ?, completed_challenges = ?,
			emoji_collection = ?, last_updated = ?
		WHERE user_id = ?`,
		points, tutorialsJSON, challengesJSON, emojisJSON, nowUTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("updating progress: %w", err)
	}
	return requireRowAffected(res)
}

// encodeList marshals a collection for storage. A nil slice encodes as the
// empty array, never JSON null.
func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeList unmarshals a stored collection. Empty or null column values
// decode as the empty slice.
func decodeList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}
