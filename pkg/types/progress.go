package types

import "time"

// Progress is a snapshot of one user's learning progress. Exactly one
// progress record exists per user; it is created alongside the user and
// never deleted independently.
type Progress struct {
	UserID              int64     `json:"user_id"`
	Points              int       `json:"points"`
	CompletedTutorials  []string  `json:"completed_tutorials"`
	CompletedChallenges []string  `json:"completed_challenges"`
	EmojiCollection     []string  `json:"emoji_collection"`
	LastUpdated         time.Time `json:"last_updated"`
}

// NewProgress returns the zero-value progress snapshot for a user: zero
// points and empty (non-nil) collections.
func NewProgress(userID int64) *Progress {
	return &Progress{
		UserID:              userID,
		CompletedTutorials:  []string{},
		CompletedChallenges: []string{},
		EmojiCollection:     []string{},
	}
}
