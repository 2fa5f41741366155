package types

import "time"

// Profile holds the optional free-text profile fields attached to a user.
// Missing fields are stored as empty strings, never NULL.
type Profile struct {
	FullName   string `json:"full_name"`
	ParentName string `json:"parent_name"`
	DOB        string `json:"dob"`
	Class      string `json:"class"`
	Section    string `json:"section"`
	School     string `json:"school"`
}

// User is a snapshot of one account row. Snapshots are detached copies;
// mutating one has no effect on stored state.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Profile      Profile    `json:"profile"`
	IsAdmin      bool       `json:"is_admin"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
