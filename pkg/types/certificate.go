package types

import "time"

// Certificate is a snapshot of one issued certificate. A certificate starts
// issued (CompletedDate nil) and transitions once to completed; there is no
// reversal and no deletion.
type Certificate struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Type          string     `json:"certificate_type"`
	Code          string     `json:"certificate_code"`
	IssueDate     time.Time  `json:"issue_date"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	IsCompleted   bool       `json:"is_completed"`
}

// Verification is the result of resolving a certificate code. When the code
// matches no certificate only IsValid is meaningful and it is false.
type Verification struct {
	IsValid       bool       `json:"is_valid"`
	IsCompleted   bool       `json:"is_completed"`
	Type          string     `json:"certificate_type,omitempty"`
	IssueDate     time.Time  `json:"issue_date,omitzero"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	UserID        int64      `json:"user_id,omitempty"`
	Username      string     `json:"username,omitempty"`
	Profile       Profile    `json:"profile"`
}
