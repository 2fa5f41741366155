package types

// Import statuses reported by ImportResult.Status.
const (
	// ImportStatusImported means legacy data was found and imported.
	ImportStatusImported = "imported"

	// ImportStatusSkipped means the store already holds users, so the
	// import did not run.
	ImportStatusSkipped = "skipped"

	// ImportStatusNoData means no legacy user file was found.
	ImportStatusNoData = "no-data"
)

// ImportResult describes the outcome of a legacy JSON import.
type ImportResult struct {
	Status string `json:"status"`

	// Users is the number of user accounts created.
	Users int `json:"users"`

	// Progress is the number of progress records restored.
	Progress int `json:"progress"`

	// Failed is the number of legacy records that could not be imported
	// (duplicate usernames, malformed progress files).
	Failed int `json:"failed"`
}
