// Append-only activity event log. Events annotate primary operations;
// logging one must never fail the operation it annotates, so insert errors
// are logged and suppressed.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/satchel-io/satchel/pkg/types"
)

// LogEvent appends one event to the user's activity log. Failures (store
// closed, insert error) are reported through the store's logger and
// otherwise swallowed.
func (s *Store) LogEvent(userID int64, eventType, details string) {
	db, err := s.handle()
	if err != nil {
		s.log.Warn("dropping event", "user_id", userID, "event_type", eventType, "error", err)
		return
	}

	_, err = db.Exec(
		"INSERT INTO user_events (user_id, event_type, event_details, timestamp) VALUES (?, ?, ?, ?)",
		userID, eventType, nullIfEmpty(details), nowUTC(),
	)
	if err != nil {
		s.log.Warn("dropping event", "user_id", userID, "event_type", eventType, "error", err)
	}
}

// UserEvents returns the user's most recent events, newest first, bounded by
// limit. A non-positive limit uses types.DefaultEventLimit.
func (s *Store) UserEvents(userID int64, limit int) ([]*types.Event, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = types.DefaultEventLimit
	}

	rows, err := db.Query(
		`SELECT id, user_id, event_type, event_details, timestamp
		FROM user_events
		WHERE user_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	events := []*types.Event{}
	for rows.Next() {
		var (
			e         types.Event
			details   sql.NullString
			timestamp string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &details, &timestamp); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Details = details.String
		if e.Timestamp, err = parseTime(timestamp); err != nil {
			return nil, fmt.Errorf("parsing event timestamp: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

// nullIfEmpty maps the empty string to SQL NULL for nullable text columns.
func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
