package store

import (
	"database/sql"
	"time"
)

// Event represents a dispatched gesture command recorded for diagnostics.
type Event struct {
	ID         int64
	Gesture    string
	Confidence float64
	X          sql.NullFloat64
	Y          sql.NullFloat64
	CreatedAt  time.Time
}

// EventRepository provides append and query operations for the event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Append records a dispatched gesture command.
func (r *EventRepository) Append(e *Event) error {
	e.CreatedAt = time.Now()

	result, err := r.db.Exec(
		`INSERT INTO events (gesture, confidence, x, y, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Gesture, e.Confidence, e.X, e.Y, e.CreatedAt,
	)
	if err != nil {
		return err
	}

	e.ID, err = result.LastInsertId()
	return err
}

// Recent retrieves the most recent events, newest first.
func (r *EventRepository) Recent(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, gesture, confidence, x, y, created_at
		 FROM events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		err := rows.Scan(&e.ID, &e.Gesture, &e.Confidence, &e.X, &e.Y, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Prune deletes events older than the given age. It returns the number
// of rows removed.
func (r *EventRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	result, err := r.db.Exec(`DELETE FROM events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
