package db

import (
	"context"
	"fmt"

	"tripplanner/entities"
)

// EventLogRepository appends every published event to an append-only log
// table, keyed by event id so redeliveries are harmless.
type EventLogRepository struct {
	db *DB
}

func NewEventLogRepository(db *DB) EventLogRepository {
	if db == nil {
		panic("db is nil")
	}
	return EventLogRepository{db: db}
}

// All returns the log in publish order, oldest first.
func (r EventLogRepository) All(ctx context.Context) ([]entities.StoredEvent, error) {
	var events []entities.StoredEvent
	err := r.db.Conn.SelectContext(ctx, &events, `
		SELECT event_id, published_at, event_name, event_payload FROM events ORDER BY published_at ASC
		`)
	if err != nil {
		return nil, fmt.Errorf("could not load event log: %w", err)
	}

	return events, nil
}

func (r EventLogRepository) Append(ctx context.Context, event entities.StoredEvent) error {
	_, err := r.db.Conn.ExecContext(ctx, `
		INSERT INTO
		    events (event_id, published_at, event_name, event_payload)
		VALUES
		    ($1, $2, $3, $4)
		ON CONFLICT (event_id) DO NOTHING;
		`, event.EventID, event.PublishedAt, event.EventName, event.Payload)
	if err != nil {
		return fmt.Errorf("could not append event to log: %w", err)
	}

	return nil
}
