package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"tripplanner/entities"
	"tripplanner/message/event"
	"tripplanner/message/outbox"
)

type FavoritesRepository struct {
	db *DB
}

func NewFavoritesRepository(db *DB) FavoritesRepository {
	if db == nil {
		panic("db is nil")
	}
	return FavoritesRepository{db: db}
}

// Save stores the trip and publishes TripSavedToFavorites_v1 through the
// outbox in the same transaction. Saving the same trip twice is a no-op.
func (r FavoritesRepository) Save(ctx context.Context, userID string, trip entities.TripPackage) (err error) {
	payload, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("could not marshal trip: %w", err)
	}

	tx, err := r.db.Conn.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = errors.Join(err, rollbackErr)
			}
			return
		}
		err = tx.Commit()
	}()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO
		    trip_favorites (trip_id, user_id, payload)
		VALUES
		    ($1, $2, $3)
		ON CONFLICT (trip_id) DO NOTHING
		`, trip.TripID, userID, payload)
	if err != nil {
		return fmt.Errorf("could not save favorite: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check insert result: %w", err)
	}
	if inserted == 0 {
		return nil
	}

	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return fmt.Errorf("could not create outbox publisher: %w", err)
	}

	err = event.NewBus(outboxPublisher).Publish(ctx, entities.TripSavedToFavorites_v1{
		Header: entities.NewEventHeader(),
		TripID: trip.TripID,
		UserID: userID,
		Trip:   trip,
	})
	if err != nil {
		return fmt.Errorf("could not publish event: %w", err)
	}

	return nil
}

// Favorites returns the stored trips of a single user, newest first.
func (r FavoritesRepository) Favorites(ctx context.Context, userID string) ([]entities.TripPackage, error) {
	var payloads [][]byte
	err := r.db.Conn.SelectContext(ctx, &payloads, `
		SELECT payload FROM trip_favorites WHERE user_id = $1 ORDER BY created_at DESC
		`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not load favorites: %w", err)
	}

	trips := make([]entities.TripPackage, 0, len(payloads))
	for _, payload := range payloads {
		var trip entities.TripPackage
		if err := json.Unmarshal(payload, &trip); err != nil {
			return nil, fmt.Errorf("could not unmarshal favorite: %w", err)
		}
		trips = append(trips, trip)
	}

	return trips, nil
}
