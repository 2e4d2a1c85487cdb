package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tripplanner/entities"

	"github.com/jmoiron/sqlx"
)

// TripReadModel keeps one JSONB row per trip, updated from events. Reads
// never touch the write-side tables.
type TripReadModel struct {
	conn *DB
}

func NewTripReadModel(db *DB) TripReadModel {
	if db == nil {
		panic("db is nil")
	}
	return TripReadModel{conn: db}
}

// OnTripSavedToFavorites is the first event for a trip, so it creates the row.
func (r TripReadModel) OnTripSavedToFavorites(ctx context.Context, event *entities.TripSavedToFavorites_v1) error {
	err := r.createReadModel(ctx, entities.TripView{
		TripID:      event.TripID,
		UserID:      event.UserID,
		Trip:        event.Trip,
		Status:      entities.TripStatusFavorited,
		FavoritedAt: event.Header.PublishedAt,
		LastUpdate:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("could not create trip read model: %w", err)
	}

	return nil
}

func (r TripReadModel) OnTripBooked(ctx context.Context, event *entities.TripBooked_v1) error {
	return r.updateTripReadModel(ctx, event.TripID.String(), func(view entities.TripView) (entities.TripView, error) {
		view.Status = entities.TripStatusBooked
		view.BookingID = event.BookingID
		view.ConfirmationID = event.ConfirmationID
		view.BookedAt = event.Header.PublishedAt
		view.FailureReason = ""

		return view, nil
	})
}

func (r TripReadModel) OnTripBookingFailed(ctx context.Context, event *entities.TripBookingFailed_v1) error {
	return r.updateTripReadModel(ctx, event.TripID.String(), func(view entities.TripView) (entities.TripView, error) {
		// a later successful booking wins over an earlier failure
		if view.Status == entities.TripStatusBooked {
			return view, nil
		}
		view.Status = entities.TripStatusBookingFailed
		view.FailureReason = event.Reason

		return view, nil
	})
}

func (r TripReadModel) AllTrips(ctx context.Context) ([]entities.TripView, error) {
	var payloads [][]byte
	err := r.conn.Conn.SelectContext(ctx, &payloads, `
		SELECT payload FROM read_model_trips ORDER BY payload->>'last_update' DESC
		`)
	if err != nil {
		return nil, fmt.Errorf("could not load trips: %w", err)
	}

	views := make([]entities.TripView, 0, len(payloads))
	for _, payload := range payloads {
		var view entities.TripView
		if err := json.Unmarshal(payload, &view); err != nil {
			return nil, fmt.Errorf("could not unmarshal trip read model: %w", err)
		}
		views = append(views, view)
	}

	return views, nil
}

func (r TripReadModel) TripByID(ctx context.Context, tripID string) (entities.TripView, error) {
	var payload []byte
	err := r.conn.Conn.QueryRowContext(
		ctx,
		"SELECT payload FROM read_model_trips WHERE trip_id = $1",
		tripID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.TripView{}, entities.ErrPlanNotFound
	}
	if err != nil {
		return entities.TripView{}, fmt.Errorf("could not load trip read model: %w", err)
	}

	var view entities.TripView
	if err := json.Unmarshal(payload, &view); err != nil {
		return entities.TripView{}, fmt.Errorf("could not unmarshal trip read model: %w", err)
	}

	return view, nil
}

func (r TripReadModel) createReadModel(ctx context.Context, view entities.TripView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return err
	}

	_, err = r.conn.Conn.ExecContext(ctx, `
		INSERT INTO
		    read_model_trips (trip_id, payload)
		VALUES
		    ($1, $2)
		ON CONFLICT (trip_id) DO NOTHING; -- the row may already exist after a redelivery
		`, view.TripID, payload)
	if err != nil {
		return fmt.Errorf("could not insert trip read model: %w", err)
	}

	return nil
}

func (r TripReadModel) updateTripReadModel(
	ctx context.Context,
	tripID string,
	updateFunc func(view entities.TripView) (entities.TripView, error),
) error {
	return updateInTx(ctx, r.conn.Conn, sql.LevelRepeatableRead, func(ctx context.Context, tx *sqlx.Tx) error {
		var payload []byte
		err := tx.QueryRowContext(
			ctx,
			"SELECT payload FROM read_model_trips WHERE trip_id = $1",
			tripID,
		).Scan(&payload)
		if errors.Is(err, sql.ErrNoRows) {
			// events arrived out of order - fail so the retry middleware
			// redelivers once the row exists
			return fmt.Errorf("read model for trip %s does not exist yet", tripID)
		}
		if err != nil {
			return fmt.Errorf("could not find trip read model: %w", err)
		}

		var view entities.TripView
		if err := json.Unmarshal(payload, &view); err != nil {
			return fmt.Errorf("could not unmarshal trip read model: %w", err)
		}

		updated, err := updateFunc(view)
		if err != nil {
			return err
		}
		updated.LastUpdate = time.Now()

		updatedPayload, err := json.Marshal(updated)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO
			    read_model_trips (trip_id, payload)
			VALUES
			    ($1, $2)
			ON CONFLICT (trip_id) DO UPDATE SET payload = excluded.payload;
			`, updated.TripID, updatedPayload)
		if err != nil {
			return fmt.Errorf("could not update trip read model: %w", err)
		}

		return nil
	})
}

func updateInTx(
	ctx context.Context,
	db *sqlx.DB,
	isolation sql.IsolationLevel,
	fn func(ctx context.Context, tx *sqlx.Tx) error,
) (err error) {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: isolation})
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

	return fn(ctx, tx)
}
