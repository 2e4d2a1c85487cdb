package db

import (
	"context"
	"fmt"

	"tripplanner/entities"
)

type BookingsRepository struct {
	db *DB
}

func NewBookingsRepository(db *DB) BookingsRepository {
	if db == nil {
		panic("db is nil")
	}
	return BookingsRepository{db: db}
}

// Create inserts the booking row. The idempotency key carries a unique
// constraint, so a redelivered command surfaces as ErrBookingAlreadyExists.
func (r BookingsRepository) Create(ctx context.Context, booking entities.Booking, idempotencyKey string) error {
	_, err := r.db.Conn.ExecContext(ctx, `
		INSERT INTO
		    bookings (booking_id, trip_id, user_id, confirmation_id, idempotency_key)
		VALUES
		    ($1, $2, $3, $4, $5)
		`, booking.BookingID, booking.TripID, booking.UserID, booking.ConfirmationID, idempotencyKey)
	if isErrorUniqueViolation(err) {
		return ErrBookingAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("could not create booking: %w", err)
	}

	return nil
}

func (r BookingsRepository) ByTripID(ctx context.Context, tripID string) (entities.Booking, error) {
	var booking entities.Booking
	err := r.db.Conn.GetContext(ctx, &booking, `
		SELECT booking_id, trip_id, user_id, confirmation_id FROM bookings WHERE trip_id = $1
		`, tripID)
	if err != nil {
		return entities.Booking{}, fmt.Errorf("could not load booking: %w", err)
	}

	return booking, nil
}
