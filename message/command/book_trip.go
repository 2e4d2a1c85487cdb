package command

import (
	"context"
	"errors"
	"fmt"

	"tripplanner/db"
	"tripplanner/entities"

	"github.com/google/uuid"
)

// BookTrip books the assembled package at the provider. The command's
// idempotency key covers both the provider call and the booking row, so a
// redelivered command never books twice.
func (h Handler) BookTrip(ctx context.Context, command *entities.BookTrip) error {
	confirmationID, err := h.bookingProvider.CreateBooking(ctx, entities.BookTripRequest{
		TripID:         command.TripID,
		UserID:         command.UserID,
		Trip:           command.Trip,
		IdempotencyKey: command.Header.IdempotencyKey,
	})
	if err != nil {
		publishErr := h.eventBus.Publish(ctx, entities.TripBookingFailed_v1{
			Header: entities.NewEventHeader(),
			TripID: command.TripID,
			UserID: command.UserID,
			Reason: err.Error(),
		})
		if publishErr != nil {
			return fmt.Errorf("could not publish TripBookingFailed_v1 event: %w", publishErr)
		}

		return nil
	}

	booking := entities.Booking{
		BookingID:      uuid.New(),
		TripID:         command.TripID,
		UserID:         command.UserID,
		ConfirmationID: confirmationID,
	}
	err = h.bookingsRepo.Create(ctx, booking, command.Header.IdempotencyKey)
	if errors.Is(err, db.ErrBookingAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}

	err = h.eventBus.Publish(ctx, entities.TripBooked_v1{
		Header:         entities.NewEventHeader(),
		TripID:         command.TripID,
		BookingID:      booking.BookingID,
		UserID:         command.UserID,
		ConfirmationID: confirmationID,
		TotalPrice:     command.Trip.TotalPrice,
	})
	if err != nil {
		return fmt.Errorf("could not publish TripBooked_v1 event: %w", err)
	}

	return nil
}
