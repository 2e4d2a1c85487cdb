package command

import (
	"context"

	"tripplanner/entities"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
)

type BookingProvider interface {
	CreateBooking(ctx context.Context, request entities.BookTripRequest) (string, error)
}

type BookingsRepository interface {
	Create(ctx context.Context, booking entities.Booking, idempotencyKey string) error
}

type Handler struct {
	bookingProvider BookingProvider
	bookingsRepo    BookingsRepository

	eventBus *cqrs.EventBus
}

func NewHandler(eventBus *cqrs.EventBus, bookingProvider BookingProvider, bookingsRepo BookingsRepository) Handler {
	if eventBus == nil {
		panic("eventBus is required")
	}
	if bookingProvider == nil {
		panic("bookingProvider is required")
	}
	if bookingsRepo == nil {
		panic("bookingsRepo is required")
	}

	return Handler{
		bookingProvider: bookingProvider,
		bookingsRepo:    bookingsRepo,
		eventBus:        eventBus,
	}
}
