package entities

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: uuid.NewString(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

type Event interface {
	IsInternal() bool
}

type TripSavedToFavorites_v1 struct {
	Header EventHeader `json:"header"`

	TripID uuid.UUID   `json:"trip_id"`
	UserID string      `json:"user_id"`
	Trip   TripPackage `json:"trip"`
}

func (TripSavedToFavorites_v1) IsInternal() bool { return false }

type TripBooked_v1 struct {
	Header EventHeader `json:"header"`

	TripID         uuid.UUID `json:"trip_id"`
	BookingID      uuid.UUID `json:"booking_id"`
	UserID         string    `json:"user_id"`
	ConfirmationID string    `json:"confirmation_id"`
	TotalPrice     Money     `json:"total_price"`
}

func (TripBooked_v1) IsInternal() bool { return false }

type TripBookingFailed_v1 struct {
	Header EventHeader `json:"header"`

	TripID uuid.UUID `json:"trip_id"`
	UserID string    `json:"user_id"`
	Reason string    `json:"reason"`
}

func (TripBookingFailed_v1) IsInternal() bool { return false }

// BookTrip is the command sent when the user books the assembled package.
type BookTrip struct {
	Header EventHeader `json:"header"`

	TripID uuid.UUID   `json:"trip_id"`
	UserID string      `json:"user_id"`
	Trip   TripPackage `json:"trip"`
}

// StoredEvent is a row in the event log, one per published event.
type StoredEvent struct {
	EventID     string      `json:"event_id" db:"event_id"`
	EventName   string      `json:"event_name" db:"event_name"`
	PublishedAt time.Time   `json:"published_at" db:"published_at"`
	Header      EventHeader `json:"header"`
	Payload     []byte      `json:"payload" db:"event_payload"`
}
