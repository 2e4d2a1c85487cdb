package entities

import (
	"time"

	"github.com/google/uuid"
)

type FlightSummary struct {
	Token       string    `json:"token"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DepartAt    time.Time `json:"depart_at"`
	ArriveAt    time.Time `json:"arrive_at"`
	Price       Money     `json:"price"`
}

type HotelSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Nights     int    `json:"nights"`
	NightPrice Money  `json:"night_price"`
	StayPrice  Money  `json:"stay_price"`
}

// TripPackage is the finalized flight+hotel bundle. It is an immutable
// snapshot of the selection at the moment it was assembled.
type TripPackage struct {
	TripID     uuid.UUID     `json:"trip_id"`
	Flight     FlightSummary `json:"flight"`
	Hotel      HotelSummary  `json:"hotel"`
	TotalPrice Money         `json:"total_price"`
}

type Booking struct {
	BookingID      uuid.UUID `json:"booking_id" db:"booking_id"`
	TripID         uuid.UUID `json:"trip_id" db:"trip_id"`
	UserID         string    `json:"user_id" db:"user_id"`
	ConfirmationID string    `json:"confirmation_id" db:"confirmation_id"`
}

type BookTripRequest struct {
	TripID         uuid.UUID
	UserID         string
	Trip           TripPackage
	IdempotencyKey string
}

// TripView is the ops-facing read model of a trip, updated asynchronously
// from events. One JSONB row per trip.
type TripView struct {
	TripID uuid.UUID   `json:"trip_id"`
	UserID string      `json:"user_id"`
	Trip   TripPackage `json:"trip"`

	Status        string `json:"status"`
	FailureReason string `json:"failure_reason,omitempty"`

	BookingID      uuid.UUID `json:"booking_id,omitempty"`
	ConfirmationID string    `json:"confirmation_id,omitempty"`

	FavoritedAt time.Time `json:"favorited_at,omitempty"`
	BookedAt    time.Time `json:"booked_at,omitempty"`
	LastUpdate  time.Time `json:"last_update"`
}

const (
	TripStatusFavorited     = "favorited"
	TripStatusBooked        = "booked"
	TripStatusBookingFailed = "booking_failed"
)
