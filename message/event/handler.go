package event

import (
	"context"

	"tripplanner/entities"
)

type TripViews interface {
	OnTripSavedToFavorites(ctx context.Context, event *entities.TripSavedToFavorites_v1) error
	OnTripBooked(ctx context.Context, event *entities.TripBooked_v1) error
	OnTripBookingFailed(ctx context.Context, event *entities.TripBookingFailed_v1) error
}

type EventLog interface {
	Append(ctx context.Context, event entities.StoredEvent) error
}

type Handler struct {
	views    TripViews
	eventLog EventLog
}

func NewHandler(views TripViews, eventLog EventLog) Handler {
	if views == nil {
		panic("missing trip views")
	}
	if eventLog == nil {
		panic("missing event log")
	}
	return Handler{
		views:    views,
		eventLog: eventLog,
	}
}
