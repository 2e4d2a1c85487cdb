package event

import (
	"context"
	"encoding/json"
	"fmt"

	"tripplanner/entities"
)

func (h Handler) LogTripSaved(ctx context.Context, event *entities.TripSavedToFavorites_v1) error {
	return h.appendToEventLog(ctx, "TripSavedToFavorites_v1", event.Header, event)
}

func (h Handler) LogTripBooked(ctx context.Context, event *entities.TripBooked_v1) error {
	return h.appendToEventLog(ctx, "TripBooked_v1", event.Header, event)
}

func (h Handler) LogTripBookingFailed(ctx context.Context, event *entities.TripBookingFailed_v1) error {
	return h.appendToEventLog(ctx, "TripBookingFailed_v1", event.Header, event)
}

func (h Handler) appendToEventLog(ctx context.Context, name string, header entities.EventHeader, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	return h.eventLog.Append(ctx, entities.StoredEvent{
		EventID:     header.ID,
		EventName:   name,
		PublishedAt: header.PublishedAt,
		Header:      header,
		Payload:     payload,
	})
}
