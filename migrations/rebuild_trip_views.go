package migrations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tripplanner/entities"
	"tripplanner/pkg/log"

	"github.com/sirupsen/logrus"
)

type EventLog interface {
	All(ctx context.Context) ([]entities.StoredEvent, error)
}

type TripViews interface {
	OnTripSavedToFavorites(ctx context.Context, event *entities.TripSavedToFavorites_v1) error
	OnTripBooked(ctx context.Context, event *entities.TripBooked_v1) error
	OnTripBookingFailed(ctx context.Context, event *entities.TripBookingFailed_v1) error
}

// RebuildTripViews replays the event log against the trip read model. It is
// safe to run against a populated read model since the projections are
// idempotent.
func RebuildTripViews(ctx context.Context, eventLog EventLog, views TripViews) error {
	logger := log.FromContext(ctx)
	logger.Info("Rebuilding trip read model")

	events, err := eventLog.All(ctx)
	if err != nil {
		return fmt.Errorf("could not read event log: %w", err)
	}

	logger.WithField("events_count", len(events)).Info("Replaying events")

	for _, event := range events {
		start := time.Now()

		if err := replayEvent(ctx, event, views); err != nil {
			return fmt.Errorf("could not replay event %s (%s): %w", event.EventID, event.EventName, err)
		}

		logger.WithFields(logrus.Fields{
			"event_name": event.EventName,
			"event_id":   event.EventID,
			"duration":   time.Since(start),
		}).Info("Event replayed")
	}

	return nil
}

func replayEvent(ctx context.Context, event entities.StoredEvent, views TripViews) error {
	switch event.EventName {
	case "TripSavedToFavorites_v1":
		saved, err := unmarshalStoredEvent[entities.TripSavedToFavorites_v1](event)
		if err != nil {
			return err
		}
		return views.OnTripSavedToFavorites(ctx, saved)

	case "TripBooked_v1":
		booked, err := unmarshalStoredEvent[entities.TripBooked_v1](event)
		if err != nil {
			return err
		}
		return views.OnTripBooked(ctx, booked)

	case "TripBookingFailed_v1":
		failed, err := unmarshalStoredEvent[entities.TripBookingFailed_v1](event)
		if err != nil {
			return err
		}
		return views.OnTripBookingFailed(ctx, failed)

	default:
		// unknown events stay in the log, the projection just skips them
		return nil
	}
}

func unmarshalStoredEvent[T any](event entities.StoredEvent) (*T, error) {
	var payload T
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return nil, fmt.Errorf("could not unmarshal %s: %w", event.EventName, err)
	}
	return &payload, nil
}
