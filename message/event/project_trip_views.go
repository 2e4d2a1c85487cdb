package event

import (
	"context"

	"tripplanner/entities"
	"tripplanner/pkg/log"
)

func (h Handler) ProjectTripSaved(ctx context.Context, event *entities.TripSavedToFavorites_v1) error {
	log.FromContext(ctx).WithField("trip_id", event.TripID).Info("Projecting saved trip")

	return h.views.OnTripSavedToFavorites(ctx, event)
}

func (h Handler) ProjectTripBooked(ctx context.Context, event *entities.TripBooked_v1) error {
	log.FromContext(ctx).WithField("trip_id", event.TripID).Info("Projecting booked trip")

	return h.views.OnTripBooked(ctx, event)
}

func (h Handler) ProjectTripBookingFailed(ctx context.Context, event *entities.TripBookingFailed_v1) error {
	log.FromContext(ctx).WithField("trip_id", event.TripID).Info("Projecting failed trip booking")

	return h.views.OnTripBookingFailed(ctx, event)
}
