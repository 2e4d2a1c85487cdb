package migrations

import (
	"context"
	"encoding/json"
	"testing"

	"tripplanner/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLogStub struct {
	events []entities.StoredEvent
}

func (s *eventLogStub) All(ctx context.Context) ([]entities.StoredEvent, error) {
	return s.events, nil
}

type tripViewsRecorder struct {
	saved  []*entities.TripSavedToFavorites_v1
	booked []*entities.TripBooked_v1
	failed []*entities.TripBookingFailed_v1
}

func (r *tripViewsRecorder) OnTripSavedToFavorites(ctx context.Context, event *entities.TripSavedToFavorites_v1) error {
	r.saved = append(r.saved, event)
	return nil
}

func (r *tripViewsRecorder) OnTripBooked(ctx context.Context, event *entities.TripBooked_v1) error {
	r.booked = append(r.booked, event)
	return nil
}

func (r *tripViewsRecorder) OnTripBookingFailed(ctx context.Context, event *entities.TripBookingFailed_v1) error {
	r.failed = append(r.failed, event)
	return nil
}

func storedEvent(t *testing.T, name string, payload any) entities.StoredEvent {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	header := entities.NewEventHeader()
	return entities.StoredEvent{
		EventID:     header.ID,
		EventName:   name,
		PublishedAt: header.PublishedAt,
		Header:      header,
		Payload:     raw,
	}
}

func TestRebuildTripViews(t *testing.T) {
	tripID := uuid.New()

	log := &eventLogStub{events: []entities.StoredEvent{
		storedEvent(t, "TripSavedToFavorites_v1", entities.TripSavedToFavorites_v1{
			Header: entities.NewEventHeader(),
			TripID: tripID,
			UserID: "user-1",
		}),
		storedEvent(t, "TripBooked_v1", entities.TripBooked_v1{
			Header:         entities.NewEventHeader(),
			TripID:         tripID,
			BookingID:      uuid.New(),
			ConfirmationID: "conf-1",
		}),
		storedEvent(t, "SomethingUnrelated_v1", map[string]string{"ignored": "yes"}),
	}}
	views := &tripViewsRecorder{}

	require.NoError(t, RebuildTripViews(context.Background(), log, views))

	require.Len(t, views.saved, 1)
	assert.Equal(t, tripID, views.saved[0].TripID)
	require.Len(t, views.booked, 1)
	assert.Equal(t, "conf-1", views.booked[0].ConfirmationID)
	assert.Empty(t, views.failed)
}

func TestRebuildTripViewsBrokenPayload(t *testing.T) {
	log := &eventLogStub{events: []entities.StoredEvent{
		{EventID: uuid.NewString(), EventName: "TripBooked_v1", Payload: []byte("not json")},
	}}

	err := RebuildTripViews(context.Background(), log, &tripViewsRecorder{})
	assert.Error(t, err)
}
