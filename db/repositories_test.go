package db

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"tripplanner/entities"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *sqlx.DB
var getDbOnce sync.Once

func getDb(t *testing.T) *DB {
	t.Helper()

	if os.Getenv("POSTGRES_URL") == "" {
		t.Skip("POSTGRES_URL is not set")
	}

	getDbOnce.Do(func() {
		var err error
		testDB, err = sqlx.Open("postgres", os.Getenv("POSTGRES_URL"))
		if err != nil {
			panic(err)
		}
	})

	db := &DB{Conn: testDB}
	db.MigrateSchema()
	return db
}

func testTrip() entities.TripPackage {
	return entities.TripPackage{
		TripID: uuid.New(),
		Flight: entities.FlightSummary{
			Token:       "tok-1",
			Origin:      "KHI",
			Destination: "DXB",
			DepartAt:    time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC),
			ArriveAt:    time.Date(2026, 10, 1, 11, 0, 0, 0, time.UTC),
			Price:       entities.NewMoney(30000_00, "PKR"),
		},
		Hotel: entities.HotelSummary{
			ID:         "h1",
			Name:       "Hotel One",
			Nights:     3,
			NightPrice: entities.NewMoney(8000_00, "PKR"),
			StayPrice:  entities.NewMoney(24000_00, "PKR"),
		},
		TotalPrice: entities.NewMoney(54000_00, "PKR"),
	}
}

func TestBookingIdempotencyKey(t *testing.T) {
	repo := NewBookingsRepository(getDb(t))
	ctx := context.Background()

	booking := entities.Booking{
		BookingID:      uuid.New(),
		TripID:         uuid.New(),
		UserID:         "user-1",
		ConfirmationID: "conf-1",
	}
	idempotencyKey := uuid.NewString()

	err := repo.Create(ctx, booking, idempotencyKey)
	require.NoError(t, err)

	duplicate := booking
	duplicate.BookingID = uuid.New()
	err = repo.Create(ctx, duplicate, idempotencyKey)
	assert.ErrorIs(t, err, ErrBookingAlreadyExists)

	stored, err := repo.ByTripID(ctx, booking.TripID.String())
	require.NoError(t, err)
	assert.Equal(t, booking.BookingID, stored.BookingID)
}

func TestFavoriteIsStoredOnce(t *testing.T) {
	repo := NewFavoritesRepository(getDb(t))
	ctx := context.Background()

	trip := testTrip()
	userID := "user-" + uuid.NewString()

	require.NoError(t, repo.Save(ctx, userID, trip))
	require.NoError(t, repo.Save(ctx, userID, trip))

	favorites, err := repo.Favorites(ctx, userID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, trip.TripID, favorites[0].TripID)
	assert.Equal(t, trip.TotalPrice, favorites[0].TotalPrice)
}

func TestTripReadModelLifecycle(t *testing.T) {
	readModel := NewTripReadModel(getDb(t))
	ctx := context.Background()

	trip := testTrip()
	saved := &entities.TripSavedToFavorites_v1{
		Header: entities.NewEventHeader(),
		TripID: trip.TripID,
		UserID: "user-1",
		Trip:   trip,
	}

	require.NoError(t, readModel.OnTripSavedToFavorites(ctx, saved))
	// redelivery of the creating event must not reset anything
	require.NoError(t, readModel.OnTripSavedToFavorites(ctx, saved))

	booked := &entities.TripBooked_v1{
		Header:         entities.NewEventHeader(),
		TripID:         trip.TripID,
		BookingID:      uuid.New(),
		UserID:         "user-1",
		ConfirmationID: "conf-42",
		TotalPrice:     trip.TotalPrice,
	}
	require.NoError(t, readModel.OnTripBooked(ctx, booked))

	// a stale failure after a successful booking is ignored
	require.NoError(t, readModel.OnTripBookingFailed(ctx, &entities.TripBookingFailed_v1{
		Header: entities.NewEventHeader(),
		TripID: trip.TripID,
		UserID: "user-1",
		Reason: "provider timeout",
	}))

	view, err := readModel.TripByID(ctx, trip.TripID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.TripStatusBooked, view.Status)
	assert.Equal(t, "conf-42", view.ConfirmationID)
	assert.Empty(t, view.FailureReason)
}

func TestTripReadModelUnknownTrip(t *testing.T) {
	readModel := NewTripReadModel(getDb(t))

	_, err := readModel.TripByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, entities.ErrPlanNotFound)
}

func TestEventLogAppendIsIdempotent(t *testing.T) {
	repo := NewEventLogRepository(getDb(t))
	ctx := context.Background()

	event := entities.StoredEvent{
		EventID:     uuid.NewString(),
		EventName:   "TripBooked_v1",
		PublishedAt: time.Now().UTC(),
		Payload:     []byte(`{"trip_id":"x"}`),
	}

	require.NoError(t, repo.Append(ctx, event))
	require.NoError(t, repo.Append(ctx, event))
}
