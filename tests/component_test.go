package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"tripplanner/api"
	"tripplanner/db"
	"tripplanner/entities"
	"tripplanner/message"
	"tripplanner/planner"
	"tripplanner/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComponent runs the whole service against a stubbed travel provider.
// It needs redis and postgres, so it is skipped unless REDIS_ADDR and
// POSTGRES_URL are set.
func TestComponent(t *testing.T) {
	if os.Getenv("REDIS_ADDR") == "" || os.Getenv("POSTGRES_URL") == "" {
		t.Skip("REDIS_ADDR and POSTGRES_URL are required")
	}

	provider := httptest.NewServer(http.HandlerFunc(providerStub))
	defer provider.Close()

	conn, err := db.NewDBConn(os.Getenv("POSTGRES_URL"))
	require.NoError(t, err)
	defer conn.Close()
	conn.MigrateSchema()

	redisClient := message.NewRedisClient(os.Getenv("REDIS_ADDR"))
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := service.New(redisClient, conn, service.Config{
		Provider: api.Config{BaseURL: provider.URL},
		Rates: entities.RateTable{
			"USD": 1_000_000,
			"PKR": 3_600,
		},
		HTTPAddr: ":8090",
	})

	go func() {
		assert.NoError(t, svc.Run(ctx))
	}()
	waitForHttpServer(t)

	var snapshot planner.PlanSnapshot
	status := doJSON(t, http.MethodPost, "/trip-plans", searchCriteria(), &snapshot, nil)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, planner.StatusSuccess, snapshot.Status)
	require.NotEmpty(t, snapshot.Flights.Matches)
	require.NotEmpty(t, snapshot.Hotels.Matches)

	planPath := "/trip-plans/" + snapshot.PlanID.String()

	status = doJSON(t, http.MethodPut, planPath+"/selection/flight", map[string]any{"offer_id": "f-1"}, nil, nil)
	require.Equal(t, http.StatusOK, status)
	status = doJSON(t, http.MethodPut, planPath+"/selection/hotel", map[string]any{"offer_id": "h-1"}, nil, nil)
	require.Equal(t, http.StatusOK, status)

	var trip entities.TripPackage
	status = doJSON(t, http.MethodPost, planPath+"/favorites", map[string]any{"user_id": "user-1"}, &trip, nil)
	require.Equal(t, http.StatusCreated, status)

	// the favorite reaches the read model through the outbox
	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		var view entities.TripView
		status := getJSON("/trips/"+trip.TripID.String(), &view)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, entities.TripStatusFavorited, view.Status)
	}, 15*time.Second, 100*time.Millisecond)

	status = doJSON(t, http.MethodPost, planPath+"/bookings", map[string]any{"user_id": "user-1"}, nil, map[string]string{"Idempotency-Key": idempotencyKey()})
	require.Equal(t, http.StatusAccepted, status)

	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		var view entities.TripView
		status := getJSON("/trips/"+trip.TripID.String(), &view)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, entities.TripStatusBooked, view.Status)
		assert.Equal(t, "conf-1", view.ConfirmationID)
	}, 15*time.Second, 100*time.Millisecond)
}

func providerStub(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/flights/search":
		_ = json.NewEncoder(w).Encode(map[string]any{
			"flights": []map[string]any{
				{"token": "f-1", "origin": "KHI", "destination": "DXB", "price": map[string]string{"amount": "30000.00", "currency": "PKR"}},
			},
		})
	case "/hotels/search":
		_ = json.NewEncoder(w).Encode(map[string]any{
			"hotels": []map[string]any{
				{"id": "h-1", "name": "Hotel One", "price_per_night": map[string]string{"amount": "8000.00", "currency": "PKR"}},
			},
		})
	case "/bookings":
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"confirmation_id": "conf-1"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
