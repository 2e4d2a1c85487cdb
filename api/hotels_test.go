package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tripplanner/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hotelsCriteria(destinationID, destinationQuery string) entities.SearchCriteria {
	return entities.SearchCriteria{
		OriginID:         "KHI",
		DestinationID:    destinationID,
		DestinationQuery: destinationQuery,
		DepartureDate:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		HotelBudget:      entities.NewMoney(500_00, "USD"),
		StayNights:       2,
		TripType:         entities.TripTypeReturn,
	}
}

func hotelsResponse(ids ...string) map[string]any {
	hotels := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		hotels = append(hotels, map[string]any{
			"id":              id,
			"name":            "Hotel " + id,
			"price_per_night": map[string]string{"amount": "120.00", "currency": "USD"},
		})
	}
	return map[string]any{"hotels": hotels}
}

func TestSearchHotels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hotels/search", r.URL.Path)
		assert.Equal(t, "dest-1", r.URL.Query().Get("dest_id"))
		assert.Equal(t, "2026-10-01", r.URL.Query().Get("arrival_date"))
		assert.Equal(t, "2026-10-03", r.URL.Query().Get("departure_date"))
		assert.Equal(t, "USD", r.URL.Query().Get("currency"))

		require.NoError(t, json.NewEncoder(w).Encode(hotelsResponse("h1", "h2")))
	}))
	defer server.Close()

	client := NewHotelsClient(Config{BaseURL: server.URL}, &DestinationsMock{})

	offers, err := client.SearchHotels(context.Background(), hotelsCriteria("dest-1", ""))
	require.NoError(t, err)

	require.Len(t, offers, 2)
	assert.Equal(t, "h1", offers[0].ID)
	assert.Equal(t, int64(120_00), offers[0].PricePerNight.Amount)
	assert.NotEmpty(t, offers[0].Raw)
}

func TestSearchHotelsFallbackResolvesOnce(t *testing.T) {
	var searchCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		searchCalls++
		if r.URL.Query().Get("dest_id") == "bad-id" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(hotelsResponse("h1")))
	}))
	defer server.Close()

	resolver := &DestinationsMock{Destination: entities.Destination{ID: "good-id", Name: "Paris"}}
	client := NewHotelsClient(Config{BaseURL: server.URL}, resolver)

	offers, err := client.SearchHotels(context.Background(), hotelsCriteria("bad-id", "Paris"))
	require.NoError(t, err)

	assert.Len(t, offers, 1)
	assert.Equal(t, 2, searchCalls)
	assert.Equal(t, []string{"Paris"}, resolver.Queries)
}

func TestSearchHotelsNoSecondFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resolver := &DestinationsMock{Destination: entities.Destination{ID: "still-bad"}}
	client := NewHotelsClient(Config{BaseURL: server.URL}, resolver)

	_, err := client.SearchHotels(context.Background(), hotelsCriteria("", "Nowhere"))
	require.Error(t, err)

	// resolved before the first call, so the unknown-destination response
	// must not trigger another resolution
	assert.Len(t, resolver.Queries, 1)

	var providerErr entities.ProviderError
	assert.ErrorAs(t, err, &providerErr)
}

func TestSearchHotelsEmptyResultIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(hotelsResponse()))
	}))
	defer server.Close()

	client := NewHotelsClient(Config{BaseURL: server.URL}, &DestinationsMock{})

	offers, err := client.SearchHotels(context.Background(), hotelsCriteria("dest-1", ""))
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestSearchHotelsMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewHotelsClient(Config{BaseURL: server.URL}, &DestinationsMock{})

	_, err := client.SearchHotels(context.Background(), hotelsCriteria("dest-1", ""))
	require.Error(t, err)

	var providerErr entities.ProviderError
	assert.ErrorAs(t, err, &providerErr)
}
