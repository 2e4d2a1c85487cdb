package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tripplanner/entities"
)

// TripsClient talks to the booking collaborator. Invoice generation and
// payment capture are entirely its responsibility.
type TripsClient struct {
	client client
}

func NewTripsClient(cfg Config) *TripsClient {
	return &TripsClient{client: newClient(cfg)}
}

type createBookingRequest struct {
	TripID     string                 `json:"trip_id"`
	UserID     string                 `json:"user_id"`
	Flight     entities.FlightSummary `json:"flight"`
	Hotel      entities.HotelSummary  `json:"hotel"`
	TotalPrice entities.Money         `json:"total_price"`
}

type createBookingResponse struct {
	ConfirmationID string `json:"confirmation_id"`
}

func (c *TripsClient) CreateBooking(ctx context.Context, request entities.BookTripRequest) (string, error) {
	payload, err := json.Marshal(createBookingRequest{
		TripID:     request.TripID.String(),
		UserID:     request.UserID,
		Flight:     request.Trip.Flight,
		Hotel:      request.Trip.Hotel,
		TotalPrice: request.Trip.TotalPrice,
	})
	if err != nil {
		return "", fmt.Errorf("could not marshal booking request: %w", err)
	}

	resp, err := c.client.post(ctx, "/bookings", bytes.NewReader(payload), request.IdempotencyKey)
	if err != nil {
		return "", fmt.Errorf("could not create booking: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// 200 means the idempotency key was seen before, same result
		var response createBookingResponse
		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			return "", entities.ProviderError{Op: "create booking", Err: fmt.Errorf("malformed payload: %w", err)}
		}
		return response.ConfirmationID, nil
	default:
		return "", entities.ProviderError{
			Op:  "create booking",
			Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}
}
