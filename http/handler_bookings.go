package http

import (
	"fmt"
	"net/http"

	"tripplanner/entities"

	"github.com/labstack/echo/v4"
)

type bookingRequest struct {
	UserID string `json:"user_id"`
}

// PostBookings assembles the current selection and sends the BookTrip
// command. Booking happens asynchronously, the caller polls /trips/:trip_id.
func (h Handler) PostBookings(c echo.Context) error {
	planID, err := planIDFromPath(c)
	if err != nil {
		return err
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")
	if idempotencyKey == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Idempotency-Key header is required")
	}

	var request bookingRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if request.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	trip, err := h.planner.Assemble(planID)
	if err != nil {
		return toHTTPError(err)
	}

	cmd := entities.BookTrip{
		Header: entities.NewEventHeaderWithIdempotencyKey(idempotencyKey),
		TripID: trip.TripID,
		UserID: request.UserID,
		Trip:   trip,
	}
	if err := h.cmdBus.Send(c.Request().Context(), cmd); err != nil {
		return fmt.Errorf("could not send BookTrip command: %w", err)
	}

	return c.JSON(http.StatusAccepted, trip)
}
