package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h Handler) GetTrips(c echo.Context) error {
	trips, err := h.tripViews.AllTrips(c.Request().Context())
	if err != nil {
		return fmt.Errorf("could not load trips: %w", err)
	}

	return c.JSON(http.StatusOK, trips)
}

func (h Handler) GetTripByID(c echo.Context) error {
	trip, err := h.tripViews.TripByID(c.Request().Context(), c.Param("trip_id"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, trip)
}
