package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type favoriteRequest struct {
	UserID string `json:"user_id"`
}

// PostFavorites assembles the current selection and stores it. The
// TripSavedToFavorites_v1 event goes out through the outbox with the insert.
func (h Handler) PostFavorites(c echo.Context) error {
	planID, err := planIDFromPath(c)
	if err != nil {
		return err
	}

	var request favoriteRequest
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

	if err := h.favoritesRepo.Save(c.Request().Context(), request.UserID, trip); err != nil {
		return fmt.Errorf("could not save favorite: %w", err)
	}

	return c.JSON(http.StatusCreated, trip)
}

func (h Handler) GetFavorites(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	favorites, err := h.favoritesRepo.Favorites(c.Request().Context(), userID)
	if err != nil {
		return fmt.Errorf("could not load favorites: %w", err)
	}

	return c.JSON(http.StatusOK, favorites)
}
