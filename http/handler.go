package http

import (
	"context"
	"errors"
	"net/http"

	"tripplanner/entities"
	"tripplanner/planner"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	cmdBus        *cqrs.CommandBus
	planner       TripPlanner
	favoritesRepo FavoritesRepository
	tripViews     TripViewsRepository
}

type TripPlanner interface {
	CreatePlan(ctx context.Context, criteria entities.SearchCriteria) (planner.PlanSnapshot, error)
	Submit(ctx context.Context, planID uuid.UUID, criteria entities.SearchCriteria) (planner.PlanSnapshot, error)
	Get(planID uuid.UUID) (planner.PlanSnapshot, error)
	SelectFlight(planID uuid.UUID, token string, override bool) (planner.PlanSnapshot, error)
	SelectHotel(planID uuid.UUID, offerID string, override bool) (planner.PlanSnapshot, error)
	Assemble(planID uuid.UUID) (entities.TripPackage, error)
}

type FavoritesRepository interface {
	Save(ctx context.Context, userID string, trip entities.TripPackage) error
	Favorites(ctx context.Context, userID string) ([]entities.TripPackage, error)
}

type TripViewsRepository interface {
	AllTrips(ctx context.Context) ([]entities.TripView, error)
	TripByID(ctx context.Context, tripID string) (entities.TripView, error)
}

func planIDFromPath(c echo.Context) (uuid.UUID, error) {
	planID, err := uuid.Parse(c.Param("plan_id"))
	if err != nil {
		return uuid.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "invalid plan id")
	}
	return planID, nil
}

// toHTTPError maps domain errors onto status codes. Anything unmapped stays
// a 500 so it is visible in logs.
func toHTTPError(err error) error {
	var incomplete entities.IncompleteSelectionError
	switch {
	case errors.Is(err, entities.ErrPlanNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrOfferNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrOverBudget):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.As(err, &incomplete):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return err
	}
}
