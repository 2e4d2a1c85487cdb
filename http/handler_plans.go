package http

import (
	"net/http"

	"tripplanner/entities"

	"github.com/labstack/echo/v4"
)

func (h Handler) PostTripPlans(c echo.Context) error {
	var criteria entities.SearchCriteria
	if err := c.Bind(&criteria); err != nil {
		return err
	}

	if err := criteria.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snapshot, err := h.planner.CreatePlan(c.Request().Context(), criteria)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, snapshot)
}

func (h Handler) GetTripPlan(c echo.Context) error {
	planID, err := planIDFromPath(c)
	if err != nil {
		return err
	}

	snapshot, err := h.planner.Get(planID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, snapshot)
}

// PostTripPlanSearch re-runs the search. New criteria in the body replace
// the previous ones wholesale, an empty body reuses them.
func (h Handler) PostTripPlanSearch(c echo.Context) error {
	planID, err := planIDFromPath(c)
	if err != nil {
		return err
	}

	current, err := h.planner.Get(planID)
	if err != nil {
		return toHTTPError(err)
	}

	criteria := current.Criteria
	if c.Request().ContentLength > 0 {
		criteria = entities.SearchCriteria{}
		if err := c.Bind(&criteria); err != nil {
			return err
		}
	}
	if err := criteria.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snapshot, err := h.planner.Submit(c.Request().Context(), planID, criteria)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, snapshot)
}

type selectionRequest struct {
	OfferID  string `json:"offer_id"`
	Override bool   `json:"override"`
}

func (h Handler) PutSelectFlight(c echo.Context) error {
	planID, err := planIDFromPath(c)
	if err != nil {
		return err
	}

	var request selectionRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if request.OfferID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "offer_id is required")
	}

	snapshot, err := h.planner.SelectFlight(planID, request.OfferID, request.Override)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, snapshot)
}

func (h Handler) PutSelectHotel(c echo.Context) error {
	planID, err := planIDFromPath(c)
	if err != nil {
		return err
	}

	var request selectionRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if request.OfferID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "offer_id is required")
	}

	snapshot, err := h.planner.SelectHotel(planID, request.OfferID, request.Override)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, snapshot)
}
