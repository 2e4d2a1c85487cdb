package http

import (
	"net/http"

	"tripplanner/pkg/log"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func NewHttpRouter(
	cmdBus *cqrs.CommandBus,
	planner TripPlanner,
	favoritesRepo FavoritesRepository,
	tripViews TripViewsRepository,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(otelecho.Middleware("trip-planner"))
	e.Use(correlationMiddleware)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler := Handler{
		cmdBus:        cmdBus,
		planner:       planner,
		favoritesRepo: favoritesRepo,
		tripViews:     tripViews,
	}

	e.POST("/trip-plans", handler.PostTripPlans)
	e.GET("/trip-plans/:plan_id", handler.GetTripPlan)
	e.POST("/trip-plans/:plan_id/search", handler.PostTripPlanSearch)
	e.PUT("/trip-plans/:plan_id/selection/flight", handler.PutSelectFlight)
	e.PUT("/trip-plans/:plan_id/selection/hotel", handler.PutSelectHotel)
	e.POST("/trip-plans/:plan_id/favorites", handler.PostFavorites)
	e.POST("/trip-plans/:plan_id/bookings", handler.PostBookings)
	e.GET("/favorites", handler.GetFavorites)
	e.GET("/trips", handler.GetTrips)
	e.GET("/trips/:trip_id", handler.GetTripByID)

	return e
}

func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		correlationID := c.Request().Header.Get("Correlation-ID")
		if correlationID == "" {
			correlationID = shortuuid.New()
		}

		ctx := c.Request().Context()
		ctx = log.ToContext(ctx, logrus.WithFields(logrus.Fields{"correlation_id": correlationID}))
		ctx = log.ContextWithCorrelationID(ctx, correlationID)

		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set("Correlation-ID", correlationID)

		return next(c)
	}
}
