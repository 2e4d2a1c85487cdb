package service

import (
	"context"
	"errors"
	stdHTTP "net/http"
	"time"

	"tripplanner/api"
	"tripplanner/db"
	"tripplanner/entities"
	tripplannerHTTP "tripplanner/http"
	"tripplanner/message"
	"tripplanner/message/command"
	"tripplanner/message/event"
	"tripplanner/message/outbox"
	"tripplanner/metrics"
	"tripplanner/pkg/log"
	"tripplanner/planner"

	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Config struct {
	Provider   api.Config
	Rates      entities.RateTable
	LegTimeout time.Duration
	HTTPAddr   string
}

type Service struct {
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
	httpAddr        string
}

func New(
	redisClient *redis.Client,
	conn db.DB,
	cfg Config,
) Service {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	redisPublisher := message.NewRedisPublisher(redisClient, watermillLogger)

	eventBus := event.NewBus(redisPublisher)
	commandBus := command.NewBus(redisPublisher)

	destinationsClient := api.NewDestinationsClient(cfg.Provider)
	flightsClient := api.NewFlightsClient(cfg.Provider)
	hotelsClient := api.NewHotelsClient(cfg.Provider, destinationsClient)
	tripsClient := api.NewTripsClient(cfg.Provider)

	legTimeout := cfg.LegTimeout
	if legTimeout == 0 {
		legTimeout = 15 * time.Second
	}
	orchestrator := planner.NewOrchestrator(
		flightsClient,
		hotelsClient,
		cfg.Rates,
		legTimeout,
		metrics.New(nil),
	)

	favoritesRepo := db.NewFavoritesRepository(&conn)
	bookingsRepo := db.NewBookingsRepository(&conn)
	tripReadModel := db.NewTripReadModel(&conn)
	eventLogRepo := db.NewEventLogRepository(&conn)

	eventsHandler := event.NewHandler(tripReadModel, eventLogRepo)
	commandsHandler := command.NewHandler(eventBus, tripsClient, bookingsRepo)

	eventProcessorConfig := event.NewProcessorConfig(redisClient, watermillLogger)
	commandProcessorConfig := command.NewProcessorConfig(redisClient, watermillLogger)

	pgSubscriber := outbox.SubscribeForPGMessages(conn.Conn, watermillLogger)
	watermillRouter := message.NewWatermillRouter(
		pgSubscriber,
		redisPublisher,
		eventProcessorConfig,
		commandProcessorConfig,
		eventsHandler,
		commandsHandler,
		watermillLogger,
	)

	echoRouter := tripplannerHTTP.NewHttpRouter(
		commandBus,
		orchestrator,
		favoritesRepo,
		tripReadModel,
	)

	httpAddr := cfg.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	return Service{
		watermillRouter: watermillRouter,
		echoRouter:      echoRouter,
		httpAddr:        httpAddr,
	}
}

func (s Service) Run(ctx context.Context) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
		// the HTTP server reports healthy only once the router consumes
		<-s.watermillRouter.Running()

		err := s.echoRouter.Start(s.httpAddr)
		if err != nil && !errors.Is(err, stdHTTP.ErrServerClosed) {
			return err
		}

		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		return s.echoRouter.Shutdown(context.Background())
	})

	return errgrp.Wait()
}
