package message

import (
	"tripplanner/message/command"
	"tripplanner/message/event"
	"tripplanner/message/outbox"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
)

func NewWatermillRouter(
	pgSubscriber message.Subscriber,
	publisher message.Publisher,
	eventProcessorConfig cqrs.EventProcessorConfig,
	commandProcessorConfig cqrs.CommandProcessorConfig,
	eventHandler event.Handler,
	commandHandler command.Handler,
	watermillLogger watermill.LoggerAdapter,
) *message.Router {
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		panic(err)
	}

	useMiddlewares(router, watermillLogger)

	_, err = outbox.NewForwarder(pgSubscriber, publisher, watermillLogger, router)
	if err != nil {
		panic(err)
	}

	eventProcessor, err := cqrs.NewEventProcessorWithConfig(router, eventProcessorConfig)
	if err != nil {
		panic(err)
	}

	commandProcessor, err := cqrs.NewCommandProcessorWithConfig(router, commandProcessorConfig)
	if err != nil {
		panic(err)
	}

	err = commandProcessor.AddHandlers(
		cqrs.NewCommandHandler(
			"BookTrip",
			commandHandler.BookTrip,
		),
	)
	if err != nil {
		panic(err)
	}

	err = eventProcessor.AddHandlers(
		cqrs.NewEventHandler(
			"ProjectTripSaved",
			eventHandler.ProjectTripSaved,
		),
		cqrs.NewEventHandler(
			"ProjectTripBooked",
			eventHandler.ProjectTripBooked,
		),
		cqrs.NewEventHandler(
			"ProjectTripBookingFailed",
			eventHandler.ProjectTripBookingFailed,
		),
		cqrs.NewEventHandler(
			"LogTripSaved",
			eventHandler.LogTripSaved,
		),
		cqrs.NewEventHandler(
			"LogTripBooked",
			eventHandler.LogTripBooked,
		),
		cqrs.NewEventHandler(
			"LogTripBookingFailed",
			eventHandler.LogTripBookingFailed,
		),
	)
	if err != nil {
		panic(err)
	}

	return router
}
