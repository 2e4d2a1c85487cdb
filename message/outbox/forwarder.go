package outbox

import (
	"tripplanner/pkg/log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"
)

// NewForwarder moves committed outbox messages from Postgres to the redis
// stream they were originally addressed to.
func NewForwarder(
	pgSubscriber message.Subscriber,
	redisPublisher message.Publisher,
	logger watermill.LoggerAdapter,
	router *message.Router,
) (*forwarder.Forwarder, error) {
	return forwarder.NewForwarder(pgSubscriber, redisPublisher, logger, forwarder.Config{
		ForwarderTopic: topic,
		Router:         router,
		Middlewares: []message.HandlerMiddleware{
			func(h message.HandlerFunc) message.HandlerFunc {
				return func(msg *message.Message) ([]*message.Message, error) {
					log.FromContext(msg.Context()).WithFields(logrus.Fields{
						"message_id": msg.UUID,
						"metadata":   msg.Metadata,
					}).Info("Forwarding message")
					return h(msg)
				}
			},
		},
	})
}
