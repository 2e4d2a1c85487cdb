package log

import (
	"github.com/ThreeDotsLabs/watermill/message"
)

const correlationIDMetadataKey = "correlation_id"

// CorrelationPublisherDecorator copies the correlation id from the message
// context into the message metadata before publishing.
type CorrelationPublisherDecorator struct {
	message.Publisher
}

func (d CorrelationPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for i := range messages {
		// if the correlation id is already set, the message was forwarded
		// from the outbox and the original value wins
		if messages[i].Metadata.Get(correlationIDMetadataKey) != "" {
			continue
		}

		correlationID := CorrelationIDFromContext(messages[i].Context())
		if correlationID != "" {
			messages[i].Metadata.Set(correlationIDMetadataKey, correlationID)
		}
	}

	return d.Publisher.Publish(topic, messages...)
}
