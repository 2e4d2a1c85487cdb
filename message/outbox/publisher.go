package outbox

import (
	"context"
	"fmt"

	"tripplanner/pkg/log"
	observability "tripplanner/trace"

	watermillSQL "github.com/ThreeDotsLabs/watermill-sql/v2/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
)

// NewPublisherForDb returns a publisher writing to the outbox table inside
// the given transaction. Messages become visible to the forwarder only when
// the transaction commits.
func NewPublisherForDb(ctx context.Context, tx *sqlx.Tx) (message.Publisher, error) {
	logger := log.NewWatermill(log.FromContext(ctx))

	var publisher message.Publisher
	publisher, err := watermillSQL.NewPublisher(
		tx,
		watermillSQL.PublisherConfig{
			SchemaAdapter:        watermillSQL.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: true,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create outbox publisher: %w", err)
	}
	publisher = log.CorrelationPublisherDecorator{Publisher: publisher}
	publisher = observability.TracingPublisherDecorator{Publisher: publisher}

	publisher = forwarder.NewPublisher(publisher, forwarder.PublisherConfig{
		ForwarderTopic: topic,
	})
	publisher = log.CorrelationPublisherDecorator{Publisher: publisher}
	publisher = observability.TracingPublisherDecorator{Publisher: publisher}

	return publisher, nil
}
