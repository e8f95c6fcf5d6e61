// Package eventbus implements command.EventPublisher over RabbitMQ: every
// mutation event is marshaled to JSON and published on a topic exchange,
// routed by namespace (spec.md §6 "a topic partitioned by namespace"),
// grounded on components/consumer/internal/adapters/rabbitmq/
// producer.rabbitmq.go's ProducerRabbitMQRepository shape, adapted to the
// module's own common/mrabbitmq connection wrapper instead of lib-commons'.
package eventbus

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/lattice-sh/control-plane/common"
	"github.com/lattice-sh/control-plane/common/mrabbitmq"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/services/command"
)

// amqpChannel is the slice of *amqp.Channel this package depends on,
// broken out so tests can substitute a fake without a live broker —
// grounded on components/transaction/internal/adapters/rabbitmq's
// ChannelProvider mocking seam.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Producer publishes command.Event values on a topic exchange, one
// routing key per namespace.
type Producer struct {
	conn     *mrabbitmq.RabbitMQConnection
	channel  amqpChannel
	exchange string
}

// NewProducer returns a Producer bound to exchange, eagerly establishing
// the RabbitMQ channel the way the teacher's NewProducerRabbitMQ does.
func NewProducer(ctx context.Context, conn *mrabbitmq.RabbitMQConnection, exchange string) *Producer {
	channel, err := conn.GetChannel(ctx)
	if err != nil {
		panic("failed to connect to rabbitmq event bus")
	}

	return &Producer{conn: conn, channel: channel, exchange: exchange}
}

// CheckHealth reports whether the underlying RabbitMQ connection is
// usable, surfaced by internal/bootstrap's readiness check.
func (p *Producer) CheckHealth() bool {
	return p.conn.Connected
}

// Publish marshals e to JSON and publishes it on the bound exchange with
// e.Type as the routing key, so a subscriber can bind to one namespace
// (e.g. "Customer") without receiving every other kind of event.
func (p *Producer) Publish(ctx context.Context, e command.Event) error {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "eventbus.publish")
	defer span.End()

	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, e.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		logger.Errorf("failed to publish %s.%s event: %v", e.Type, e.Event, err)
		return err
	}

	return nil
}
