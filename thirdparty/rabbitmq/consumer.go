package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/muhammadheryan/store/model"
	"github.com/muhammadheryan/store/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AllProductEvents binds a queue to every product routing key.
const AllProductEvents = "product.#"

// ProductEventHandler processes one decoded event. A returned error requeues the message.
type ProductEventHandler func(ctx context.Context, event model.ProductEvent) error

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	queue   string
}

func NewConsumer(host string, port int, user, password, exchange, queue string) (*Consumer, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}

	if err := declareExchange(channel, exchange); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	// Declare the queue
	_, err = channel.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	// Bind queue to exchange
	err = channel.QueueBind(
		queue,
		AllProductEvents,
		exchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Consumer{
		conn:    conn,
		channel: channel,
		queue:   queue,
	}, nil
}

// Start consumes until ctx is cancelled or the channel closes. The returned
// channel is closed when the consume loop exits.
func (c *Consumer) Start(ctx context.Context, handler ProductEventHandler) (<-chan struct{}, error) {
	// Set QoS to 1 - process one message at a time
	err := c.channel.Qos(1, 0, false)
	if err != nil {
		return nil, err
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				processDelivery(ctx, msg, handler)
			}
		}
	}()

	return done, nil
}

// processDelivery acks handled and undecodable messages and requeues handler failures.
func processDelivery(ctx context.Context, msg amqp091.Delivery, handler ProductEventHandler) {
	var event model.ProductEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		logger.Warn("[Consumer] dropping malformed product event",
			zap.String("message_id", msg.MessageId),
			zap.String("error", err.Error()),
		)
		_ = msg.Ack(false)
		return
	}

	if err := handler(ctx, event); err != nil {
		logger.Error("[Consumer] handler failed, requeueing",
			zap.String("message_id", msg.MessageId),
			zap.String("type", string(event.Type)),
			zap.String("error", err.Error()),
		)
		_ = msg.Nack(false, true)
		return
	}

	_ = msg.Ack(false)
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
