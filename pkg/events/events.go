// Package events wraps the RabbitMQ connection used for order lifecycle
// events. Publishing is fire-and-forget from the API's point of view; the
// consumer side acknowledges per message.
package events

import (
	"fmt"
	"log"

	amqp "github.com/streadway/amqp"
)

const (
	exchangeName = "orders"
	queueName    = "order_events"
)

// Routing keys of the events the API emits.
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
)

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewClient connects to RabbitMQ and declares the order exchange and its
// queue, binding every order.* routing key.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchangeName, err)
	}

	queue, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	if err := ch.QueueBind(queue.Name, "order.*", exchangeName, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue %s: %w", queueName, err)
	}

	return &Client{conn: conn, channel: ch}, nil
}

// Publish sends one persistent JSON message with the given routing key.
func (c *Client) Publish(routingKey string, body []byte) error {
	err := c.channel.Publish(
		exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}
	return nil
}

// Consume delivers queued order events to handler one at a time. A nil
// handler error acknowledges the message; an error requeues it.
func (c *Client) Consume(handler func(amqp.Delivery) error) error {
	deliveries, err := c.channel.Consume(
		queueName,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", queueName, err)
	}

	for delivery := range deliveries {
		if err := handler(delivery); err != nil {
			log.Printf("failed to handle event %s (tag %d): %v", delivery.RoutingKey, delivery.DeliveryTag, err)
			if nackErr := delivery.Nack(false, true); nackErr != nil {
				log.Printf("failed to nack delivery %d: %v", delivery.DeliveryTag, nackErr)
			}
			continue
		}
		if ackErr := delivery.Ack(false); ackErr != nil {
			log.Printf("failed to ack delivery %d: %v", delivery.DeliveryTag, ackErr)
		}
	}
	return nil
}

// Close tears down the channel and connection.
func (c *Client) Close() error {
	if err := c.channel.Close(); err != nil {
		c.conn.Close()
		return fmt.Errorf("failed to close channel: %w", err)
	}
	return c.conn.Close()
}
