package notifier

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitClient owns one connection/channel pair and a declared queue for
// outbox messages.
type RabbitClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewRabbitClient(url, queue string) (*RabbitClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp.Dial -> %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("conn.Channel -> %w", err)
	}

	if _, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("ch.QueueDeclare -> %w", err)
	}

	return &RabbitClient{
		conn:    conn,
		channel: ch,
		queue:   queue,
	}, nil
}

func (c *RabbitClient) Publish(body []byte) error {
	return c.channel.Publish(
		"",
		c.queue,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Consume feeds queued messages to handler together with the broker's
// redelivered flag. A handler error nacks the message back onto the
// queue; successful handling acks it.
func (c *RabbitClient) Consume(handler func(body []byte, redelivered bool) error) error {
	deliveries, err := c.channel.Consume(
		c.queue,
		"",
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("ch.Consume -> %w", err)
	}

	go func() {
		for d := range deliveries {
			if err := handler(d.Body, d.Redelivered); err != nil {
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}()

	return nil
}

func (c *RabbitClient) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
