// Package queue wraps the AMQP broker used for background email
// delivery.
package queue

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Client struct {
	conn *amqp.Connection
	chn  *amqp.Channel
}

func NewClient(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	chn, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	return &Client{conn: conn, chn: chn}, nil
}

func (c *Client) Close() error {
	if err := c.chn.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}

func (c *Client) DeclareQueue(name string) error {
	_, err := c.chn.QueueDeclare(name, true, false, false, false, nil)
	return err
}

// Publish sends a persistent JSON message to the named queue.
func (c *Client) Publish(ctx context.Context, queueName string, body []byte) error {
	return c.chn.PublishWithContext(
		ctx,
		"",
		queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Consume starts a manual-ack consumer on the named queue.
func (c *Client) Consume(queueName string) (<-chan amqp.Delivery, error) {
	return c.chn.Consume(queueName, "", false, false, false, false, nil)
}
