package exports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends export requests to QueueName. Each call uses its own
// short-lived connection; exports are rare enough that pooling is not worth
// the reconnect bookkeeping.
type Publisher struct {
	url string
	now func() time.Time
}

func NewPublisher(url string) *Publisher {
	return &Publisher{url: url, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, req Request) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal export request: %w", err)
	}

	ch, conn, err := dialChannel(p.url)
	if err != nil {
		return err
	}
	defer conn.Close()
	defer ch.Close()

	if err := declareQueue(ch); err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", QueueName, false, false, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", QueueName, err)
	}
	return nil
}
