package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Publisher sends CatalogEvents to a durable queue on the default exchange.
// It dials per publish: writes are rare compared to reads and a broker
// outage must never hold a connection hostage.
type Publisher struct {
	url   string
	queue string
	log   zerolog.Logger
}

// defaultDialTimeout bounds connection setup when ctx carries no deadline.
const defaultDialTimeout = 3 * time.Second

// NewPublisher builds a publisher for queue at url.
func NewPublisher(url, queue string, log zerolog.Logger) *Publisher {
	return &Publisher{url: url, queue: queue, log: log.With().Str("component", "amqp-publisher").Logger()}
}

// Publish marshals ev and publishes it as a persistent message.  Errors are
// logged and returned so the caller can choose to ignore them.
func (p *Publisher) Publish(ctx context.Context, ev CatalogEvent) error {
	timeout, err := dialTimeout(ctx)
	if err != nil {
		return err
	}
	// the deadline covers the TCP connect and the AMQP handshake
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		p.log.Warn().Err(err).Msg("dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn().Err(err).Msg("channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.log.Warn().Err(err).Msg("queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    ev.ID,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Resource + "." + ev.Action,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		msg,
	); err != nil {
		p.log.Warn().Err(err).Str("event_id", ev.ID).Msg("publish failed")
		return err
	}
	return nil
}

// dialTimeout derives the connect budget from ctx.
func dialTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	dl, ok := ctx.Deadline()
	if !ok {
		return defaultDialTimeout, nil
	}
	left := time.Until(dl)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return left, nil
}
