package exports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notesapp/internal/logging"
	"github.com/dmitrijs2005/notesapp/internal/server/models"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// NotesLister is satisfied by *services.NoteService.
type NotesLister interface {
	GetNotes(ctx context.Context, userID string) ([]*models.Note, error)
}

type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

const (
	prefetch       = 10
	minBackoff     = time.Second
	maxBackoff     = 30 * time.Second
	exportFileName = "notes.json"
	exportSubject  = "Notes export"
)

var errDeliveriesClosed = errors.New("deliveries channel closed")

type Consumer struct {
	url    string
	notes  NotesLister
	store  ObjectStore
	mailer Mailer
	log    logging.Logger

	minBackoff time.Duration
	maxBackoff time.Duration
	newKey     func(userID string) string
}

func NewConsumer(url string, notes NotesLister, store ObjectStore, mailer Mailer, log logging.Logger) *Consumer {
	return &Consumer{
		url:        url,
		notes:      notes,
		store:      store,
		mailer:     mailer,
		log:        log.With("component", "export-consumer"),
		minBackoff: minBackoff,
		maxBackoff: maxBackoff,
		newKey: func(userID string) string {
			return fmt.Sprintf("exports/%s/%s.json", userID, uuid.NewString())
		},
	}
}

// Run consumes QueueName until ctx is cancelled, reconnecting with
// exponential backoff whenever the broker goes away.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := c.minBackoff
	for {
		ch, conn, err := dialChannel(c.url)
		if err != nil {
			c.log.Warn(ctx, "broker unavailable", "err", err, "retry_in", backoff.String())
			if !sleep(ctx, backoff) {
				return nil
			}
			backoff = min(backoff*2, c.maxBackoff)
			continue
		}
		backoff = c.minBackoff

		err = c.consume(ctx, ch)
		_ = ch.Close()
		_ = conn.Close()

		if ctx.Err() != nil {
			return nil
		}
		c.log.Warn(ctx, "consume loop ended, reconnecting", "err", err)
		if !sleep(ctx, backoff) {
			return nil
		}
	}
}

func (c *Consumer) consume(ctx context.Context, ch channel) error {
	if err := ch.Qos(prefetch, 0, false); err != nil {
		c.log.Warn(ctx, "set qos failed", "err", err)
	}
	if err := declareQueue(ch); err != nil {
		return err
	}

	msgs, err := ch.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", QueueName, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errDeliveriesClosed
			}
			c.deliver(ctx, d)
		}
	}
}

// deliver never requeues: a request that failed once is dropped rather than
// spun on.
func (c *Consumer) deliver(ctx context.Context, d amqp.Delivery) {
	if err := c.Handle(ctx, d.Body); err != nil {
		c.log.Error(ctx, "export failed", "err", err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

type exportDocument struct {
	Notes []*models.Note `json:"notes"`
}

// Handle processes one queued export request.
func (c *Consumer) Handle(ctx context.Context, body []byte) error {
	req, err := ParseRequest(body)
	if err != nil {
		return err
	}

	notes, err := c.notes.GetNotes(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("load notes for %s: %w", req.UserID, err)
	}
	if notes == nil {
		notes = []*models.Note{}
	}

	payload, err := json.MarshalIndent(exportDocument{Notes: notes}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}

	key := c.newKey(req.UserID)
	if err := c.store.Put(ctx, key, payload, "application/json"); err != nil {
		return err
	}
	link, err := c.store.PresignGet(ctx, key)
	if err != nil {
		return err
	}

	mail := Mail{
		To:      req.TargetEmail,
		Subject: exportSubject,
		Text: fmt.Sprintf("Your notes export is ready (%d notes).\r\n\r\nDownload: %s\r\n",
			len(notes), link),
		Attachments: []Attachment{{
			Name:        exportFileName,
			ContentType: "application/json",
			Data:        payload,
		}},
	}
	if err := c.mailer.Send(ctx, mail); err != nil {
		return err
	}

	c.log.Info(ctx, "export sent", "user_id", req.UserID, "notes", len(notes), "key", key)
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
