// Package messaging publishes domain events to NATS subjects.
package messaging

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"fnoldesk/internal/errs"
	"fnoldesk/internal/ports"
)

const clientName = "fnoldesk"

// conn is the slice of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

type envelope struct {
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Publisher implements ports.EventPublisher over a NATS connection.
type Publisher struct {
	conn   conn
	prefix string
}

var _ ports.EventPublisher = (*Publisher)(nil)

// Connect dials url and returns a publisher that prefixes every subject.
func Connect(ctx context.Context, url string, prefix string) (*Publisher, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nc, err := nats.Connect(url,
		nats.Name(clientName),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, errs.Wrapf(err, "connect nats %s", url)
	}
	return newPublisher(nc, prefix), nil
}

func newPublisher(c conn, prefix string) *Publisher {
	return &Publisher{conn: c, prefix: strings.Trim(prefix, ".")}
}

// Subject joins the configured prefix with an event name.
func (p *Publisher) Subject(name string) string {
	return Subject(p.prefix, name)
}

func Subject(prefix string, name string) string {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func (p *Publisher) Publish(ctx context.Context, event ports.Event) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(event.Name) == "" {
		return errs.Invalid("event name is required")
	}
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	data, err := json.Marshal(envelope{
		Event:      event.Name,
		OccurredAt: occurredAt.UTC(),
		Payload:    event.Payload,
	})
	if err != nil {
		return errs.Wrapf(err, "marshal event %s", event.Name)
	}
	subject := p.Subject(event.Name)
	if err := p.conn.Publish(subject, data); err != nil {
		return errs.Wrapf(err, "publish %s", subject)
	}
	return nil
}

// Close drains pending messages before closing the connection.
func (p *Publisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return errs.Wrap(p.conn.Drain(), "drain nats connection")
}

// NoopPublisher drops every event. It stands in when no NATS url is configured.
type NoopPublisher struct{}

var _ ports.EventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, ports.Event) error { return nil }
