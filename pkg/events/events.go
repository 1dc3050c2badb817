// Package events publishes invitation outcomes for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Outcome kinds.
const (
	KindSent   = "sent"
	KindFailed = "failed"
	KindError  = "error"
)

// Outcome describes what happened to one invitation attempt. It never carries
// the raw email address.
type Outcome struct {
	Kind             string    `json:"kind"`
	EmailFingerprint string    `json:"emailFingerprint"`
	Status           int       `json:"status,omitempty"`
	Message          string    `json:"message,omitempty"`
	At               time.Time `json:"at"`
}

// Publisher sends outcomes somewhere.
type Publisher interface {
	Publish(ctx context.Context, outcome Outcome) error
	Close() error
}

// Nop drops every outcome.
type Nop struct{}

func (Nop) Publish(context.Context, Outcome) error { return nil }
func (Nop) Close() error                           { return nil }

type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSPublisher publishes outcomes as JSON on a single subject.
type NATSPublisher struct {
	nc      conn
	subject string
}

// NewNATSPublisher connects to url and publishes on subject.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("doctor-invites"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NATSPublisher{nc: nc, subject: subject}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, outcome Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if outcome.At.IsZero() {
		outcome.At = time.Now().UTC()
	}
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}
