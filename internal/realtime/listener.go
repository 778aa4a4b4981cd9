// Package realtime subscribes to row-level change notifications on the
// content-items table and turns them into tagged change events for the
// store's reconciler. Transport is Postgres LISTEN/NOTIFY; a trigger on the
// table (see scripts/schema.sql) emits one JSON payload per row change.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/contentdeskhq/contentdesk/internal/store"
)

type Subscriber struct {
	listener *pq.Listener
	channel  string
	events   chan store.ChangeEvent
}

func NewSubscriber(postgresURI, channel string) *Subscriber {
	listener := pq.NewListener(postgresURI, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			slog.Warn("realtime listener event", "type", int(ev), "error", err)
		}
	})

	return &Subscriber{
		listener: listener,
		channel:  channel,
		events:   make(chan store.ChangeEvent, 64),
	}
}

// Events is the inbound message channel consumed by the store goroutine.
// Delivery order is channel receipt order; there is no further sequencing.
func (s *Subscriber) Events() <-chan store.ChangeEvent {
	return s.events
}

// Listen blocks decoding notifications until the context is cancelled.
// Reconnects are handled by pq.Listener's built-in backoff.
func (s *Subscriber) Listen(ctx context.Context) error {
	if err := s.listener.Listen(s.channel); err != nil {
		return err
	}
	defer close(s.events)
	defer s.listener.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case notification := <-s.listener.Notify:
			if notification == nil {
				// nil is delivered after a reconnect; state may have moved
				// while we were away.
				continue
			}
			ev, err := DecodePayload([]byte(notification.Extra))
			if err != nil {
				slog.Warn("dropping malformed change payload", "error", err)
				continue
			}
			s.events <- ev

		case <-time.After(90 * time.Second):
			if err := s.listener.Ping(); err != nil {
				slog.Warn("realtime ping failed", "error", err)
			}
		}
	}
}

// DecodePayload parses a trigger payload into a ChangeEvent.
func DecodePayload(payload []byte) (store.ChangeEvent, error) {
	var ev store.ChangeEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return store.ChangeEvent{}, err
	}
	return ev, nil
}
