package events

import (
	"encoding/json"
	"log"
	"time"

	"digest-service/metrics"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	SubjectInteractions = "digest.interactions"
	SubjectViews        = "digest.views"
)

// InteractionEvent is emitted after every recorded reading interaction.
type InteractionEvent struct {
	EventID    string    `json:"eventId"`
	UserID     string    `json:"userId"`
	DocumentID string    `json:"documentId"`
	NewsItemID int       `json:"newsItemId"`
	TimeSpent  int64     `json:"timeSpent"`
	Completed  bool      `json:"completed"`
	Category   string    `json:"category,omitempty"`
	EditionKey string    `json:"editionKey,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ViewEvent is emitted after every news item view increment.
type ViewEvent struct {
	EventID    string    `json:"eventId"`
	EditionKey string    `json:"editionKey"`
	NewsItemID int       `json:"newsItemId"`
	Category   string    `json:"category,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Envelope is the wire format shared by both subjects.
type Envelope struct {
	Event       string            `json:"event"`
	Timestamp   time.Time         `json:"timestamp"`
	Source      string            `json:"source"`
	Version     string            `json:"version"`
	Interaction *InteractionEvent `json:"interaction,omitempty"`
	View        *ViewEvent        `json:"view,omitempty"`
}

func newEnvelope(event string) Envelope {
	return Envelope{
		Event:     event,
		Timestamp: time.Now(),
		Source:    "digest-service",
		Version:   "1.0",
	}
}

// Publisher publishes digest events to NATS. A nil publisher is valid and
// drops everything, so the API can run without a broker.
type Publisher struct {
	conn *nats.Conn
}

// Connect dials NATS with endless reconnects. The caller decides whether a
// connection failure is fatal; for the API server it is not.
func Connect(url, name string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("[INFO] Reconnected to NATS at %s", nc.ConnectedUrl())
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("[WARN] NATS connection lost: %v", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: nc}, nil
}

func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}

// PublishInteraction publishes an interaction event. Best effort: the
// recording write has already succeeded by the time this runs.
func (p *Publisher) PublishInteraction(ev InteractionEvent) error {
	ev.EventID = uuid.NewString()
	ev.Timestamp = time.Now()

	env := newEnvelope("interaction")
	env.Interaction = &ev
	return p.publish(SubjectInteractions, env)
}

// PublishView publishes a view-increment event.
func (p *Publisher) PublishView(ev ViewEvent) error {
	ev.EventID = uuid.NewString()
	ev.Timestamp = time.Now()

	env := newEnvelope("view")
	env.View = &ev
	return p.publish(SubjectViews, env)
}

func (p *Publisher) publish(subject string, env Envelope) error {
	if p == nil || p.conn == nil {
		return nil
	}

	data, err := json.Marshal(env)
	if err != nil {
		return err
	}

	if err := p.conn.Publish(subject, data); err != nil {
		metrics.EventsPublished.WithLabelValues(subject, "error").Inc()
		return err
	}
	metrics.EventsPublished.WithLabelValues(subject, "ok").Inc()
	return nil
}
