// Package analytics publishes settled store actions as Kafka events. Only
// the action type, outcome and error message leave the device; payloads
// may hold credentials and are never sent.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/hungrynow/hungrynow/internal/store"
	"github.com/hungrynow/hungrynow/pkg/kafka"
)

// DefaultTopic receives client action events.
const DefaultTopic = "hungrynow.client.actions"

const anonymousKey = "anonymous"

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *kafka.Event) error
}

// ActionEvent is the data of a published event.
type ActionEvent struct {
	Action    string `json:"action"`
	Slice     string `json:"slice"`
	Outcome   string `json:"outcome"`
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Config controls where events go.
type Config struct {
	Topic string
	// Source names the publishing application, e.g. "hungrynow-cli".
	Source  string
	Timeout time.Duration
}

// Recorder turns store actions into events.
type Recorder struct {
	pub    Publisher
	cfg    Config
	logger *slog.Logger
}

func NewRecorder(pub Publisher, cfg Config, logger *slog.Logger) *Recorder {
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	if cfg.Source == "" {
		cfg.Source = "hungrynow-client"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Recorder{pub: pub, cfg: cfg, logger: logger}
}

// Attach subscribes to s and returns the function that detaches.
func (r *Recorder) Attach(s *store.Store) (detach func()) {
	return s.Subscribe(r.Record)
}

// Record publishes a if it settles a request. Publishing failures are
// logged and otherwise ignored.
func (r *Recorder) Record(a store.Action, st store.State) {
	if !a.Settled() {
		return
	}

	key := anonymousKey
	if st.Auth.User != nil && st.Auth.User.ID != "" {
		key = st.Auth.User.ID
	}

	data := ActionEvent{
		Action:    a.Type,
		Slice:     a.Slice(),
		Outcome:   string(a.Phase),
		RequestID: a.RequestID,
		Error:     a.Err,
	}
	event, err := kafka.NewEvent(a.Type+"."+string(a.Phase), key, r.cfg.Source, data)
	if err != nil {
		r.logger.Warn("build analytics event", slog.String("error", err.Error()))
		return
	}
	if a.RequestID != "" {
		event.WithCorrelationID(a.RequestID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.Timeout)
	defer cancel()
	if err := r.pub.Publish(ctx, r.cfg.Topic, event); err != nil {
		r.logger.Warn("publish analytics event",
			slog.String("action", a.Type),
			slog.String("error", err.Error()),
		)
	}
}
