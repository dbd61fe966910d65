package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/internal/store"
	"github.com/hungrynow/hungrynow/pkg/kafka"
	"github.com/hungrynow/hungrynow/pkg/logger"
)

type published struct {
	topic string
	event *kafka.Event
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, e *kafka.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, published{topic: topic, event: e})
	return f.err
}

func TestRecorder_PublishesSettledActionsOnly(t *testing.T) {
	pub := &fakePublisher{}
	s := store.New(nil, logger.Discard())
	detach := NewRecorder(pub, Config{Source: "test"}, logger.Discard()).Attach(s)
	defer detach()

	s.Dispatch(store.Action{Type: store.ActionFetchAddresses, Phase: store.Pending, RequestID: "r1"})
	s.Dispatch(store.Action{Type: store.ActionFetchAddresses, Phase: store.Rejected, RequestID: "r1", Err: "Network down"})
	s.ClearMessages(store.SliceAddress)

	require.Len(t, pub.events, 1)
	got := pub.events[0]
	assert.Equal(t, DefaultTopic, got.topic)
	assert.Equal(t, "address/fetchAll.rejected", got.event.EventType)
	assert.Equal(t, "anonymous", got.event.Key)
	assert.Equal(t, "test", got.event.Source)
	assert.Equal(t, "r1", got.event.CorrelationID)

	var data ActionEvent
	require.NoError(t, json.Unmarshal(got.event.Data, &data))
	assert.Equal(t, ActionEvent{
		Action:    store.ActionFetchAddresses,
		Slice:     store.SliceAddress,
		Outcome:   "rejected",
		RequestID: "r1",
		Error:     "Network down",
	}, data)
}

func TestRecorder_KeysBySignedInUserAndOmitsPayload(t *testing.T) {
	pub := &fakePublisher{}
	s := store.New(nil, logger.Discard())
	NewRecorder(pub, Config{Topic: "custom"}, logger.Discard()).Attach(s)

	s.Dispatch(store.Action{
		Type:    store.ActionLogin,
		Phase:   store.Fulfilled,
		Arg:     domain.Credentials{Email: "a@b.co", Password: "Secret1!"},
		Payload: domain.Session{Token: "jwt-token", User: domain.User{ID: "u1"}},
	})

	require.Len(t, pub.events, 1)
	e := pub.events[0].event
	assert.Equal(t, "custom", pub.events[0].topic)
	assert.Equal(t, "u1", e.Key)
	assert.NotContains(t, string(e.Data), "Secret1!")
	assert.NotContains(t, string(e.Data), "jwt-token")
}

func TestRecorder_PublishErrorIsSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	r := NewRecorder(pub, Config{}, logger.Discard())

	assert.NotPanics(t, func() {
		r.Record(store.Action{Type: store.ActionFetchCart, Phase: store.Fulfilled}, store.State{})
	})
	assert.Len(t, pub.events, 1)
}
