package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/hungrynow/hungrynow/pkg/logger"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewEvent(t *testing.T) {
	event, err := NewEvent("address/add.fulfilled", "user-1", "hungrynow-cli", map[string]string{"label": "Home"})
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "address/add.fulfilled", event.EventType)
	assert.Equal(t, "user-1", event.Key)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)
	assert.JSONEq(t, `{"label":"Home"}`, string(event.Data))

	_, err = NewEvent("bad", "k", "src", make(chan int))
	assert.Error(t, err)
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, logger: logger.Discard()}

	event, err := NewEvent("auth/login.fulfilled", "user-1", "hungrynow-cli", nil)
	require.NoError(t, err)
	event.WithCorrelationID("corr-1")

	before := testutil.ToFloat64(producerMessagesPublished.WithLabelValues("hungrynow.actions"))
	require.NoError(t, p.Publish(context.Background(), "hungrynow.actions", event))
	assert.Equal(t, before+1, testutil.ToFloat64(producerMessagesPublished.WithLabelValues("hungrynow.actions")))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "hungrynow.actions", msg.Topic)
	assert.Equal(t, []byte("user-1"), msg.Key)

	carrier := headerCarrier{headers: &msg.Headers}
	assert.Equal(t, "auth/login.fulfilled", carrier.Get("event_type"))
	assert.Equal(t, "corr-1", carrier.Get("correlation_id"))

	decoded, err := UnmarshalEvent(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
}

func TestProducer_PublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := &Producer{writer: w, logger: logger.Discard()}

	event, err := NewEvent("cart/fetch.rejected", "", "hungrynow-cli", nil)
	require.NoError(t, err)

	err = p.Publish(context.Background(), "hungrynow.actions", event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestProducer_InjectsTraceContext(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	traceID, _ := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
	spanID, _ := trace.SpanIDFromHex("b7ad6b7169203331")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled,
	}))

	w := &fakeWriter{}
	p := &Producer{writer: w, logger: logger.Discard()}
	event, err := NewEvent("user/fetchProfile.fulfilled", "u", "hungrynow-cli", nil)
	require.NoError(t, err)
	require.NoError(t, p.Publish(ctx, "t", event))

	carrier := headerCarrier{headers: &w.msgs[0].Headers}
	assert.Equal(t, "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01", carrier.Get("traceparent"))
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, logger: logger.Discard()}
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducer_PingNoBrokers(t *testing.T) {
	p := &Producer{writer: &fakeWriter{}, logger: logger.Discard()}
	assert.Error(t, p.Ping(context.Background()))
}

func TestEvent_JSONFieldNames(t *testing.T) {
	event, err := NewEvent("x", "k", "s", 1)
	require.NoError(t, err)
	raw, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"event_type":"x"`)
	assert.NotContains(t, string(raw), "correlation_id")
}
