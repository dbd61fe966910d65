package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hungrynow/hungrynow/pkg/logger"
)

// ErrInFlight is returned by an exclusive thunk while an earlier dispatch
// of the same thunk has not settled. The store is left untouched.
var ErrInFlight = errors.New("request already in flight")

// Thunk wraps one asynchronous operation. Dispatch brackets Run with a
// pending action and either a fulfilled action carrying Run's result or a
// rejected action carrying the error message.
type Thunk[In, Out any] struct {
	Type string
	// Fallback is the rejection message when the error has none.
	Fallback string
	// Exclusive thunks refuse to start while one is outstanding.
	Exclusive bool
	Run       func(ctx context.Context, sess Session, in In) (Out, error)
}

// Dispatch runs the thunk against s. It blocks until the operation settles
// and returns Run's result; the error is also recorded in state as a
// string.
func (t Thunk[In, Out]) Dispatch(ctx context.Context, s *Store, in In) (Out, error) {
	var zero Out
	if t.Exclusive {
		if !s.acquire(t.Type) {
			inFlightRejections.WithLabelValues(t.Type).Inc()
			return zero, ErrInFlight
		}
		defer s.release(t.Type)
	}

	l := logger.WithContext(ctx, s.logger)
	requestID := uuid.NewString()
	start := time.Now()

	s.Dispatch(Action{Type: t.Type, Phase: Pending, RequestID: requestID, Arg: in})

	out, err := t.Run(ctx, s.session, in)
	if err != nil {
		thunkDuration.WithLabelValues(t.Type, "rejected").Observe(time.Since(start).Seconds())
		msg := err.Error()
		if msg == "" {
			msg = t.Fallback
		}
		l.WarnContext(ctx, "action rejected",
			slog.String("action", t.Type),
			slog.String("request_id", requestID),
			slog.String("error", msg),
		)
		s.Dispatch(Action{Type: t.Type, Phase: Rejected, RequestID: requestID, Arg: in, Err: msg})
		return zero, err
	}

	thunkDuration.WithLabelValues(t.Type, "fulfilled").Observe(time.Since(start).Seconds())
	l.DebugContext(ctx, "action fulfilled",
		slog.String("action", t.Type),
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
	)
	s.Dispatch(Action{Type: t.Type, Phase: Fulfilled, RequestID: requestID, Arg: in, Payload: out})
	return out, nil
}
