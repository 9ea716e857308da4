package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"livefeed/internal/pkg/logx"
)

// EventSink is one open client connection that receives framed updates.
type EventSink interface {
	// Send writes one encoded update as a single framed event.
	Send(payload []byte) error

	// KeepAlive writes a frame that carries no update, to keep idle connections open.
	KeepAlive() error
}

// StreamOptions tune a stream consumer.
type StreamOptions struct {
	// KeepAlive is the idle time after which a keepalive frame is sent. Zero disables it.
	KeepAlive time.Duration
}

// Stream drains hp's update queue into sink until the connection ends.
//
// Updates are delivered in queue order. Cancellation of ctx (client disconnect or
// server shutdown) and closure of the queue (logout) end the stream normally and
// return nil; updates still queued stay for the next consumer. A failed Send returns
// the update to the head of the queue and ends the stream with the send error.
//
// Only one consumer per homepage is expected. A second concurrent consumer competes
// for updates rather than receiving copies.
func Stream(ctx context.Context, hp *Homepage, sink EventSink, opts StreamOptions) error {
	logger := logx.Component("stream", "username", hp.Username)
	logger.Info().Int("pending", hp.Queue().Len()).Msg("Stream consumer opened.")

	delivered := 0
	defer func() {
		logger.Info().Int("delivered", delivered).Msg("Stream consumer closed.")
	}()

	for {
		u, err := popWithKeepAlive(ctx, hp.Queue(), sink, opts.KeepAlive)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		}

		payload, err := json.Marshal(u)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to encode update, dropping it.")
			continue
		}

		if err := sink.Send(payload); err != nil {
			if unpopErr := hp.Queue().Unpop(u); unpopErr != nil {
				logger.Warn().Err(unpopErr).Msg("Could not requeue undelivered update.")
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to send update: %w", err)
		}
		delivered++
		logger.Debug().Bool("html", u.IsHTML()).Int("bytes", len(payload)).Msg("Update delivered.")
	}
}

// popWithKeepAlive waits for the next update, sending a keepalive frame each time
// the wait exceeds every.
func popWithKeepAlive(ctx context.Context, q *Queue, sink EventSink, every time.Duration) (Update, error) {
	if every <= 0 {
		return q.Pop(ctx)
	}

	for {
		waitCtx, cancel := context.WithTimeout(ctx, every)
		u, err := q.Pop(waitCtx)
		cancel()

		if err == nil || !errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return u, err
		}

		if err := sink.KeepAlive(); err != nil {
			return Update{}, fmt.Errorf("failed to send keepalive: %w", err)
		}
	}
}
