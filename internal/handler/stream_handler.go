package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"livefeed/internal/app/feed"
	"livefeed/internal/pkg/errs"
	"livefeed/internal/pkg/logx"
	"livefeed/internal/pkg/resp"
)

// sseSink frames updates as server-sent events.
type sseSink struct {
	w  io.Writer
	rc *http.ResponseController
}

// Send writes "data: <payload>\n\n" and flushes it to the client.
func (s *sseSink) Send(payload []byte) error {
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return s.rc.Flush()
}

// KeepAlive writes an SSE comment line, which clients ignore.
func (s *sseSink) KeepAlive() error {
	if _, err := io.WriteString(s.w, ": keepalive\n\n"); err != nil {
		return err
	}
	return s.rc.Flush()
}

// HandleStream opens the event stream for the homepage named in the path. It needs no
// cookie. An unknown username answers 404 and the stream never opens; otherwise one
// event is written per queued update until the client goes away or the user logs out.
func HandleStream(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		hp, ok := deps.streamHomepage(username)
		if !ok {
			logx.Info("Stream rejected: user not found", "username", username)
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		if _, ok := w.(http.Flusher); !ok {
			logx.Error(errors.New("response writer does not support flushing"), "Stream rejected", "username", username)
			resp.RespondError(w, r, errs.NewError(errs.ErrStreamUnsupported))
			return
		}

		rc := http.NewResponseController(w)
		if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
			logx.Warn("Failed to clear write deadline for stream", "username", username, "error", err)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		sink := &sseSink{w: w, rc: rc}
		if err := rc.Flush(); err != nil {
			logx.Warn("Stream closed before first flush", "username", username, "error", err)
			return
		}

		err := feed.Stream(r.Context(), hp, sink, feed.StreamOptions{KeepAlive: deps.Config.StreamKeepAlive})
		if err != nil {
			logx.Warn("Stream ended with write failure", "username", username, "error", err)
		}
	}
}
