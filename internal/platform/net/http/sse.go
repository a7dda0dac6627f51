package http

import (
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"sync"

	perr "cobrify/internal/platform/errors"
)

// ErrStreamClosed is returned by writes after Close
var ErrStreamClosed = perr.New(perr.ErrorCodeUnavailable, "event stream closed")

// Stream writes server-sent events; Send is safe for concurrent use
type Stream struct {
	mu     sync.Mutex
	w      stdhttp.ResponseWriter
	rc     *stdhttp.ResponseController
	closed bool
}

// OpenStream sets the event-stream headers and flushes them
func OpenStream(w stdhttp.ResponseWriter, _ *stdhttp.Request) (*Stream, error) {
	rc := stdhttp.NewResponseController(w)
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(stdhttp.StatusOK)
	if err := rc.Flush(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "response does not support streaming")
	}
	return &Stream{w: w, rc: rc}, nil
}

// Send writes one event with a JSON data line and flushes it
func (s *Stream) Send(event, id string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStreamClosed
	}
	if id != "" {
		if _, err := fmt.Fprintf(s.w, "id: %s\n", id); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, b); err != nil {
		return err
	}
	return s.rc.Flush()
}

// Comment writes a keepalive comment line
func (s *Stream) Comment(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStreamClosed
	}
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", text); err != nil {
		return err
	}
	return s.rc.Flush()
}

// Close makes later writes fail; call it before the handler returns
// so writers on other goroutines never touch a finished response
func (s *Stream) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
