// Package http provides the control, ingest and event-stream endpoints of the capture service
package http

import (
	"context"
	stdhttp "net/http"
	"sync"
	"time"

	"cobrify/internal/adapters/notify"
	"cobrify/internal/core/payment"
	"cobrify/internal/modkit/httpkit"
	perr "cobrify/internal/platform/errors"
	"cobrify/internal/platform/logger"
	"cobrify/internal/services/capture/domain"
)

// Ingest is the host bridge side of the notification source
type Ingest interface {
	Post(ctx context.Context, evt notify.Event) error
	SetGranted(granted bool)
}

// Deps are the handler dependencies
type Deps struct {
	Capture domain.Port
	Ingest  Ingest

	// IngestMw guards POST /notifications, typically a rate limiter
	IngestMw []func(stdhttp.Handler) stdhttp.Handler

	// KeepAlive is the SSE comment interval
	KeepAlive time.Duration
}

// NotificationInput is one raw event from the host bridge
type NotificationInput struct {
	Kind        string `json:"kind" validate:"omitempty,oneof=posted removed"`
	PackageName string `json:"packageName" validate:"required,package_name,max=255"`
	Title       string `json:"title" validate:"max=1024"`
	Text        string `json:"text" validate:"max=4096"`
	Timestamp   int64  `json:"timestamp" validate:"gte=0"`
}

// ListenerInput reports the host's listener permission
type ListenerInput struct {
	Granted *bool `json:"granted" validate:"required"`
}

// StartOutput is the POST /capture/start reply
type StartOutput struct {
	domain.Status
	AlreadyListening bool `json:"alreadyListening"`
}

// Register mounts the capture routes
func Register(r httpkit.Router, d Deps) {
	if d.KeepAlive <= 0 {
		d.KeepAlive = 25 * time.Second
	}
	h := &handlers{deps: d}

	r.Group(func(g httpkit.Router) {
		if len(d.IngestMw) > 0 {
			g.Use(d.IngestMw...)
		}
		httpkit.AcceptJSON[NotificationInput](g, "/notifications", h.ingest)
	})
	httpkit.PutJSON[ListenerInput](r, "/listener", h.listener)

	httpkit.Post(r, "/capture/start", h.start)
	httpkit.Post(r, "/capture/stop", h.stop)
	httpkit.Get(r, "/capture/status", h.status)
	r.Get("/capture/events", h.events)
}

type handlers struct{ deps Deps }

// POST /notifications
func (h *handlers) ingest(r *stdhttp.Request, in NotificationInput) (any, error) {
	kind, _ := notify.ParseKind(in.Kind)
	evt := notify.Event{
		Kind:           kind,
		Package:        in.PackageName,
		Title:          in.Title,
		Text:           in.Text,
		PostedAtMillis: in.Timestamp,
	}
	if evt.PostedAtMillis == 0 {
		evt.PostedAtMillis = time.Now().UnixMilli()
	}
	if err := h.deps.Ingest.Post(r.Context(), evt); err != nil {
		return nil, err
	}
	return map[string]bool{"queued": true}, nil
}

// PUT /listener
func (h *handlers) listener(r *stdhttp.Request, in ListenerInput) (any, error) {
	h.deps.Ingest.SetGranted(*in.Granted)
	return h.deps.Capture.Status(), nil
}

// POST /capture/start
func (h *handlers) start(_ *stdhttp.Request) (any, error) {
	started, err := h.deps.Capture.Ensure()
	if err != nil {
		return nil, err
	}
	return StartOutput{Status: h.deps.Capture.Status(), AlreadyListening: !started}, nil
}

// POST /capture/stop
func (h *handlers) stop(_ *stdhttp.Request) (any, error) {
	if err := h.deps.Capture.Stop(); err != nil {
		return nil, err
	}
	return h.deps.Capture.Status(), nil
}

// GET /capture/status
func (h *handlers) status(_ *stdhttp.Request) (any, error) {
	return h.deps.Capture.Status(), nil
}

// GET /capture/events streams records to the foreground consumer until the client goes away
func (h *handlers) events(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	log := logger.C(r.Context())

	st, err := httpkit.OpenStream(w, r)
	if err != nil {
		httpkit.RespondError(w, r, err)
		return
	}

	defer st.Close()

	failed := make(chan struct{})
	var failOnce sync.Once

	// held until status is written, so no payment event can precede it
	var first sync.Mutex
	first.Lock()
	release, err := h.deps.Capture.Attach(func(rec payment.Record) {
		first.Lock()
		defer first.Unlock()
		if err := st.Send("payment", rec.ID.String(), domain.ViewOf(rec)); err != nil {
			failOnce.Do(func() { close(failed) })
		}
	})
	if err != nil {
		first.Unlock()
		_ = st.Send("error", "", perr.WireFrom(err))
		return
	}
	defer release()

	err = st.Send("status", "", h.deps.Capture.Status())
	first.Unlock()
	if err != nil {
		return
	}
	log.Info().Msg("consumer attached to event stream")

	tick := time.NewTicker(h.deps.KeepAlive)
	defer tick.Stop()
	for {
		select {
		case <-r.Context().Done():
			log.Info().Msg("consumer left event stream")
			return
		case <-failed:
			log.Info().Msg("event stream write failed, detaching")
			return
		case <-tick.C:
			if err := st.Comment("keepalive"); err != nil {
				return
			}
		}
	}
}
