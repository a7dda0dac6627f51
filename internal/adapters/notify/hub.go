package notify

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"

	perr "cobrify/internal/platform/errors"
	"cobrify/internal/platform/logger"
)

const defaultBuffer = 64

var (
	// ErrClosed is returned once the hub has been closed
	ErrClosed = perr.New(perr.ErrorCodeUnavailable, "notification hub closed")

	// ErrBusy is returned by Subscribe while another handler holds the stream
	ErrBusy = perr.New(perr.ErrorCodeSubscription, "notification stream already has a subscriber")
)

// Hub fans host events to the single subscribed Handler
type Hub struct {
	events chan Event
	done   chan struct{}
	once   sync.Once

	drained   chan struct{}
	drainOnce sync.Once

	mu      sync.RWMutex
	handler Handler
	subID   uint64

	granted atomic.Bool
	log     logger.Logger
}

// NewHub returns a hub whose Post queue holds buffer events before blocking
func NewHub(buffer int, granted bool) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	h := &Hub{
		events:  make(chan Event, buffer),
		done:    make(chan struct{}),
		drained: make(chan struct{}),
		log:     *logger.Named("notify"),
	}
	h.granted.Store(granted)
	return h
}

// Granted implements Source
func (h *Hub) Granted() bool { return h.granted.Load() }

// SetGranted records the host's listener permission
func (h *Hub) SetGranted(v bool) {
	if h.granted.Swap(v) != v {
		h.log.Info().Bool("granted", v).Msg("listener permission changed")
	}
}

// Subscribers reports 1 while a handler is registered
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.handler == nil {
		return 0
	}
	return 1
}

// Subscribe implements Source
func (h *Hub) Subscribe(handler Handler) (Subscription, error) {
	if handler == nil {
		return nil, perr.New(perr.ErrorCodeInvalidArgument, "nil notification handler")
	}
	if h.isClosed() {
		return nil, perr.Wrap(ErrClosed, perr.ErrorCodeSubscription, "subscribe failed")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.handler != nil {
		return nil, ErrBusy
	}
	h.subID++
	h.handler = handler
	return &subscription{hub: h, id: h.subID}, nil
}

type subscription struct {
	hub  *Hub
	id   uint64
	once sync.Once
}

// Unsubscribe is idempotent; after Close it still detaches but reports ErrClosed
func (s *subscription) Unsubscribe() error {
	s.once.Do(func() {
		s.hub.mu.Lock()
		if s.hub.subID == s.id {
			s.hub.handler = nil
		}
		s.hub.mu.Unlock()
	})
	if s.hub.isClosed() {
		return ErrClosed
	}
	return nil
}

// Post queues evt for delivery, blocking while the queue is full
func (h *Hub) Post(ctx context.Context, evt Event) error {
	if h.isClosed() {
		return ErrClosed
	}
	select {
	case h.events <- evt:
		return nil
	case <-h.done:
		return ErrClosed
	case <-ctx.Done():
		return perr.Wrap(ctx.Err(), perr.ErrorCodeTooManyRequests, "notification queue full")
	}
}

// Close stops Post and Subscribe; Run returns after delivering what is queued
func (h *Hub) Close() {
	h.once.Do(func() { close(h.done) })
}

func (h *Hub) isClosed() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Done is closed once Run has returned
func (h *Hub) Done() <-chan struct{} { return h.drained }

// Run delivers queued events until ctx ends or the hub is closed and drained
func (h *Hub) Run(ctx context.Context) error {
	defer h.drainOnce.Do(func() { close(h.drained) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt := <-h.events:
			h.deliver(evt)
		case <-h.done:
			for {
				select {
				case evt := <-h.events:
					h.deliver(evt)
				default:
					return nil
				}
			}
		}
	}
}

func (h *Hub) deliver(evt Event) {
	h.mu.RLock()
	handler := h.handler
	h.mu.RUnlock()
	if handler == nil {
		h.log.Debug().Str("package", evt.Package).Str("kind", evt.Kind.String()).Msg("no subscriber, event dropped")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("package", evt.Package).
				Msg("notification handler panicked")
		}
	}()
	switch evt.Kind {
	case KindRemoved:
		handler.OnRemoved(evt.Package)
	default:
		handler.OnPosted(evt)
	}
}
