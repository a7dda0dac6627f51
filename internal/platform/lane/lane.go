// Package lane runs submitted items one at a time, in submission order, on a single worker
//
// A Lane is the execution context work is handed to: Submit never blocks and
// the backlog is unbounded, Run drains it on the calling goroutine. A panic in
// the handler is logged and the lane moves on to the next item
package lane

import (
	"context"
	"runtime/debug"
	"sync"

	perr "cobrify/internal/platform/errors"
	"cobrify/internal/platform/logger"
)

// ErrClosed is returned by Submit once Close has been called
var ErrClosed = perr.New(perr.ErrorCodeUnavailable, "lane closed")

// Lane is an unbounded FIFO drained by one worker
type Lane[T any] struct {
	name   string
	handle func(context.Context, T)

	mu     sync.Mutex
	queue  []T
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

// New returns a lane that calls handle for every submitted item
func New[T any](name string, handle func(context.Context, T)) *Lane[T] {
	return &Lane[T]{
		name:   name,
		handle: handle,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Name returns the lane name used in logs
func (l *Lane[T]) Name() string { return l.name }

// Submit appends v to the backlog
func (l *Lane[T]) Submit(v T) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.queue = append(l.queue, v)
	l.mu.Unlock()
	l.signal()
	return nil
}

// Len reports the number of items waiting (the one being handled is not counted)
func (l *Lane[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Close stops accepting items; Run returns after the backlog drains
func (l *Lane[T]) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.signal()
}

// Done is closed when Run has returned
func (l *Lane[T]) Done() <-chan struct{} { return l.done }

// Run handles items until the lane is closed and empty, or ctx ends
// Run must be called at most once
func (l *Lane[T]) Run(ctx context.Context) error {
	defer close(l.done)
	log := logger.Named("lane").With().Str("lane", l.name).Logger()

	for {
		if err := ctx.Err(); err != nil {
			return l.abandon(&log, err)
		}
		v, ok, closed := l.pop()
		if ok {
			l.safeHandle(ctx, &log, v)
			continue
		}
		if closed {
			return nil
		}
		select {
		case <-ctx.Done():
			return l.abandon(&log, ctx.Err())
		case <-l.wake:
		}
	}
}

func (l *Lane[T]) abandon(log *logger.Logger, err error) error {
	if n := l.Len(); n > 0 {
		log.Warn().Int("dropped", n).Msg("lane stopped with pending items")
	}
	return err
}

func (l *Lane[T]) pop() (v T, ok, closed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return v, false, l.closed
	}
	v = l.queue[0]
	var zero T
	l.queue[0] = zero
	l.queue = l.queue[1:]
	if len(l.queue) == 0 {
		l.queue = nil
	}
	return v, true, l.closed
}

func (l *Lane[T]) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Lane[T]) safeHandle(ctx context.Context, log *logger.Logger, v T) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("lane handler panicked")
		}
	}()
	l.handle(ctx, v)
}
