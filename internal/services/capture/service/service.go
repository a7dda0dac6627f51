// Package service owns the capture lifecycle and fans parsed payments out
package service

import (
	"context"
	"runtime/debug"
	"sync"

	"cobrify/internal/adapters/notify"
	"cobrify/internal/core/payment"
	perr "cobrify/internal/platform/errors"
	"cobrify/internal/platform/lane"
	"cobrify/internal/platform/logger"
	"cobrify/internal/services/capture/domain"
	fdom "cobrify/internal/services/forward/domain"
)

// Config tunes the capture service
type Config struct {
	TrustedPackage string
}

// Svc is the capture service; it is the notify.Handler it subscribes with
type Svc struct {
	cfg      Config
	src      notify.Source
	parser   domain.Parser
	fwd      fdom.Submitter
	consumer *lane.Lane[payment.Record]
	log      logger.Logger

	// mu guards everything below; start, stop and the read in OnPosted all take it
	mu    sync.Mutex
	state domain.State
	sub   notify.Subscription
	cb    domain.Callback
	gen   uint64
}

var (
	_ domain.Port    = (*Svc)(nil)
	_ notify.Handler = (*Svc)(nil)
)

// New constructs the capture service in the Stopped state
func New(src notify.Source, parser domain.Parser, fwd fdom.Submitter, cfg Config) *Svc {
	if src == nil || parser == nil || fwd == nil {
		panic("capture.Service requires a source, a parser and a forwarder")
	}
	if cfg.TrustedPackage == "" {
		cfg.TrustedPackage = domain.DefaultTrustedPackage
	}
	s := &Svc{cfg: cfg, src: src, parser: parser, fwd: fwd, log: *logger.Named("capture")}
	s.consumer = lane.New("consumer", s.deliver)
	return s
}

// Start registers onEvent as the only callback and subscribes unless already listening
func (s *Svc) Start(onEvent domain.Callback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.subscribeLocked(); err != nil {
		return err
	}
	s.setCallbackLocked(onEvent)
	return nil
}

// Ensure implements domain.Port
func (s *Svc) Ensure() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.Listening {
		return false, nil
	}
	if err := s.subscribeLocked(); err != nil {
		return false, err
	}
	s.setCallbackLocked(nil)
	return true, nil
}

// Attach implements domain.Port
func (s *Svc) Attach(onEvent domain.Callback) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.subscribeLocked(); err != nil {
		return func() {}, err
	}
	gen := s.setCallbackLocked(onEvent)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.gen == gen {
				s.setCallbackLocked(nil)
				s.log.Debug().Msg("consumer detached")
			}
		})
	}, nil
}

// Stop unsubscribes and clears the callback; it always succeeds
func (s *Svc) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCallbackLocked(nil)
	if s.state == domain.Stopped {
		return nil
	}
	if err := s.sub.Unsubscribe(); err != nil {
		s.log.Warn().Err(err).Msg("unsubscribe failed, treating as stopped")
	}
	s.sub = nil
	s.state = domain.Stopped
	s.log.Info().Msg("capture stopped")
	return nil
}

// Detach clears the callback while staying subscribed
func (s *Svc) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCallbackLocked(nil)
}

// IsListening implements domain.Port
func (s *Svc) IsListening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == domain.Listening
}

// PermissionGranted reports the host's listener permission
func (s *Svc) PermissionGranted() bool { return s.src.Granted() }

// Status implements domain.Port
func (s *Svc) Status() domain.Status {
	s.mu.Lock()
	st := domain.Status{
		Listening:        s.state == domain.Listening,
		ConsumerAttached: s.cb != nil,
		TrustedPackage:   s.cfg.TrustedPackage,
	}
	s.mu.Unlock()
	st.PermissionGranted = s.src.Granted()
	return st
}

func (s *Svc) subscribeLocked() error {
	if s.state == domain.Listening {
		return nil
	}
	sub, err := s.src.Subscribe(s)
	if err != nil {
		s.setCallbackLocked(nil)
		if perr.IsCode(err, perr.ErrorCodeSubscription) {
			return err
		}
		return perr.Wrap(err, perr.ErrorCodeSubscription, "subscribe to notification source failed")
	}
	s.sub = sub
	s.state = domain.Listening
	s.log.Info().Str("package", s.cfg.TrustedPackage).Bool("granted", s.src.Granted()).Msg("capture listening")
	return nil
}

func (s *Svc) setCallbackLocked(cb domain.Callback) uint64 {
	s.cb = cb
	s.gen++
	return s.gen
}

// OnPosted implements notify.Handler
func (s *Svc) OnPosted(evt notify.Event) {
	if evt.Package != s.cfg.TrustedPackage {
		return
	}

	s.mu.Lock()
	listening := s.state == domain.Listening
	attached := s.cb != nil
	s.mu.Unlock()
	if !listening {
		return
	}

	rec, ok := s.parser.ParseAt(evt.Title, evt.Text, evt.PostedAtMillis)
	if !ok {
		logger.Text(logger.Text(s.log.Debug(), "title", evt.Title), "text", evt.Text).
			Msg("trusted notification without an amount")
		return
	}
	s.log.Debug().
		Str("event_id", rec.ID.String()).
		Str("amount", rec.AmountText()).
		Bool("known_sender", rec.KnownSender()).
		Bool("consumer", attached).
		Msg("payment captured")

	s.branch("consumer", func() error {
		if !attached {
			return nil
		}
		return s.consumer.Submit(rec)
	})
	s.branch("forward", func() error { return s.fwd.Submit(rec) })
}

// OnRemoved implements notify.Handler; removals carry no payment
func (s *Svc) OnRemoved(string) {}

// branch runs one fan-out action so its failure cannot reach the other
func (s *Svc) branch(name string, fn func() error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error().
				Str("branch", name).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("fan-out branch panicked")
		}
	}()
	if err := fn(); err != nil {
		s.log.Warn().Err(err).Str("branch", name).Msg("fan-out branch failed")
	}
}

// deliver runs on the consumer lane and hands rec to whichever callback is registered now
func (s *Svc) deliver(_ context.Context, rec payment.Record) {
	s.mu.Lock()
	cb := s.cb
	s.mu.Unlock()
	if cb == nil {
		s.log.Debug().Str("event_id", rec.ID.String()).Msg("consumer gone, delivery skipped")
		return
	}
	cb(rec)
}

// Run drives the consumer lane
func (s *Svc) Run(ctx context.Context) error { return s.consumer.Run(ctx) }

// Close stops the consumer lane after it drains
func (s *Svc) Close() { s.consumer.Close() }

// Done is closed when Run has returned
func (s *Svc) Done() <-chan struct{} { return s.consumer.Done() }
