// Package service forwards payment records to the remote collector, one at a time
package service

import (
	"context"
	"time"

	"cobrify/internal/adapters/collector"
	"cobrify/internal/core/payment"
	perr "cobrify/internal/platform/errors"
	"cobrify/internal/platform/lane"
	"cobrify/internal/platform/logger"
	"cobrify/internal/services/forward/domain"
	idom "cobrify/internal/services/identity/domain"
)

// Config tunes the forwarder
type Config struct {
	Timeout time.Duration
}

// Svc is the single-worker forward lane
type Svc struct {
	cfg    Config
	ids    idom.Reader
	pusher domain.Pusher
	lane   *lane.Lane[payment.Record]
	log    logger.Logger
}

var _ domain.Port = (*Svc)(nil)

// New constructs the forwarder; Run must be called to drain submissions
func New(ids idom.Reader, pusher domain.Pusher, cfg Config) *Svc {
	if ids == nil || pusher == nil {
		panic("forward.Service requires an identity reader and a pusher")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	s := &Svc{cfg: cfg, ids: ids, pusher: pusher, log: *logger.Named("forward")}
	s.lane = lane.New("forward", func(ctx context.Context, rec payment.Record) {
		_ = s.Forward(ctx, rec)
	})
	return s
}

// Submit queues rec behind earlier records
func (s *Svc) Submit(rec payment.Record) error { return s.lane.Submit(rec) }

// Pending reports how many records wait behind the one in flight
func (s *Svc) Pending() int { return s.lane.Len() }

// Run drains the lane until Close or ctx ends
func (s *Svc) Run(ctx context.Context) error { return s.lane.Run(ctx) }

// Close stops accepting records; queued ones are still sent
func (s *Svc) Close() { s.lane.Close() }

// Done is closed when Run has returned
func (s *Svc) Done() <-chan struct{} { return s.lane.Done() }

// Forward makes a single delivery attempt for rec. Failures are logged and returned, never retried
func (s *Svc) Forward(ctx context.Context, rec payment.Record) error {
	log := s.log.With().Str("event_id", rec.ID.String()).Logger()

	id, err := s.ids.Current(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("identity lookup failed, treating as signed out")
		id = idom.Identity{}
	}
	if !id.Present() {
		log.Debug().Msg("no signed-in operator, forward abandoned")
		return domain.ErrNoOperator
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	err = s.pusher.Push(ctx, rec.ID.String(), collector.PayloadOf(rec, id.BusinessID, id.UserID))
	lat := time.Since(start)
	if err != nil {
		log.Warn().
			Err(err).
			Str("code", perr.CodeOf(err).String()).
			Str("business_id", id.BusinessID).
			Dur("latency", lat).
			Msg("forward failed, event abandoned")
		return err
	}
	log.Info().
		Str("business_id", id.BusinessID).
		Str("amount", rec.AmountText()).
		Dur("latency", lat).
		Msg("payment forwarded")
	return nil
}
