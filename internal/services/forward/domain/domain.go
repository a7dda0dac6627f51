// Package domain defines the ports of the forward lane
package domain

import (
	"context"

	"cobrify/internal/adapters/collector"
	"cobrify/internal/core/payment"
	perr "cobrify/internal/platform/errors"
)

// ErrNoOperator means no business is signed in, so the record is not sent
var ErrNoOperator = perr.New(perr.ErrorCodeNotFound, "no signed-in operator")

// Pusher delivers one payload to the collector
type Pusher interface {
	Push(ctx context.Context, eventID string, p collector.Payload) error
}

// Submitter queues a record for forwarding; it never blocks on the network
type Submitter interface {
	Submit(rec payment.Record) error
}

// Port is the forward lane as seen by the composition root
type Port interface {
	Submitter
	Forward(ctx context.Context, rec payment.Record) error
	Pending() int
	Run(ctx context.Context) error
	Close()
	Done() <-chan struct{}
}
