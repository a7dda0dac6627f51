// Package domain defines the capture state machine and its ports
package domain

import (
	"cobrify/internal/core/payment"
)

// DefaultTrustedPackage is the Yape app
const DefaultTrustedPackage = "com.bcp.innovacxion.yapeapp"

// State is the listener lifecycle
type State uint8

const (
	// Stopped means no subscription is held
	Stopped State = iota
	// Listening means exactly one subscription is held
	Listening
)

func (s State) String() string {
	if s == Listening {
		return "listening"
	}
	return "stopped"
}

// Callback receives records on the consumer lane
type Callback func(rec payment.Record)

// Parser maps notification text to a record
type Parser interface {
	ParseAt(title, body string, observedAt int64) (payment.Record, bool)
}

// Status is the read model of the service
type Status struct {
	Listening         bool   `json:"listening"`
	PermissionGranted bool   `json:"permissionGranted"`
	ConsumerAttached  bool   `json:"consumerAttached"`
	TrustedPackage    string `json:"trustedPackage"`
}

// Port is what the foreground consumer and the control API use
type Port interface {
	Start(onEvent Callback) error
	Stop() error
	IsListening() bool

	// Ensure starts in background mode unless already listening; the callback is left alone
	Ensure() (started bool, err error)

	// Attach starts with onEvent and returns a release that detaches only this callback
	Attach(onEvent Callback) (release func(), err error)

	// Detach clears the callback but keeps listening
	Detach()

	PermissionGranted() bool
	Status() Status
}

// RecordView is the JSON shape pushed to consumers
type RecordView struct {
	ID         string `json:"id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	SenderName string `json:"senderName"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Timestamp  int64  `json:"timestamp"`
}

// ViewOf renders rec for consumers
func ViewOf(rec payment.Record) RecordView {
	return RecordView{
		ID:         rec.ID.String(),
		Amount:     rec.AmountText(),
		Currency:   rec.Currency,
		SenderName: rec.SenderName,
		Title:      rec.RawTitle,
		Body:       rec.RawBody,
		Timestamp:  rec.ObservedAtMillis,
	}
}
