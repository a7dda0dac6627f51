// Package payment turns payment-app notification text into typed records
package payment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// Currency is implied by the "S/" marker
	Currency = "PEN"

	// UnknownSender is used when no sender pattern matches
	UnknownSender = "unknown"
)

// Record is one parsed payment; it is never persisted
type Record struct {
	ID               uuid.UUID       `json:"id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	SenderName       string          `json:"senderName"`
	RawTitle         string          `json:"rawTitle"`
	RawBody          string          `json:"rawBody"`
	ObservedAtMillis int64           `json:"observedAt"`
}

// AmountText renders the amount with two decimals
func (r Record) AmountText() string { return r.Amount.StringFixed(2) }

// KnownSender reports whether a sender pattern matched
func (r Record) KnownSender() bool { return r.SenderName != "" && r.SenderName != UnknownSender }
