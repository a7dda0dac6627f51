// Package notify is the notification source the capture service subscribes to
//
// The host bridge pushes raw posted/removed events into a Hub; the Hub hands
// them to at most one subscribed Handler, one at a time, in arrival order
package notify

import (
	"strings"
)

// Kind says whether a notification appeared or went away
type Kind uint8

const (
	// KindPosted is a new or updated notification
	KindPosted Kind = iota
	// KindRemoved is a dismissed notification
	KindRemoved
)

// String returns the wire name of k
func (k Kind) String() string {
	if k == KindRemoved {
		return "removed"
	}
	return "posted"
}

// ParseKind maps a wire name to a Kind; empty means posted
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "posted":
		return KindPosted, true
	case "removed":
		return KindRemoved, true
	}
	return KindPosted, false
}

// Event is one raw notification as the host saw it
type Event struct {
	Kind           Kind
	Package        string
	Title          string
	Text           string
	PostedAtMillis int64
}

// Handler receives events from a Source
type Handler interface {
	OnPosted(evt Event)
	OnRemoved(pkg string)
}

// Subscription is a live Handler registration
type Subscription interface {
	Unsubscribe() error
}

// Source is a device-wide notification stream
type Source interface {
	Subscribe(h Handler) (Subscription, error)

	// Granted reports whether the host may observe notifications at all
	Granted() bool
}
