// Package domain defines the operator identity the forwarder attributes payments to
package domain

import (
	"context"
	"strings"
)

// Keys in the identity key/value store
const (
	KeyBusinessID   = "businessId"
	KeyUserID       = "userId"
	KeyBusinessName = "businessName"
)

// Identity is the signed-in operator; an empty BusinessID means nobody is signed in
type Identity struct {
	BusinessID   string `json:"businessId"`
	UserID       string `json:"userId,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
}

// Present reports whether an operator is signed in
func (i Identity) Present() bool { return strings.TrimSpace(i.BusinessID) != "" }

// Values returns the non-empty fields keyed for storage
func (i Identity) Values() map[string]string {
	out := make(map[string]string, 3)
	for k, v := range map[string]string{
		KeyBusinessID:   i.BusinessID,
		KeyUserID:       i.UserID,
		KeyBusinessName: i.BusinessName,
	} {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}
	return out
}

// FromValues is the inverse of Values; unknown keys are ignored
func FromValues(kv map[string]string) Identity {
	return Identity{
		BusinessID:   kv[KeyBusinessID],
		UserID:       kv[KeyUserID],
		BusinessName: kv[KeyBusinessName],
	}
}

// Keys lists every key an Identity occupies
func Keys() []string { return []string{KeyBusinessID, KeyUserID, KeyBusinessName} }

// Reader is the read-only lookup the forwarder uses
type Reader interface {
	Current(ctx context.Context) (Identity, error)
}

// Writer replaces or clears the stored identity
type Writer interface {
	Set(ctx context.Context, id Identity) error
	Clear(ctx context.Context) error
}

// Port is the full identity surface
type Port interface {
	Reader
	Writer
}

// SetInput is the PUT /identity body
type SetInput struct {
	BusinessID   string `json:"businessId" validate:"required,max=128"`
	UserID       string `json:"userId" validate:"omitempty,max=128"`
	BusinessName string `json:"businessName" validate:"omitempty,max=256"`
}

// Identity converts the input to the stored form
func (in SetInput) Identity() Identity {
	return Identity{
		BusinessID:   strings.TrimSpace(in.BusinessID),
		UserID:       strings.TrimSpace(in.UserID),
		BusinessName: strings.TrimSpace(in.BusinessName),
	}
}
