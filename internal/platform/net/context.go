// Package net holds transport-neutral helpers for request scoped values and reply envelopes
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyBusinessID ctxKey = "business_id"

// WithRequest annotates ctx with the request id and the operator's business id
func WithRequest(ctx context.Context, reqID, businessID string) context.Context {
	if reqID != "" {
		// chi's key so chimw.GetReqID sees it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if businessID != "" {
		ctx = context.WithValue(ctx, keyBusinessID, businessID)
	}
	return ctx
}

// RequestID returns the request id on ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// BusinessID returns the business id on ctx, or ""
func BusinessID(ctx context.Context) string {
	if v, ok := ctx.Value(keyBusinessID).(string); ok {
		return v
	}
	return ""
}
