// Package httpkit re-exports the platform http helpers modules use
// so service packages do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "cobrify/internal/platform/net/http"
)

type (
	// Response is the return-style handler result
	Response = phttp.Response
	// Handler is the platform handler type
	Handler = phttp.Handler
	// Router is the platform router seam
	Router = phttp.Router
	// Stream is a server-sent events writer
	Stream = phttp.Stream
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Accepted returns a 202 response
func Accepted(data any) Response { return phttp.Accepted(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response whose status comes from err
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a Response-returning function
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// RespondError writes an error envelope for classic handlers
func RespondError(w http.ResponseWriter, r *http.Request, err error) { phttp.RespondError(w, r, err) }

// OpenStream switches w to text/event-stream
func OpenStream(w http.ResponseWriter, r *http.Request) (*Stream, error) { return phttp.OpenStream(w, r) }
