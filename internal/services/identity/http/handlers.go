// Package http provides http transport for the identity store
package http

import (
	stdhttp "net/http"

	"cobrify/internal/modkit/httpkit"
	perr "cobrify/internal/platform/errors"
	"cobrify/internal/services/identity/domain"
)

// Register mounts the identity routes
func Register(r httpkit.Router, s domain.Port) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.get)
	httpkit.PutJSON[domain.SetInput](r, "/", h.put)
	httpkit.Delete(r, "/", h.clear)
}

type handlers struct{ svc domain.Port }

// GET /identity
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := h.svc.Current(r.Context())
	if err != nil {
		return nil, err
	}
	if !id.Present() {
		return nil, perr.NotFoundf("no operator signed in")
	}
	return id, nil
}

// PUT /identity
func (h *handlers) put(r *stdhttp.Request, in domain.SetInput) (any, error) {
	id := in.Identity()
	if err := h.svc.Set(r.Context(), id); err != nil {
		return nil, err
	}
	return id, nil
}

// DELETE /identity
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	if err := h.svc.Clear(r.Context()); err != nil {
		return nil, err
	}
	return map[string]bool{"cleared": true}, nil
}
