package modkit

import (
	"net/http"

	phttp "cobrify/internal/platform/net/http"
	pstrings "cobrify/internal/platform/strings"
)

// Built is the resolved option set a module reads from
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(phttp.Router)
}

// Build applies opts in order and fills defaults
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(phttp.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Mount routes a module's handlers under b.Prefix with b.Mw, then runs the extra register hook
func (b Built) Mount(r phttp.Router, own func(phttp.Router)) {
	r.Route(pstrings.MustPrefix(b.Prefix), func(rr phttp.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		own(rr)
		b.Register(rr)
	})
}

// MountGroup is Mount for modules that own top-level paths; b.Prefix is ignored
func (b Built) MountGroup(r phttp.Router, own func(phttp.Router)) {
	r.Group(func(rr phttp.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		own(rr)
		b.Register(rr)
	})
}
