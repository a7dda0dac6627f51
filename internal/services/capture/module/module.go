// Package module wires the capture service into the API using modkit
package module

import (
	"context"
	"net/http"

	"cobrify/internal/adapters/notify"
	"cobrify/internal/core/payment"
	"cobrify/internal/modkit"
	"cobrify/internal/modkit/httpkit"
	"cobrify/internal/platform/net/middleware"

	"cobrify/internal/services/capture/domain"
	chttp "cobrify/internal/services/capture/http"
	"cobrify/internal/services/capture/service"
	fdom "cobrify/internal/services/forward/domain"

	"golang.org/x/time/rate"
)

// Needs declares the ports this module requires from others
type Needs struct {
	Hub       *notify.Hub
	Forwarder fdom.Submitter
}

// Worker is the lifecycle the composition root drives
type Worker interface {
	Run(ctx context.Context) error
	Close()
	Done() <-chan struct{}
}

// Ports holds the ports exposed by the capture module
type Ports struct {
	Capture domain.Port
	Worker  Worker
	Limiter *middleware.RateLimiter
	Options Options
}

// Module implements the capture module
type Module struct {
	built modkit.Built
	opts  Options
	svc   *service.Svc
	hub   *notify.Hub
	rl    *middleware.RateLimiter
}

// New constructs the capture module; Needs must be injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("capture")}, opts...)...)

	needs, ok := b.Ports.(Needs)
	if !ok || needs.Hub == nil || needs.Forwarder == nil {
		panic("capture module requires a notification hub and a forwarder port")
	}

	o := FromConfig(deps.Cfg)
	svc := service.New(needs.Hub, payment.Parser{}, needs.Forwarder, service.Config{
		TrustedPackage: o.TrustedPackage,
	})

	return &Module{
		built: b,
		opts:  o,
		svc:   svc,
		hub:   needs.Hub,
		rl:    middleware.NewRateLimiter(rate.Limit(o.IngestRPS), o.IngestBurst),
	}
}

// MountRoutes mounts ingest, control and stream routes
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.MountGroup(r, func(rr httpkit.Router) {
		chttp.Register(rr, chttp.Deps{
			Capture:   m.svc,
			Ingest:    m.hub,
			IngestMw:  []func(http.Handler) http.Handler{m.rl.Limit},
			KeepAlive: m.opts.KeepAlive,
		})
	})
}

// Ports returns the module ports
func (m *Module) Ports() any {
	return Ports{Capture: m.svc, Worker: m.svc, Limiter: m.rl, Options: m.opts}
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }
