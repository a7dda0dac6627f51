// Package module wires the forward lane and exposes its ports
package module

import (
	"cobrify/internal/adapters/collector"
	"cobrify/internal/modkit"
	"cobrify/internal/modkit/httpkit"

	"cobrify/internal/services/forward/domain"
	"cobrify/internal/services/forward/service"
	idom "cobrify/internal/services/identity/domain"
)

// Ports holds the ports exposed by the forward module
type Ports struct {
	Forwarder domain.Port
}

// Needs declares the ports this module requires from others
type Needs struct {
	Identity idom.Reader
}

// Module defines the forward worker module
type Module struct {
	built modkit.Built
	ports Ports
}

// New constructs the forward module; Needs must be injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("forward")}, opts...)...)

	needs, ok := b.Ports.(Needs)
	if !ok || needs.Identity == nil {
		panic("forward module requires an identity reader port")
	}

	cfg := FromConfig(deps.Cfg)
	client := collector.NewClient(collector.Options{
		URL:       cfg.CollectorURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	})
	svc := service.New(needs.Identity, client, service.Config{Timeout: cfg.Timeout})

	return &Module{built: b, ports: Ports{Forwarder: svc}}
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
