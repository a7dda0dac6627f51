// Package module wires the identity store into the API using modkit
package module

import (
	"cobrify/internal/modkit"
	"cobrify/internal/modkit/httpkit"

	"cobrify/internal/services/identity/domain"
	ihttp "cobrify/internal/services/identity/http"
	"cobrify/internal/services/identity/repo"
	"cobrify/internal/services/identity/service"
)

// Ports holds the ports exposed by the identity module
type Ports struct {
	Identity domain.Port
}

// Module implements the identity module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	svc   *service.Svc
	ports Ports
}

// New constructs the identity module; it uses postgres when deps.PG is set
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("identity"),
		modkit.WithPrefix("/identity"),
	}, opts...)...)

	var r repo.Repo = repo.NewMemory()
	if deps.PG != nil {
		r = repo.NewPG(deps.PG)
	}
	svc := service.New(r)

	return &Module{
		deps:  deps,
		built: b,
		svc:   svc,
		ports: Ports{Identity: svc},
	}
}

// MountRoutes mounts the identity routes under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { ihttp.Register(rr, m.svc) })
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }
