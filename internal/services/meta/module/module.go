// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"cobrify/internal/core/version"
	"cobrify/internal/modkit"
	"cobrify/internal/modkit/httpkit"

	metahttp "cobrify/internal/services/meta/http"
)

// Needs are optional ports the readiness probe reports on
type Needs struct {
	Capture metahttp.Listening
}

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	built     modkit.Built
	startedAt time.Time
	needs     Needs
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	needs, _ := b.Ports.(Needs)
	return &Module{deps: deps, built: b, startedAt: time.Now(), needs: needs}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		d := metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   m.startedAt,
			Capture:     m.needs.Capture,
		}
		if m.deps.PG != nil {
			d.PG = m.deps.PG
		}
		metahttp.Register(rr, d)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
