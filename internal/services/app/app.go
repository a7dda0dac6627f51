// Package app composes the service modules into one HTTP surface
package app

import (
	"context"

	"cobrify/internal/adapters/notify"
	"cobrify/internal/platform/config"
	"cobrify/internal/platform/logger"
	phttp "cobrify/internal/platform/net/http"
	"cobrify/internal/platform/net/middleware"
	"cobrify/internal/platform/store"

	"cobrify/internal/modkit"
	"cobrify/internal/modkit/httpkit"
	"cobrify/internal/modkit/module"

	capturemod "cobrify/internal/services/capture/module"
	forwardmod "cobrify/internal/services/forward/module"
	identitymod "cobrify/internal/services/identity/module"
	metamod "cobrify/internal/services/meta/module"
)

// Options are the app options
type Options struct {
	Config config.Conf
	Store  *store.Store
}

// Runner is a background loop the process drives
type Runner interface {
	Run(ctx context.Context) error
	Close()
	Done() <-chan struct{}
}

// App exposes what main needs after mounting
type App struct {
	Hub       *notify.Hub
	Capture   capturemod.Ports
	Forwarder Runner
	Limiter   *middleware.RateLimiter
}

// Runners returns the lanes in shutdown order, upstream first
func (a *App) Runners() []Runner {
	return []Runner{a.Hub, a.Capture.Worker, a.Forwarder}
}

// Mount builds every module, registers their ports and mounts routes on r
func Mount(r phttp.Router, opt Options) *App {
	deps := modkit.Deps{
		Log: *logger.Named("app"),
		Cfg: opt.Config,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	// identity owns the Reader the forward lane needs
	identity := identitymod.New(deps)
	ids := module.MustPortsOf[identitymod.Ports](identity).Identity

	forward := forwardmod.New(deps, modkit.WithPorts(forwardmod.Needs{Identity: ids}))
	fwd := module.MustPortsOf[forwardmod.Ports](forward).Forwarder

	cc := opt.Config.Prefix("CAPTURE_")
	hub := notify.NewHub(cc.MayInt("HUB_BUFFER", 64), cc.MayBool("PERMISSION_GRANTED", true))

	capture := capturemod.New(deps, modkit.WithPorts(capturemod.Needs{Hub: hub, Forwarder: fwd}))
	cp := module.MustPortsOf[capturemod.Ports](capture)

	meta := metamod.New(deps, modkit.WithPorts(metamod.Needs{Capture: cp.Capture}))

	mods := []module.Module{identity, forward, capture, meta}

	r.Use(httpkit.RootStack()...)
	api := opt.Config.Prefix("CAPTURE_API_")
	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORS:       middleware.CORSOptions{AllowedOrigins: api.MayStrings("CORS_ORIGINS", nil)},
		SlowLog:    api.MayDuration("SLOW_LOG", 0),
		QuietPaths: []string{"/api/v1/meta/ready"},
	})
	httpkit.MountAPIV1(r, stack, func(v1 httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(v1)
		}
	})

	return &App{Hub: hub, Capture: cp, Forwarder: fwd, Limiter: cp.Limiter}
}
