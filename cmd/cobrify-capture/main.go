package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cobrify/internal/core/version"
	"cobrify/internal/platform/config"
	"cobrify/internal/platform/logger"
	phttp "cobrify/internal/platform/net/http"
	"cobrify/internal/platform/store"

	"cobrify/internal/services/app"
	idrepo "cobrify/internal/services/identity/repo"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	envErr := godotenv.Load()

	logger.Init(logger.FromEnv())
	l := logger.Get()
	if envErr != nil {
		l.Debug().Msg("no .env file, reading from environment")
	}
	l.Info().Interface("build", version.Info()).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	capCfg := root.Prefix("CAPTURE_")

	st, err := store.Open(ctx, store.ConfigFrom(root), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if st.PG != nil {
		if err := idrepo.NewPG(st.PG).EnsureSchema(ctx); err != nil {
			l.Fatal().Err(err).Msg("identity schema")
		}
	}

	// http server (reads CAPTURE_API_PORT)
	srv := phttp.NewServer(capCfg)
	a := app.Mount(srv.Router(), app.Options{Config: root, Store: st})

	// lanes outlive the signal so queued events still drain
	laneCtx, cancelLanes := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelLanes()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error {
		a.Limiter.Run(gctx.Done())
		return nil
	})
	for _, r := range a.Runners() {
		r := r
		g.Go(func() error { return r.Run(laneCtx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		drain(l, a.Runners(), capCfg.MayDuration("DRAIN_TIMEOUT", 20*time.Second))
		cancelLanes()
		return nil
	})

	if a.Capture.Options.Autostart {
		if _, err := a.Capture.Capture.Ensure(); err != nil {
			l.Warn().Err(err).Msg("autostart failed; waiting for POST /capture/start")
		}
	}

	if err := g.Wait(); err != nil {
		l.Error().Err(err).Msg("stopped with error")
		return
	}
	l.Info().Msg("stopped")
}

// drain closes each runner upstream first and waits for it, sharing one deadline
func drain(l *logger.Logger, runners []app.Runner, within time.Duration) {
	deadline := time.NewTimer(within)
	defer deadline.Stop()
	for _, r := range runners {
		r.Close()
		select {
		case <-r.Done():
		case <-deadline.C:
			l.Warn().Dur("timeout", within).Msg("drain timed out; abandoning queued events")
			return
		}
	}
}
