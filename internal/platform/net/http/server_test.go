package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"cobrify/internal/platform/config"
	phttp "cobrify/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestServer_RunServesUntilContextDone(t *testing.T) {
	t.Setenv("CAPTURE_API_PORT", "0")

	optCalled := false
	srv := phttp.NewServer(config.New().Prefix("CAPTURE_"), func(*chi.Mux) { optCalled = true })
	if !optCalled {
		t.Fatalf("option not applied")
	}
	srv.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })

	if err := srv.Listen(); err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	_, port, err := net.SplitHostPort(srv.Addr())
	if err != nil {
		t.Fatalf("addr %q: %v", srv.Addr(), err)
	}
	resp, err := http.Get("http://127.0.0.1:" + port + "/ping")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "pong" {
		t.Fatalf("body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
