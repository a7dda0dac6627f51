package module

import (
	"context"
	"testing"
	"time"

	"cobrify/internal/modkit"
	"cobrify/internal/modkit/module"
	"cobrify/internal/platform/config"
	kit "cobrify/internal/platform/testkit"
	idom "cobrify/internal/services/identity/domain"
)

type noOperator struct{}

func (noOperator) Current(context.Context) (idom.Identity, error) { return idom.Identity{}, nil }

func TestFromConfig(t *testing.T) {
	t.Setenv("FORWARD_COLLECTOR_URL", "https://collector.example.com/saveYapePaymentNative")
	t.Setenv("FORWARD_TIMEOUT", "5s")
	o := FromConfig(config.New())
	if o.CollectorURL != "https://collector.example.com/saveYapePaymentNative" || o.Timeout != 5*time.Second {
		t.Fatalf("options = %+v", o)
	}
}

func TestNew_RequiresCollectorURL(t *testing.T) {
	t.Setenv("FORWARD_COLLECTOR_URL", "")
	kit.MustPanic(t, func() {
		New(modkit.Deps{Cfg: config.New()}, modkit.WithPorts(Needs{Identity: noOperator{}}))
	})
}

func TestNew_RequiresIdentity(t *testing.T) {
	t.Setenv("FORWARD_COLLECTOR_URL", "https://collector.example.com/x")
	kit.MustPanic(t, func() { New(modkit.Deps{Cfg: config.New()}) })
}

func TestNew_ExposesForwarder(t *testing.T) {
	t.Setenv("FORWARD_COLLECTOR_URL", "https://collector.example.com/x")
	m := New(modkit.Deps{Cfg: config.New()}, modkit.WithPorts(Needs{Identity: noOperator{}}))
	p := module.MustPortsOf[Ports](m)
	if p.Forwarder == nil || m.Name() != "forward" {
		t.Fatalf("ports = %+v name = %q", p, m.Name())
	}
}
