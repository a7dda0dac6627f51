package module

import (
	"strings"
	"testing"

	phttp "cobrify/internal/platform/net/http"
)

type StatusPort interface{ IsListening() bool }

type statusImpl bool

func (s statusImpl) IsListening() bool { return bool(s) }

type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) Name() string             { return m.name }
func (m fakeModule) Ports() any               { return m.ports }
func (m fakeModule) MountRoutes(phttp.Router) {}

func TestPortsOf(t *testing.T) {
	type bundle struct {
		Status StatusPort
		Other  int
	}
	type hidden struct {
		status StatusPort
	}
	cases := []struct {
		name  string
		ports any
		ok    bool
	}{
		{"nil", nil, false},
		{"direct", StatusPort(statusImpl(true)), true},
		{"exported field", bundle{Status: statusImpl(true)}, true},
		{"unexported field", hidden{status: statusImpl(true)}, false},
		{"scalar", 42, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := PortsOf[StatusPort](fakeModule{name: c.name, ports: c.ports})
			if ok != c.ok {
				t.Fatalf("ok = %v want %v", ok, c.ok)
			}
			if ok && !got.IsListening() {
				t.Fatalf("wrong port value")
			}
		})
	}
}

func TestMustPortsOf_PanicsWithModuleName(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), "forward") {
			t.Fatalf("panic = %v", r)
		}
	}()
	MustPortsOf[StatusPort](fakeModule{name: "forward"})
}

func TestRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register("capture", statusImpl(true))
	if v, ok := PortsAs[statusImpl]("capture"); !ok || !bool(v) {
		t.Fatalf("PortsAs = %v %v", v, ok)
	}
	if _, ok := PortsAs[int]("capture"); ok {
		t.Fatalf("wrong type must not match")
	}
	if _, ok := PortsAs[statusImpl]("identity"); ok {
		t.Fatalf("missing name must not match")
	}
}
