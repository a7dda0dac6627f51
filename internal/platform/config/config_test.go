package config

import (
	"testing"
	"time"

	kit "cobrify/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	fwd := New().Prefix("FORWARD_")
	if got := fwd.key("TIMEOUT"); got != "FORWARD_TIMEOUT" {
		t.Fatalf("key() = %q, want %q", got, "FORWARD_TIMEOUT")
	}
	if got := fwd.Prefix("HTTP_").key("UA"); got != "FORWARD_HTTP_UA" {
		t.Fatalf("nested key() = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("CAPTURE_")
	t.Setenv("CAPTURE_TRUSTED_PACKAGE", "  com.bcp.innovacxion.yapeapp ")
	if got := c.MustString("TRUSTED_PACKAGE"); got != "com.bcp.innovacxion.yapeapp" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustURL(t *testing.T) {
	c := New().Prefix("FORWARD_")
	t.Setenv("FORWARD_COLLECTOR_URL", "https://collector.example.com/saveYapePaymentNative")
	if u := c.MustURL("COLLECTOR_URL"); !u.IsAbs() || u.Host != "collector.example.com" {
		t.Fatalf("MustURL = %v", u)
	}
	t.Setenv("FORWARD_BAD", "/relative/path")
	kit.MustPanic(t, func() { _ = c.MustURL("BAD") })
	kit.MustPanic(t, func() { _ = c.MustURL("MISSING") })
}

func TestMayPort(t *testing.T) {
	c := New().Prefix("CAPTURE_API_")
	tests := []struct {
		name string
		val  string
		want string
	}{
		{"bare number", "8080", ":8080"},
		{"with colon", ":9000", ":9000"},
		{"ephemeral", "0", ":0"},
		{"out of range", "70000", ":4000"},
		{"negative", "-1", ":4000"},
		{"garbage", "http", ":4000"},
		{"empty", "", ":4000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CAPTURE_API_PORT", tt.val)
			if got := c.MayPort("PORT", ":4000"); got != tt.want {
				t.Fatalf("MayPort(%q) = %q, want %q", tt.val, got, tt.want)
			}
		})
	}
}

func TestMayScalars(t *testing.T) {
	c := New().Prefix("CAPTURE_")
	t.Setenv("CAPTURE_HUB_BUFFER", "256")
	t.Setenv("CAPTURE_INGEST_RPS", "2.5")
	t.Setenv("CAPTURE_AUTOSTART", "false")
	t.Setenv("CAPTURE_BAD_INT", "x")
	t.Setenv("CAPTURE_BAD_BOOL", "maybe")

	if got := c.MayInt("HUB_BUFFER", 1); got != 256 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BAD_INT", 3); got != 3 {
		t.Fatalf("MayInt invalid = %d, want default", got)
	}
	if got := c.MayFloat64("INGEST_RPS", 1); got != 2.5 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if got := c.MayBool("AUTOSTART", true); got {
		t.Fatalf("MayBool = true, want false")
	}
	if got := c.MayBool("BAD_BOOL", true); !got {
		t.Fatalf("MayBool invalid should use default")
	}
	if got := c.MayString("MISSING", "dflt"); got != "dflt" {
		t.Fatalf("MayString = %q", got)
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("FORWARD_")
	t.Setenv("FORWARD_TIMEOUT", "3s")
	t.Setenv("FORWARD_ZERO", "0s")
	t.Setenv("FORWARD_BAD", "soon")

	if got := c.MayDuration("TIMEOUT", 15*time.Second); got != 3*time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("ZERO", 15*time.Second); got != 15*time.Second {
		t.Fatalf("MayDuration zero = %v, want default", got)
	}
	if got := c.MayDuration("BAD", 15*time.Second); got != 15*time.Second {
		t.Fatalf("MayDuration invalid = %v, want default", got)
	}
}

func TestMayStrings(t *testing.T) {
	c := New().Prefix("CAPTURE_API_")
	t.Setenv("CAPTURE_API_CORS_ORIGINS", " http://localhost:5173, ,https://panel.example ")
	got := c.MayStrings("CORS_ORIGINS", nil)
	if len(got) != 2 || got[0] != "http://localhost:5173" || got[1] != "https://panel.example" {
		t.Fatalf("MayStrings = %q", got)
	}
	t.Setenv("CAPTURE_API_EMPTY", " , ")
	if got := c.MayStrings("EMPTY", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("MayStrings blank = %q", got)
	}
}

func TestMayBool_AgreesWithRawWords(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"yes", false, true},
		{"ON", false, true},
		{"1", false, true},
		{"True", false, true},
		{"t", false, true},
		{"no", true, false},
		{"Off", true, false},
		{"0", true, false},
		{"f", true, false},
		{"perhaps", true, true},
		{"perhaps", false, false},
	}
	for _, tt := range cases {
		t.Run(tt.val, func(t *testing.T) {
			t.Setenv("SERVICE_PGSQL_LOG_SQL", tt.val)
			if got := c.MayBool("LOG_SQL", tt.def); got != tt.want {
				t.Fatalf("MayBool(%q, def=%v) = %v, want %v", tt.val, tt.def, got, tt.want)
			}
		})
	}
}
