package pg

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	in := "SELECT value\n\t FROM business_prefs\r\n WHERE key = $1"
	if got := compact(in); got != "SELECT value FROM business_prefs WHERE key = $1" {
		t.Fatalf("compact = %q", got)
	}
}

func TestTracer_LevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf).Level(zerolog.ErrorLevel))

	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT  1", ElapsedUS: 1500})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 2", Slow: true})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 3", Err: errors.New("boom")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines despite root level, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"level":"info"`) || !strings.Contains(lines[0], `"sql":"SELECT 1"`) {
		t.Fatalf("line0 = %s", lines[0])
	}
	if !strings.Contains(lines[0], `"elapsed_ms":1.5`) {
		t.Fatalf("line0 elapsed = %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"warn"`) || !strings.Contains(lines[2], `"error":"boom"`) {
		t.Fatalf("warn lines = %v", lines[1:])
	}
}
