package store

import (
	"context"
	"errors"
	"testing"

	"cobrify/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRow struct{ err error }

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) == 1 {
		if s, ok := dest[0].(*string); ok {
			*s = "biz-1"
		}
	}
	return nil
}

type fakePgx struct {
	execErr  error
	queryErr error
	rowErr   error
	calls    []string
}

func (f *fakePgx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, sql)
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f *fakePgx) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, sql)
	return nil, f.queryErr
}

func (f *fakePgx) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	f.calls = append(f.calls, sql)
	return fakeRow{err: f.rowErr}
}

type recTracer struct{ events []pg.QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { r.events = append(r.events, ev) }

func TestTraced_EmitsPerStatement(t *testing.T) {
	ctx := context.Background()
	tr := &recTracer{}
	q := traced{q: &fakePgx{rowErr: pgx.ErrNoRows, queryErr: errors.New("syntax")}, tracer: tr, slowMs: 0}

	tag, err := q.Exec(ctx, "INSERT INTO business_prefs VALUES ($1,$2)", "business_id", "b")
	if err != nil || tag.RowsAffected() != 1 {
		t.Fatalf("exec: tag=%v err=%v", tag, err)
	}
	if _, err := q.Query(ctx, "SELEC"); err == nil {
		t.Fatalf("expected query error")
	}
	var v string
	if err := q.QueryRow(ctx, "SELECT value FROM business_prefs").Scan(&v); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("scan err = %v", err)
	}

	if len(tr.events) != 3 {
		t.Fatalf("events = %d", len(tr.events))
	}
	if tr.events[0].Err != nil || tr.events[1].Err == nil || !errors.Is(tr.events[2].Err, pgx.ErrNoRows) {
		t.Fatalf("event errors = %v %v %v", tr.events[0].Err, tr.events[1].Err, tr.events[2].Err)
	}
	for _, ev := range tr.events {
		if !ev.Slow {
			t.Fatalf("slowMs=0 marks everything slow: %+v", ev)
		}
	}
}

func TestTraced_NilTracerIsQuiet(t *testing.T) {
	f := &fakePgx{}
	q := traced{q: f}
	var v string
	if err := q.QueryRow(context.Background(), "SELECT 1").Scan(&v); err != nil || v != "biz-1" {
		t.Fatalf("scan v=%q err=%v", v, err)
	}
	if len(f.calls) != 1 {
		t.Fatalf("calls = %v", f.calls)
	}
}
