package pg

import (
	"context"
	"errors"
	"testing"

	kit "cobrify/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_BadURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "://nope"}, nil, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_AppliesConfigBeforePool(t *testing.T) {
	var seen *pgxpool.Config
	kit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = c
		return nil, errors.New("stop here")
	})

	_, err := Open(context.Background(),
		Config{URL: "postgres://u:p@127.0.0.1:5432/cobrify", MaxConns: 3},
		nil,
		func(c *pgxpool.Config) { c.MinConns = 1 },
	)
	if err == nil || err.Error() != "stop here" {
		t.Fatalf("err = %v", err)
	}
	if seen == nil || seen.MaxConns != 3 || seen.MinConns != 1 {
		t.Fatalf("pool config = %+v", seen)
	}
}

func TestClose_NilSafe(t *testing.T) {
	var p *PG
	kit.MustNotPanic(t, p.Close)
	kit.MustNotPanic(t, (&PG{}).Close)
}
