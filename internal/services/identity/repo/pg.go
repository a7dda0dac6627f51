package repo

import (
	"context"

	perr "cobrify/internal/platform/errors"
	"cobrify/internal/platform/store"
)

// PG keeps identity values in business_prefs
type PG struct{ db store.TxRunner }

var _ Repo = (*PG)(nil)

// NewPG binds the repo to db
func NewPG(db store.TxRunner) *PG {
	if db == nil {
		panic("identity.PG requires a non nil TxRunner")
	}
	return &PG{db: db}
}

const schemaSQL = `
create table if not exists business_prefs (
	key        text primary key,
	value      text not null check (value <> ''),
	updated_at timestamptz not null default now()
)`

// EnsureSchema creates business_prefs when missing
func (r *PG) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schemaSQL)
	return perr.FromPG(err, "ensure business_prefs")
}

type kv struct{ k, v string }

// Load implements Repo
func (r *PG) Load(ctx context.Context, keys []string) (map[string]string, error) {
	rows, err := store.Many(ctx, r.db, func(row store.Row) (kv, error) {
		var p kv
		err := row.Scan(&p.k, &p.v)
		return p, err
	}, `select key, value from business_prefs where key = any($1)`, keys)
	if err != nil {
		return nil, perr.FromPG(err, "load identity")
	}
	out := make(map[string]string, len(rows))
	for _, p := range rows {
		out[p.k] = p.v
	}
	return out, nil
}

// Replace implements Repo
func (r *PG) Replace(ctx context.Context, keys []string, values map[string]string) error {
	err := r.db.Tx(ctx, func(q store.RowQuerier) error {
		if _, err := q.Exec(ctx, `delete from business_prefs where key = any($1)`, keys); err != nil {
			return err
		}
		for k, v := range values {
			if err := store.ExecOne(ctx, q, `
insert into business_prefs (key, value, updated_at) values ($1, $2, now())
on conflict (key) do update set value = excluded.value, updated_at = excluded.updated_at`, k, v); err != nil {
				return err
			}
		}
		return nil
	})
	return perr.FromPG(err, "store identity")
}

// Delete implements Repo
func (r *PG) Delete(ctx context.Context, keys []string) error {
	_, err := r.db.Exec(ctx, `delete from business_prefs where key = any($1)`, keys)
	return perr.FromPG(err, "clear identity")
}
