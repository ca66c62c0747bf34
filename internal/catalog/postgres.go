package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/memo-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool. Intended for team-shared
// catalogs; the SQLite store is the single-user default.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS templates (
	id            TEXT PRIMARY KEY,
	document_type TEXT NOT NULL,
	data          JSONB NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_templates_document_type ON templates(document_type);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]model.Template, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM templates ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list templates")
	}
	defer rows.Close()

	var templates []model.Template
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan template")
		}
		var tmpl model.Template
		if err := json.Unmarshal(data, &tmpl); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal template")
		}
		templates = append(templates, tmpl)
	}
	return templates, eris.Wrap(rows.Err(), "postgres: iterate templates")
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*model.Template, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM templates WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get template %s", id)
	}

	var tmpl model.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal template %s", id)
	}
	return &tmpl, nil
}

func (s *PostgresStore) Save(ctx context.Context, tmpl *model.Template) error {
	data, err := json.Marshal(tmpl)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal template")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO templates (id, document_type, data, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now())
		 ON CONFLICT (id) DO UPDATE SET document_type = EXCLUDED.document_type, data = EXCLUDED.data, updated_at = now()`,
		tmpl.ID, string(tmpl.DocumentType), data,
	)
	return eris.Wrapf(err, "postgres: save template %s", tmpl.ID)
}
