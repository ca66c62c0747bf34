package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/memo-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS templates (
	id            TEXT PRIMARY KEY,
	document_type TEXT NOT NULL,
	data          TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_templates_document_type ON templates(document_type);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) List(ctx context.Context) ([]model.Template, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM templates ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list templates")
	}
	defer rows.Close() //nolint:errcheck

	var templates []model.Template
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan template")
		}
		var tmpl model.Template
		if err := json.Unmarshal([]byte(data), &tmpl); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal template")
		}
		templates = append(templates, tmpl)
	}
	return templates, eris.Wrap(rows.Err(), "sqlite: iterate templates")
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Template, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM templates WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get template %s", id)
	}

	var tmpl model.Template
	if err := json.Unmarshal([]byte(data), &tmpl); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal template %s", id)
	}
	return &tmpl, nil
}

func (s *SQLiteStore) Save(ctx context.Context, tmpl *model.Template) error {
	data, err := json.Marshal(tmpl)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal template")
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO templates (id, document_type, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET document_type = excluded.document_type, data = excluded.data, updated_at = excluded.updated_at`,
		tmpl.ID, string(tmpl.DocumentType), string(data), now, now,
	)
	return eris.Wrapf(err, "sqlite: save template %s", tmpl.ID)
}
