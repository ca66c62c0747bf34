package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/memo-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &PostgresStore{pool: mock}, mock
}

func TestPostgres_Get_Missing(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT data FROM templates WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	got, err := s.Get(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Get_Found(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	tmpl := model.Template{ID: "tmpl-1", Name: "Memo", DocumentType: model.DocTypeInvestmentMemo}
	data, err := json.Marshal(tmpl)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT data FROM templates WHERE id = \$1`).
		WithArgs("tmpl-1").
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow(data))

	got, err := s.Get(context.Background(), "tmpl-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Memo", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Save_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO templates`).
		WithArgs("tmpl-1", "investment-memo", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.Save(context.Background(), &model.Template{
		ID:           "tmpl-1",
		Name:         "Memo",
		DocumentType: model.DocTypeInvestmentMemo,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_List(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	a, _ := json.Marshal(model.Template{ID: "a", DocumentType: model.DocTypeInvestmentMemo})
	b, _ := json.Marshal(model.Template{ID: "b", DocumentType: model.DocTypeMarketAnalysis})

	mock.ExpectQuery(`SELECT data FROM templates ORDER BY id`).
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow(a).AddRow(b))

	all, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
