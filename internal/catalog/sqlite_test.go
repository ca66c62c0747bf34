package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/memo-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_SaveAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	tmpl := &model.Template{
		ID:           "tmpl-1",
		Name:         "Test Memo",
		DocumentType: model.DocTypeInvestmentMemo,
		Sections: []model.SectionDescriptor{
			{ID: "s1", Title: "Summary", Order: 1, Required: true, Strategy: model.StrategyGenerated},
		},
	}
	require.NoError(t, st.Save(ctx, tmpl))

	got, err := st.Get(ctx, "tmpl-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Test Memo", got.Name)
	assert.Len(t, got.Sections, 1)
}

func TestSQLite_Get_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	got, err := st.Get(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_Save_UpsertIsIdempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	tmpl := &model.Template{ID: "tmpl-1", Name: "v1", DocumentType: model.DocTypeInvestmentMemo}
	require.NoError(t, st.Save(ctx, tmpl))

	tmpl.Name = "v2"
	require.NoError(t, st.Save(ctx, tmpl))

	all, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "v2", all[0].Name)
}

func TestSQLite_List_Empty(t *testing.T) {
	st := newTestSQLiteStore(t)

	all, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
