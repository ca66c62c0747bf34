package datasource

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/memo-cli/internal/model"
)

type stubConnector struct {
	data map[string]any
	err  error
}

func (s *stubConnector) Connect(context.Context) error { return nil }
func (s *stubConnector) Disconnect() error             { return nil }
func (s *stubConnector) FetchData(context.Context, model.DataBinding, model.ProjectContext) (map[string]any, error) {
	return s.data, s.err
}

func TestRegistry_GetRegistered(t *testing.T) {
	r := NewRegistry()
	conn := &stubConnector{data: map[string]any{"revenue": 45.0}}
	r.Register(model.SourceDealMetrics, conn)

	got, err := r.Get(model.SourceDealMetrics)
	require.NoError(t, err)
	assert.Same(t, Connector(conn), got)
}

func TestRegistry_GetMissing(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get(model.SourceMarketData)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrSourceNotRegistered))
}

func TestRegistry_ReplaceConnector(t *testing.T) {
	r := NewRegistry()
	first := &stubConnector{}
	second := &stubConnector{}
	r.Register(model.SourceFinancialModel, first)
	r.Register(model.SourceFinancialModel, second)

	got, err := r.Get(model.SourceFinancialModel)
	require.NoError(t, err)
	assert.Same(t, Connector(second), got)
}

func TestRegistry_SourceTypes(t *testing.T) {
	r := NewRegistry()
	r.Register(model.SourceDealMetrics, &stubConnector{})
	r.Register(model.SourceMarketData, &stubConnector{})

	types := r.SourceTypes()
	assert.ElementsMatch(t, []model.SourceType{model.SourceDealMetrics, model.SourceMarketData}, types)
}
