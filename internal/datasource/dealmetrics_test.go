package datasource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/memo-cli/internal/model"
	"github.com/sells-group/memo-cli/pkg/salesforce"
)

type fakeSF struct {
	opps     []salesforce.Opportunity
	lastSOQL string
}

func (f *fakeSF) Query(_ context.Context, soql string, out any) error {
	f.lastSOQL = soql
	*(out.(*[]salesforce.Opportunity)) = f.opps
	return nil
}

func (f *fakeSF) UpdateOne(context.Context, string, string, map[string]any) error { return nil }

func TestDealMetrics_FetchData(t *testing.T) {
	sf := &fakeSF{opps: []salesforce.Opportunity{{
		ID:          "006abc",
		Name:        "Project Atlas",
		StageName:   "Due Diligence",
		Amount:      50_000_000,
		Industry:    "Technology",
		AccountName: "Atlas Software Inc",
	}}}
	conn := NewDealMetricsConnector(sf)

	data, err := conn.FetchData(context.Background(),
		model.DataBinding{SourceType: model.SourceDealMetrics, SourceID: "006abc"},
		model.ProjectContext{})
	require.NoError(t, err)

	assert.Equal(t, 50_000_000.0, data["dealValue"])
	assert.Equal(t, "Due Diligence", data["stage"])
	assert.Equal(t, "Technology", data["industry"])
	assert.Equal(t, "Atlas Software Inc", data["accountName"])
}

func TestDealMetrics_FallsBackToContextID(t *testing.T) {
	sf := &fakeSF{opps: []salesforce.Opportunity{{ID: "006ctx", Name: "Ctx Deal"}}}
	conn := NewDealMetricsConnector(sf)

	_, err := conn.FetchData(context.Background(),
		model.DataBinding{SourceType: model.SourceDealMetrics},
		model.ProjectContext{ID: "006ctx"})
	require.NoError(t, err)
	assert.Contains(t, sf.lastSOQL, "'006ctx'")
}

func TestDealMetrics_NoID(t *testing.T) {
	conn := NewDealMetricsConnector(&fakeSF{})

	_, err := conn.FetchData(context.Background(), model.DataBinding{}, model.ProjectContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no opportunity id")
}

func TestDealMetrics_NotFound(t *testing.T) {
	conn := NewDealMetricsConnector(&fakeSF{})

	_, err := conn.FetchData(context.Background(),
		model.DataBinding{SourceID: "missing"}, model.ProjectContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
