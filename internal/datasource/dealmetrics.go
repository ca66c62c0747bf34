package datasource

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/model"
	"github.com/sells-group/memo-cli/pkg/salesforce"
)

// DealMetricsConnector reads deal-metrics bindings from the CRM
// Opportunity behind the project. The binding's SourceID is the
// opportunity ID; when empty, the project context's ID is used.
type DealMetricsConnector struct {
	sf salesforce.Client
}

// NewDealMetricsConnector creates a connector backed by the given
// Salesforce client.
func NewDealMetricsConnector(sf salesforce.Client) *DealMetricsConnector {
	return &DealMetricsConnector{sf: sf}
}

// Connect is a no-op; the Salesforce client authenticates lazily.
func (c *DealMetricsConnector) Connect(_ context.Context) error { return nil }

// Disconnect is a no-op.
func (c *DealMetricsConnector) Disconnect() error { return nil }

func (c *DealMetricsConnector) FetchData(ctx context.Context, binding model.DataBinding, pctx model.ProjectContext) (map[string]any, error) {
	oppID := binding.SourceID
	if oppID == "" {
		oppID = pctx.ID
	}
	if oppID == "" {
		return nil, eris.New("deal-metrics: no opportunity id in binding or context")
	}

	opp, err := salesforce.FindOpportunityByID(ctx, c.sf, oppID)
	if err != nil {
		return nil, eris.Wrap(err, "deal-metrics: fetch opportunity")
	}
	if opp == nil {
		return nil, eris.Errorf("deal-metrics: opportunity %s not found", oppID)
	}

	zap.L().Debug("deal-metrics: opportunity fetched",
		zap.String("opportunity_id", opp.ID),
		zap.String("stage", opp.StageName),
	)

	return map[string]any{
		"dealValue":   opp.Amount,
		"dealName":    opp.Name,
		"stage":       opp.StageName,
		"closeDate":   opp.CloseDate,
		"description": opp.Description,
		"accountName": opp.AccountName,
		"industry":    opp.Industry,
	}, nil
}
