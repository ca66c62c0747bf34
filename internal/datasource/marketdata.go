package datasource

import (
	"context"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/model"
)

// JSONFetcher fetches a URL and decodes the JSON body.
type JSONFetcher interface {
	FetchJSON(ctx context.Context, url string, out any) error
}

// MarketDataConnector pulls sector snapshots from the market data API.
// The binding's SourceID selects the dataset; the project's sector
// scopes the query.
type MarketDataConnector struct {
	fetcher JSONFetcher
	baseURL string
}

// NewMarketDataConnector creates a connector against the given API base URL.
func NewMarketDataConnector(f JSONFetcher, baseURL string) *MarketDataConnector {
	return &MarketDataConnector{fetcher: f, baseURL: strings.TrimRight(baseURL, "/")}
}

// Connect is a no-op; the API is stateless.
func (c *MarketDataConnector) Connect(_ context.Context) error { return nil }

// Disconnect is a no-op.
func (c *MarketDataConnector) Disconnect() error { return nil }

func (c *MarketDataConnector) FetchData(ctx context.Context, binding model.DataBinding, pctx model.ProjectContext) (map[string]any, error) {
	if c.baseURL == "" {
		return nil, eris.New("market-data: no api base url configured")
	}

	dataset := binding.SourceID
	if dataset == "" {
		dataset = "sector-overview"
	}

	q := url.Values{}
	if pctx.Sector != "" {
		q.Set("sector", pctx.Sector)
	}
	if pctx.Geography != "" {
		q.Set("geo", pctx.Geography)
	}
	endpoint := c.baseURL + "/v1/datasets/" + url.PathEscape(dataset)
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var data map[string]any
	if err := c.fetcher.FetchJSON(ctx, endpoint, &data); err != nil {
		return nil, eris.Wrapf(err, "market-data: fetch dataset %s", dataset)
	}

	zap.L().Debug("market-data: dataset fetched",
		zap.String("dataset", dataset),
		zap.Int("fields", len(data)),
	)
	return data, nil
}
