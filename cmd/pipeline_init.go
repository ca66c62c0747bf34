package main

import (
	"context"
	"os"

	sf "github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/catalog"
	"github.com/sells-group/memo-cli/internal/config"
	"github.com/sells-group/memo-cli/internal/datasource"
	"github.com/sells-group/memo-cli/internal/fetcher"
	"github.com/sells-group/memo-cli/internal/model"
	"github.com/sells-group/memo-cli/internal/pipeline"
	"github.com/sells-group/memo-cli/pkg/notion"
	"github.com/sells-group/memo-cli/pkg/prose"
	"github.com/sells-group/memo-cli/pkg/render"
	sfpkg "github.com/sells-group/memo-cli/pkg/salesforce"
)

// pipelineEnv holds the initialized store, clients, and pipeline shared
// by the generate/serve commands.
type pipelineEnv struct {
	Store    catalog.Store
	Catalog  *catalog.Service
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

func initStore(ctx context.Context) (catalog.Store, error) {
	switch cfg.Catalog.Driver {
	case "sqlite":
		dsn := cfg.Catalog.DatabaseURL
		if dsn == "" {
			dsn = "memo.db"
		}
		return catalog.NewSQLite(dsn)
	case "postgres":
		return catalog.NewPostgres(ctx, cfg.Catalog.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported catalog driver: %s", cfg.Catalog.Driver)
	}
}

// initSalesforce connects to the CRM when JWT credentials are configured.
// Returns nil without error otherwise: the deal-metrics source and the
// generation write-back are optional.
func initSalesforce(c *config.Config) (sfpkg.Client, error) {
	if c.Salesforce.ClientID == "" {
		return nil, nil
	}

	pemData, err := os.ReadFile(c.Salesforce.KeyPath)
	if err != nil {
		return nil, eris.Wrap(err, "read salesforce JWT private key")
	}

	client, err := sf.Init(sf.Creds{
		Domain:         c.Salesforce.LoginURL,
		Username:       c.Salesforce.Username,
		ConsumerKey:    c.Salesforce.ClientID,
		ConsumerRSAPem: string(pemData),
	})
	if err != nil {
		return nil, eris.Wrap(err, "init salesforce")
	}

	return sfpkg.NewClient(client, sfpkg.WithRateLimit(c.Salesforce.RateLimit)), nil
}

// buildSourceRegistry wires the data source connectors available under
// the current configuration.
func buildSourceRegistry(c *config.Config, sfClient sfpkg.Client) *datasource.Registry {
	registry := datasource.NewRegistry()

	httpFetcher := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{})
	ftpFetcher := fetcher.NewFTPFetcher(fetcher.FTPOptions{
		User:     c.FinModel.FTPUser,
		Password: c.FinModel.FTPPassword,
	})

	if sfClient != nil {
		registry.Register(model.SourceDealMetrics, datasource.NewDealMetricsConnector(sfClient))
	} else {
		zap.L().Debug("MEMO_SALESFORCE_CLIENT_ID not set, deal-metrics source disabled")
	}

	registry.Register(model.SourceFinancialModel,
		datasource.NewFinancialModelConnector(httpFetcher, ftpFetcher, c.FinModel.WorkDir))

	if c.MarketData.BaseURL != "" {
		registry.Register(model.SourceMarketData,
			datasource.NewMarketDataConnector(httpFetcher, c.MarketData.BaseURL))
	} else {
		zap.L().Debug("MEMO_MARKET_DATA_BASE_URL not set, market-data source disabled")
	}

	return registry
}

// initPipeline sets up the store, all API clients, and the pipeline.
// Callers should defer env.Close().
func initPipeline(ctx context.Context, mode string) (*pipelineEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate catalog store")
	}

	cat := catalog.NewService(st)

	proseClient := prose.NewClient(cfg.Anthropic.Key, prose.Options{
		Model:       cfg.Anthropic.Model,
		MaxTokens:   cfg.Anthropic.MaxTokens,
		Temperature: cfg.Anthropic.Temperature,
	})

	var renderer render.Client
	if cfg.Render.BaseURL != "" {
		renderer = render.NewClient(render.Options{
			BaseURL: cfg.Render.BaseURL,
			Key:     cfg.Render.Key,
		})
	} else {
		zap.L().Debug("MEMO_RENDER_BASE_URL not set, pdf/docx output disabled")
	}

	sfClient, err := initSalesforce(cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	registry := buildSourceRegistry(cfg, sfClient)

	var opts []pipeline.Option
	if sfClient != nil {
		opts = append(opts, pipeline.WithCRM(sfClient))
	}
	if cfg.Notion.Token != "" && cfg.Notion.ParentPageID != "" {
		opts = append(opts, pipeline.WithNotionPublish(
			notion.NewClient(cfg.Notion.Token), cfg.Notion.ParentPageID))
		zap.L().Info("notion publishing enabled")
	}

	p := pipeline.New(cfg, cat, proseClient, renderer, registry, opts...)

	return &pipelineEnv{
		Store:    st,
		Catalog:  cat,
		Pipeline: p,
	}, nil
}
