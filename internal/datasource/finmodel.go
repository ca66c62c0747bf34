package datasource

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/fetcher"
	"github.com/sells-group/memo-cli/internal/model"
)

// FinancialModelConnector downloads model exports (xlsx workbooks) and
// flattens their metrics sheet into binding data. The binding's SourceID
// is the workbook URL; http(s) and ftp schemes are supported.
type FinancialModelConnector struct {
	http    fetcher.Fetcher
	ftp     fetcher.Fetcher
	workDir string
}

// NewFinancialModelConnector creates a connector that stages downloads
// under workDir. An empty workDir falls back to the OS temp dir.
func NewFinancialModelConnector(httpFetcher, ftpFetcher fetcher.Fetcher, workDir string) *FinancialModelConnector {
	if workDir == "" {
		workDir = os.TempDir()
	}
	return &FinancialModelConnector{http: httpFetcher, ftp: ftpFetcher, workDir: workDir}
}

// Connect ensures the staging directory exists.
func (c *FinancialModelConnector) Connect(_ context.Context) error {
	if err := os.MkdirAll(c.workDir, 0o755); err != nil {
		return eris.Wrap(err, "financial-model: create work dir")
	}
	return nil
}

// Disconnect is a no-op; staged files are cleaned per fetch.
func (c *FinancialModelConnector) Disconnect() error { return nil }

func (c *FinancialModelConnector) FetchData(ctx context.Context, binding model.DataBinding, _ model.ProjectContext) (map[string]any, error) {
	if binding.SourceID == "" {
		return nil, eris.New("financial-model: binding has no workbook url")
	}

	f, err := c.fetcherFor(binding.SourceID)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(c.workDir, uuid.NewString()+".xlsx")
	defer os.Remove(path) //nolint:errcheck

	n, err := f.DownloadToFile(ctx, binding.SourceID, path)
	if err != nil {
		return nil, eris.Wrap(err, "financial-model: download workbook")
	}
	zap.L().Debug("financial-model: workbook downloaded",
		zap.String("url", binding.SourceID),
		zap.Int64("bytes", n),
	)

	metrics, err := fetcher.ReadWorkbookMetrics(path, fetcher.WorkbookOptions{SkipRows: 1})
	if err != nil {
		return nil, eris.Wrap(err, "financial-model: parse workbook")
	}

	data := make(map[string]any, len(metrics))
	for name, raw := range metrics {
		data[name] = coerceMetric(raw)
	}
	return data, nil
}

func (c *FinancialModelConnector) fetcherFor(rawURL string) (fetcher.Fetcher, error) {
	switch {
	case strings.HasPrefix(rawURL, "ftp://"):
		if c.ftp == nil {
			return nil, eris.New("financial-model: ftp fetcher not configured")
		}
		return c.ftp, nil
	case strings.HasPrefix(rawURL, "http://"), strings.HasPrefix(rawURL, "https://"):
		if c.http == nil {
			return nil, eris.New("financial-model: http fetcher not configured")
		}
		return c.http, nil
	default:
		return nil, eris.Errorf("financial-model: unsupported url scheme in %q", rawURL)
	}
}

// coerceMetric converts numeric workbook cells to float64 so transforms
// like currency formatting can operate on them. Non-numeric values stay
// strings.
func coerceMetric(raw string) any {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return raw
	}
	if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return v
	}
	return raw
}
