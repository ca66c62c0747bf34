// Package render wraps the external document rendering service that
// produces binary output formats (PDF, Word). The pipeline hands over the
// finished section list and receives back a content handle; it never
// assembles binary document formats itself.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/model"
)

// Client renders a finished work product into a binary output format.
type Client interface {
	Render(ctx context.Context, format model.OutputFormat, doc *model.WorkProduct) (*Result, error)
}

// Result is the rendering service's content handle.
type Result struct {
	ContentID   string `json:"content_id"`
	DownloadURL string `json:"download_url"`
	ByteSize    int64  `json:"byte_size"`
}

// Options configures the HTTP render client.
type Options struct {
	BaseURL string
	Key     string
	Timeout time.Duration
}

// httpClient implements Client against the rendering service's REST API.
type httpClient struct {
	http *http.Client
	opts Options
}

// NewClient creates a render client for the given service endpoint.
func NewClient(opts Options) Client {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	return &httpClient{
		http: &http.Client{Timeout: opts.Timeout},
		opts: opts,
	}
}

// renderRequest is the wire shape of a render job.
type renderRequest struct {
	Format   string          `json:"format"`
	Title    string          `json:"title"`
	Sections []renderSection `json:"sections"`
}

type renderSection struct {
	Title   string `json:"title"`
	Order   int    `json:"order"`
	Content string `json:"content"`
}

func (c *httpClient) Render(ctx context.Context, format model.OutputFormat, doc *model.WorkProduct) (*Result, error) {
	payload := renderRequest{
		Format: string(format),
		Title:  doc.Title,
	}
	for _, sec := range doc.Sections {
		payload.Sections = append(payload.Sections, renderSection{
			Title:   sec.Title,
			Order:   sec.Order,
			Content: sec.Content,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, eris.Wrap(err, "render: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/v1/render", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "render: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.opts.Key != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "render: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("render: unexpected status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, eris.Wrap(err, "render: decode response")
	}

	zap.L().Debug("render: document rendered",
		zap.String("format", string(format)),
		zap.String("content_id", result.ContentID),
		zap.Int64("bytes", result.ByteSize),
	)
	return &result, nil
}
