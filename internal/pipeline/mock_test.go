package pipeline

import (
	"context"
	"sync"

	"github.com/sells-group/memo-cli/internal/catalog"
	"github.com/sells-group/memo-cli/internal/config"
	"github.com/sells-group/memo-cli/internal/model"
	"github.com/sells-group/memo-cli/pkg/render"
)

// fakeProse returns canned text and records the prompts it saw.
type fakeProse struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (f *fakeProse) GenerateProse(_ context.Context, prompt string, _ model.ProjectContext) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if f.text == "" {
		return "Generated analysis of the opportunity and its market position.", nil
	}
	return f.text, nil
}

// memStore is an in-memory catalog store.
type memStore struct {
	mu        sync.Mutex
	templates map[string]model.Template
}

func newMemStore() *memStore {
	return &memStore{templates: make(map[string]model.Template)}
}

func (m *memStore) List(context.Context) ([]model.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Template, 0, len(m.templates))
	for _, t := range m.templates {
		out = append(out, t)
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, id string) (*model.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *memStore) Save(_ context.Context, tmpl *model.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[tmpl.ID] = *tmpl
	return nil
}

func (m *memStore) Migrate(context.Context) error { return nil }
func (m *memStore) Close() error                  { return nil }

// fakeRenderer returns a fixed content handle.
type fakeRenderer struct {
	lastFormat model.OutputFormat
	err        error
}

func (f *fakeRenderer) Render(_ context.Context, format model.OutputFormat, _ *model.WorkProduct) (*render.Result, error) {
	f.lastFormat = format
	if f.err != nil {
		return nil, f.err
	}
	return &render.Result{
		ContentID:   "content-1",
		DownloadURL: "https://render.example.com/content-1." + string(format),
		ByteSize:    4096,
	}, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Pipeline.MaxConcurrentSections = 4
	return cfg
}

func testCatalog() *catalog.Service {
	return catalog.NewService(newMemStore())
}
