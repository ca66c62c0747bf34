// Package datasource connects section data bindings to the external
// systems that hold deal data. Each connector owns one source type;
// the registry hands the binder the right connector for a binding.
package datasource

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/sells-group/memo-cli/internal/model"
)

// ErrSourceNotRegistered is returned when a binding names a source type
// no connector was registered for.
var ErrSourceNotRegistered = eris.New("data source not registered")

// Connector fetches raw records for one source type. Connect is called
// once before the first fetch and Disconnect once after the last; both
// are no-ops for stateless connectors.
type Connector interface {
	Connect(ctx context.Context) error
	FetchData(ctx context.Context, binding model.DataBinding, pctx model.ProjectContext) (map[string]any, error)
	Disconnect() error
}

// Registry maps source types to connectors. Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	connectors map[model.SourceType]Connector
}

// NewRegistry creates an empty connector registry.
func NewRegistry() *Registry {
	return &Registry{connectors: make(map[model.SourceType]Connector)}
}

// Register adds or replaces the connector for a source type.
func (r *Registry) Register(st model.SourceType, c Connector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connectors[st] = c
}

// Get returns the connector for a source type.
func (r *Registry) Get(st model.SourceType) (Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.connectors[st]
	if !ok {
		return nil, eris.Wrapf(ErrSourceNotRegistered, "source type %q", st)
	}
	return c, nil
}

// SourceTypes returns the registered source types.
func (r *Registry) SourceTypes() []model.SourceType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]model.SourceType, 0, len(r.connectors))
	for st := range r.connectors {
		types = append(types, st)
	}
	return types
}
