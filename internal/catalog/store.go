package catalog

import (
	"context"

	"github.com/sells-group/memo-cli/internal/model"
)

// Store defines the persistence interface for the template catalog.
type Store interface {
	// List returns every stored template.
	List(ctx context.Context) ([]model.Template, error)

	// Get returns the template with the given id, or nil if absent.
	Get(ctx context.Context, id string) (*model.Template, error)

	// Save upserts a template by id.
	Save(ctx context.Context, tmpl *model.Template) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
