// Package catalog holds the document template catalog: built-in templates
// seeded on first use, custom templates derived from finished documents,
// and a process-lifetime cache in front of the persistence store.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/model"
)

// Service serves templates from an in-memory cache keyed by id. The cache
// is populated at most once (built-ins seeded through the store, then all
// stored templates loaded); Save appends to it afterwards.
type Service struct {
	store Store

	initOnce sync.Once
	initErr  error

	mu    sync.RWMutex
	cache map[string]*model.Template
}

// NewService creates a catalog Service on top of the given store.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		cache: make(map[string]*model.Template),
	}
}

// ensureInit lazily seeds built-ins and loads the cache. Concurrent first
// callers are serialized by the once guard so initialization runs exactly
// one time per process.
func (s *Service) ensureInit(ctx context.Context) error {
	s.initOnce.Do(func() {
		builtins, err := BuiltinTemplates()
		if err != nil {
			s.initErr = err
			return
		}

		for i := range builtins {
			existing, err := s.store.Get(ctx, builtins[i].ID)
			if err != nil {
				s.initErr = err
				return
			}
			// Stored copies win so usage statistics survive restarts.
			if existing != nil {
				continue
			}
			if err := s.store.Save(ctx, &builtins[i]); err != nil {
				s.initErr = err
				return
			}
		}

		stored, err := s.store.List(ctx)
		if err != nil {
			s.initErr = err
			return
		}

		s.mu.Lock()
		for i := range stored {
			t := stored[i]
			s.cache[t.ID] = &t
		}
		s.mu.Unlock()

		zap.L().Info("catalog: initialized",
			zap.Int("templates", len(stored)),
		)
	})
	return s.initErr
}

// ListByType returns all templates targeting the given document type.
func (s *Service) ListByType(ctx context.Context, docType model.DocumentType) ([]model.Template, error) {
	if err := s.ensureInit(ctx); err != nil {
		return nil, eris.Wrap(err, "catalog: init")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Template
	for _, t := range s.cache {
		if t.DocumentType == docType {
			out = append(out, *t)
		}
	}
	return out, nil
}

// Get returns the template with the given id. Unknown ids are fatal for
// the current request: generation cannot proceed without a template.
func (s *Service) Get(ctx context.Context, id string) (*model.Template, error) {
	if err := s.ensureInit(ctx); err != nil {
		return nil, eris.Wrap(err, "catalog: init")
	}

	s.mu.RLock()
	t, ok := s.cache[id]
	s.mu.RUnlock()
	if !ok {
		return nil, eris.Wrapf(model.ErrTemplateNotFound, "catalog: get %s", id)
	}

	cp := *t
	return &cp, nil
}

// Save upserts a template into the store and cache.
func (s *Service) Save(ctx context.Context, tmpl *model.Template) error {
	if err := s.ensureInit(ctx); err != nil {
		return eris.Wrap(err, "catalog: init")
	}
	if err := s.store.Save(ctx, tmpl); err != nil {
		return err
	}

	cp := *tmpl
	s.mu.Lock()
	s.cache[cp.ID] = &cp
	s.mu.Unlock()
	return nil
}

// Derive builds a custom template from a finished document and persists it
// under a fresh id. This is the only template mutation path; existing
// templates are never modified in place.
func (s *Service) Derive(ctx context.Context, doc *model.WorkProduct, name string) (*model.Template, error) {
	if doc == nil || len(doc.Sections) == 0 {
		return nil, eris.New("catalog: derive: document has no sections")
	}
	if name == "" {
		name = fmt.Sprintf("Custom - %s", doc.Title)
	}

	tmpl := &model.Template{
		ID:           "tmpl-custom-" + uuid.New().String(),
		Name:         name,
		Description:  fmt.Sprintf("Derived from %q on %s", doc.Title, time.Now().UTC().Format("2006-01-02")),
		Category:     "custom",
		DocumentType: doc.DocumentType,
		Tags:         []string{"custom", "derived"},
	}

	for _, sec := range doc.Sections {
		tmpl.Sections = append(tmpl.Sections, model.SectionDescriptor{
			ID:          "sec-" + uuid.New().String(),
			Title:       sec.Title,
			Order:       sec.Order,
			Required:    sec.Required,
			ContentType: sec.ContentType,
			Strategy:    sec.Strategy,
			Prompt:      sec.Prompt,
			Bindings:    sec.Bindings,
			Rules:       sec.Rules,
			EstWords:    sec.WordCount(),
		})
	}

	if err := s.Save(ctx, tmpl); err != nil {
		return nil, err
	}

	zap.L().Info("catalog: derived custom template",
		zap.String("template_id", tmpl.ID),
		zap.String("source_document", doc.ID),
		zap.Int("sections", len(tmpl.Sections)),
	)
	return tmpl, nil
}
