// Package pipeline drives document generation: template selection,
// concurrent section generation with data binding and validation,
// optimization, and conversion.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/sells-group/memo-cli/internal/catalog"
	"github.com/sells-group/memo-cli/internal/config"
	"github.com/sells-group/memo-cli/internal/datasource"
	"github.com/sells-group/memo-cli/internal/model"
	"github.com/sells-group/memo-cli/internal/scorer"
	"github.com/sells-group/memo-cli/pkg/notion"
	"github.com/sells-group/memo-cli/pkg/prose"
	"github.com/sells-group/memo-cli/pkg/render"
	"github.com/sells-group/memo-cli/pkg/salesforce"
)

// Pipeline orchestrates the generation run. Only unknown-template and
// no-suitable-template conditions escalate to the caller; section,
// binding, and validation failures are absorbed into warnings/metrics.
type Pipeline struct {
	cfg      *config.Config
	catalog  *catalog.Service
	selector *scorer.Selector
	prose    prose.Client
	renderer render.Client
	sources  *datasource.Registry

	// Optional integrations. Nil disables them.
	crm          salesforce.Client
	notion       notion.Client
	notionParent string
}

// Option configures optional pipeline integrations.
type Option func(*Pipeline)

// WithCRM enables the memo-generated write-back to the deal record.
func WithCRM(c salesforce.Client) Option {
	return func(p *Pipeline) { p.crm = c }
}

// WithNotionPublish enables publishing finished documents under the
// given Notion parent page.
func WithNotionPublish(c notion.Client, parentPageID string) Option {
	return func(p *Pipeline) {
		p.notion = c
		p.notionParent = parentPageID
	}
}

// New creates a Pipeline with all dependencies.
func New(
	cfg *config.Config,
	cat *catalog.Service,
	proseClient prose.Client,
	renderer render.Client,
	sources *datasource.Registry,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		catalog:  cat,
		selector: scorer.NewSelector(cat),
		prose:    proseClient,
		renderer: renderer,
		sources:  sources,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Transform turns a generation request into a finished document.
func (p *Pipeline) Transform(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error) {
	start := time.Now()
	log := zap.L().With(
		zap.String("workspace", req.WorkspaceID),
		zap.String("project", req.Context.Name),
		zap.String("mode", string(req.Mode)),
	)
	log.Info("pipeline: starting generation")

	req.Context = overlayCustomFields(req.Context, req.CustomFields)

	result := &model.GenerationResult{}

	tmpl, err := p.resolveTemplate(ctx, req, result)
	if err != nil {
		return nil, err
	}

	descriptors := selectDescriptors(tmpl, req.Options.GenerateAllSections)

	sections, warnings := p.generateSections(ctx, descriptors, req, result)
	result.Warnings = append(result.Warnings, warnings...)

	doc := &model.WorkProduct{
		ID:           uuid.NewString(),
		WorkspaceID:  req.WorkspaceID,
		Title:        tmpl.Name + " - " + req.Context.Name,
		DocumentType: tmpl.DocumentType,
		Status:       model.StatusDraft,
		TemplateID:   tmpl.ID,
		Sections:     sections,
		Author:       "memo-cli",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
		Version:      "1.0",
		Metadata: map[string]any{
			"mode": string(req.Mode),
		},
	}
	doc.SortSections()

	if req.Options.OptimizeContent {
		optMetrics, optSuggestions := optimizeDocument(doc, OptimizeOptions{
			ProfessionalTone:  true,
			Concise:           true,
			InjectTerminology: true,
			Industry:          req.Context.Sector,
		})
		result.Suggestions = append(result.Suggestions, optSuggestions...)
		result.Metrics.OptimizationRun = true
		doc.Metadata["optimization"] = optMetrics
	}

	doc.Metadata["word_count"] = doc.WordCount()
	doc.Metadata["reading_time"] = doc.ReadingTime()

	est := scorer.Estimate(tmpl, req.Mode)
	result.Document = doc
	result.Metrics.TotalSections = len(descriptors)
	result.Metrics.GeneratedSections = len(sections)
	result.Metrics.AutomationLevel = est.AutomationLevel
	result.Metrics.QualityScore = meanSectionQuality(sections)
	result.Metrics.ElapsedMs = time.Since(start).Milliseconds()

	p.recordGeneration(ctx, req, result)

	log.Info("pipeline: generation complete",
		zap.String("document_id", doc.ID),
		zap.Int("sections", len(sections)),
		zap.Int("warnings", len(result.Warnings)),
		zap.Int64("elapsed_ms", result.Metrics.ElapsedMs),
	)
	return result, nil
}

// resolveTemplate finds the template for the request: an explicit id via
// the catalog, otherwise the selector's best match. Both misses are
// fatal for the request.
func (p *Pipeline) resolveTemplate(ctx context.Context, req model.GenerationRequest, result *model.GenerationResult) (*model.Template, error) {
	if req.TemplateID != "" {
		tmpl, err := p.catalog.Get(ctx, req.TemplateID)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: resolve template")
		}
		return tmpl, nil
	}

	matches, err := p.selector.FindOptimal(ctx, req.Context, req.Context.DocumentType, req.Mode)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: select template")
	}
	if len(matches) == 0 {
		return nil, eris.Wrapf(model.ErrNoSuitableTemplate, "document type %q", req.Context.DocumentType)
	}

	best := matches[0]
	result.Suggestions = append(result.Suggestions, best.Suggestions...)
	zap.L().Debug("pipeline: template selected",
		zap.String("template", best.Template.ID),
		zap.Float64("score", best.Score),
		zap.String("reasoning", best.Reasoning),
	)
	return best.Template, nil
}

// selectDescriptors picks the section set for the run: required-only by
// default, everything when requested.
func selectDescriptors(tmpl *model.Template, all bool) []model.SectionDescriptor {
	if all {
		return tmpl.Sections
	}
	var out []model.SectionDescriptor
	for _, desc := range tmpl.Sections {
		if desc.Required {
			out = append(out, desc)
		}
	}
	return out
}

// generateSections runs section generation concurrently under the
// configured bound. Sections whose generation fails are omitted and
// reported as warnings; binding and validation run inline per section
// when requested.
func (p *Pipeline) generateSections(ctx context.Context, descriptors []model.SectionDescriptor, req model.GenerationRequest, result *model.GenerationResult) ([]model.DocumentSection, []model.Warning) {
	bound := int64(p.cfg.Pipeline.MaxConcurrentSections)
	if bound < 1 {
		bound = 1
	}
	sem := semaphore.NewWeighted(bound)

	var mu sync.Mutex
	var sections []model.DocumentSection
	var warnings []model.Warning

	g, gCtx := errgroup.WithContext(ctx)
	for _, desc := range descriptors {
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			sec, err := generateSection(gCtx, desc, req.Context, req.Mode, p.prose)
			if err != nil {
				zap.L().Warn("pipeline: section generation failed",
					zap.String("section", desc.ID),
					zap.Error(err),
				)
				mu.Lock()
				warnings = append(warnings, model.Warning{
					SectionID:  desc.ID,
					Message:    "section generation failed: " + err.Error(),
					Suggestion: "Retry generation or author the section manually",
					Severity:   model.SeverityError,
				})
				mu.Unlock()
				return nil
			}

			var applied int
			var integrations []model.IntegrationResult
			if req.Options.IncludeDataBindings && len(sec.Bindings) > 0 && p.sources != nil {
				applied, integrations = applyBindings(gCtx, sec, p.sources, req.Context)
			}

			var outcome ValidationOutcome
			if req.Options.ValidateContent {
				outcome = validateSection(sec, sec.Rules)
			}

			mu.Lock()
			sections = append(sections, *sec)
			result.Metrics.BindingsApplied += applied
			result.Metrics.ValidationsPassed += outcome.Passed
			result.Metrics.ValidationsFailed += outcome.Failed
			warnings = append(warnings, outcome.Warnings...)
			result.Integrations = append(result.Integrations, integrations...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return sections, warnings
}

// recordGeneration stamps the deal record and publishes to Notion when
// those integrations are configured. Failures degrade to warnings.
func (p *Pipeline) recordGeneration(ctx context.Context, req model.GenerationRequest, result *model.GenerationResult) {
	if p.crm != nil && req.Context.ID != "" {
		ts := time.Now().UTC().Format(time.RFC3339)
		if err := salesforce.RecordMemoGenerated(ctx, p.crm, req.Context.ID, ts); err != nil {
			zap.L().Warn("pipeline: crm write-back failed", zap.Error(err))
			result.Warnings = append(result.Warnings, model.Warning{
				Message:  "could not record generation on the deal record: " + err.Error(),
				Severity: model.SeverityWarning,
			})
		}
	}

	if p.notion != nil && p.notionParent != "" {
		pageID, err := notion.PublishDocument(ctx, p.notion, p.notionParent, result.Document)
		if err != nil {
			zap.L().Warn("pipeline: notion publish failed", zap.Error(err))
			result.Warnings = append(result.Warnings, model.Warning{
				Message:  "could not publish the document to Notion: " + err.Error(),
				Severity: model.SeverityWarning,
			})
			return
		}
		result.Document.Metadata["notion_page_id"] = pageID
	}
}

// AnalyzeQuality scores an existing document without regenerating it.
func (p *Pipeline) AnalyzeQuality(wp *model.WorkProduct) (*model.QualityReport, error) {
	return analyzeQuality(wp)
}

// Convert serializes a finished document into an output format.
func (p *Pipeline) Convert(ctx context.Context, wp *model.WorkProduct, format model.OutputFormat) (*model.ConversionResult, error) {
	return convertDocument(ctx, wp, format, p.renderer)
}

// overlayCustomFields merges request-level field overrides into the
// context metadata so prompt placeholders can resolve them. The caller's
// context and metadata map are never mutated.
func overlayCustomFields(pctx model.ProjectContext, fields map[string]string) model.ProjectContext {
	if len(fields) == 0 {
		return pctx
	}

	merged := make(map[string]any, len(pctx.Metadata)+len(fields))
	for k, v := range pctx.Metadata {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	pctx.Metadata = merged
	return pctx
}

func meanSectionQuality(sections []model.DocumentSection) float64 {
	if len(sections) == 0 {
		return 0
	}
	total := 0.0
	for _, sec := range sections {
		total += sec.Quality
	}
	return total / float64(len(sections))
}
