package scorer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/model"
)

// Candidates for a score at or below the cutoff are not worth surfacing.
const scoreCutoff = 0.3

// Deal values above this get an extra-sections customization suggestion.
const largeDealThreshold = 100_000_000.0

// Words-per-minute proxy used to turn section word estimates into a base
// generation time.
const wordsPerMinute = 100.0

// Catalog is the template listing surface the selector needs.
type Catalog interface {
	ListByType(ctx context.Context, docType model.DocumentType) ([]model.Template, error)
}

// modeMultiplier scales the base estimate per generation mode.
type modeMultiplier struct {
	time       float64
	automation float64
	quality    float64
}

var modeMultipliers = map[model.GenerationMode]modeMultiplier{
	model.ModeTraditional: {time: 1.0, automation: 0.3, quality: 0.7},
	model.ModeAssisted:    {time: 0.6, automation: 0.7, quality: 0.85},
	model.ModeAutonomous:  {time: 0.3, automation: 0.95, quality: 0.9},
}

// Selector ranks catalog templates for a request.
type Selector struct {
	catalog Catalog
}

// NewSelector creates a Selector over the given catalog.
func NewSelector(catalog Catalog) *Selector {
	return &Selector{catalog: catalog}
}

// FindOptimal scores every catalog template for the document type, drops
// candidates at or below the cutoff, and returns the survivors sorted by
// descending relevance with suggestions and per-mode estimates attached.
// An empty result means no suitable template exists; the orchestrator
// treats that as fatal.
func (s *Selector) FindOptimal(ctx context.Context, pctx model.ProjectContext, docType model.DocumentType, mode model.GenerationMode) ([]model.TemplateMatchResult, error) {
	candidates, err := s.catalog.ListByType(ctx, docType)
	if err != nil {
		return nil, eris.Wrap(err, "selector: list templates")
	}

	var matches []model.TemplateMatchResult
	for i := range candidates {
		tmpl := candidates[i]
		score, reasoning := Score(&tmpl, pctx)
		if score <= scoreCutoff {
			continue
		}
		matches = append(matches, model.TemplateMatchResult{
			Template:    &tmpl,
			Score:       score,
			Reasoning:   reasoning,
			Suggestions: customizations(&tmpl, pctx),
			Estimate:    Estimate(&tmpl, mode),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	zap.L().Debug("selector: ranked templates",
		zap.String("document_type", string(docType)),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(matches)),
	)
	return matches, nil
}

// Estimate derives the time/automation/quality bundle for generating from
// a template under the given mode. Base time is the summed section word
// estimates over a fixed words-per-minute proxy.
func Estimate(tmpl *model.Template, mode model.GenerationMode) model.Estimate {
	totalWords := 0
	for _, sec := range tmpl.Sections {
		totalWords += sec.EstWords
	}
	baseMinutes := float64(totalWords) / wordsPerMinute

	mult, ok := modeMultipliers[mode]
	if !ok {
		mult = modeMultipliers[model.ModeTraditional]
	}
	return model.Estimate{
		TimeMinutes:     baseMinutes * mult.time,
		AutomationLevel: mult.automation,
		ExpectedQuality: mult.quality,
	}
}

// customizations suggests template adjustments for this specific context.
func customizations(tmpl *model.Template, pctx model.ProjectContext) []string {
	var out []string

	if len(tmpl.IndustryFocus) > 0 && !matchesAny(pctx.Sector, tmpl.IndustryFocus) {
		out = append(out, fmt.Sprintf("Tailor sector language for %s", pctx.Sector))
	}
	if pctx.DealValue > largeDealThreshold {
		out = append(out, "Add financing structure and syndication sections for a large transaction")
	}
	if isElevatedRisk(pctx.RiskProfile) {
		out = append(out, "Expand risk analysis with mitigation plans given the elevated risk profile")
	}
	return out
}

func isElevatedRisk(profile string) bool {
	switch strings.ToLower(strings.TrimSpace(profile)) {
	case "high", "elevated", "critical":
		return true
	}
	return false
}
