package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/memo-cli/internal/model"
	"github.com/sells-group/memo-cli/internal/resilience"
	"github.com/sells-group/memo-cli/internal/templating"
	"github.com/sells-group/memo-cli/pkg/prose"
)

// Per-strategy quality estimates. Heuristic constants by design of the
// strategy table, not measured scores; AnalyzeQuality reads real signal.
const (
	qualityGenerated  = 0.85
	qualityDataDriven = 0.90
	qualityHybrid     = 0.88
	qualityStatic     = 0.60
)

// hybridSeparator joins the prose and data halves of a hybrid section.
const hybridSeparator = "\n\n---\n\n"

// generateSection expands one descriptor into a populated section.
// Failures bubble up; the orchestrator converts them into warnings and
// omits the section.
func generateSection(ctx context.Context, desc model.SectionDescriptor, pctx model.ProjectContext, mode model.GenerationMode, writer prose.Client) (*model.DocumentSection, error) {
	var content string
	var resolvedPrompt string
	quality := qualityStatic

	switch desc.Strategy {
	case model.StrategyGenerated:
		var err error
		resolvedPrompt = templating.ExpandPrompt(desc.Prompt, pctx.Field)
		content, err = generateProse(ctx, writer, resolvedPrompt, pctx)
		if err != nil {
			return nil, eris.Wrapf(err, "generate: section %s", desc.ID)
		}
		quality = qualityGenerated

	case model.StrategyDataDriven:
		content = dataDrivenContent(pctx)
		quality = qualityDataDriven

	case model.StrategyHybrid:
		resolvedPrompt = templating.ExpandPrompt(desc.Prompt, pctx.Field)
		generated, err := generateProse(ctx, writer, resolvedPrompt, pctx)
		if err != nil {
			return nil, eris.Wrapf(err, "generate: section %s", desc.ID)
		}
		content = generated + hybridSeparator + dataDrivenContent(pctx)
		quality = qualityHybrid

	case model.StrategyStatic:
		content = fmt.Sprintf("[%s - Content to be added]", desc.Title)
		quality = qualityStatic

	default:
		// Unrecognized strategies degrade to the static placeholder.
		content = fmt.Sprintf("[%s - Content to be added]", desc.Title)
		quality = qualityStatic
	}

	return &model.DocumentSection{
		ID:           uuid.NewString(),
		Title:        desc.Title,
		Order:        desc.Order,
		Content:      content,
		ContentType:  desc.ContentType,
		Required:     desc.Required,
		DescriptorID: desc.ID,
		Metadata: map[string]any{
			"mode":     string(mode),
			"strategy": string(desc.Strategy),
		},
		Strategy:    desc.Strategy,
		Bindings:    desc.Bindings,
		Rules:       desc.Rules,
		Prompt:      resolvedPrompt,
		Quality:     quality,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// generateProse calls the external prose capability with retry on
// transient failures.
func generateProse(ctx context.Context, writer prose.Client, prompt string, pctx model.ProjectContext) (string, error) {
	if writer == nil {
		return "", eris.New("generate: no prose client configured")
	}

	cfg := resilience.DefaultRetryConfig()
	cfg.OnRetry = resilience.RetryLogger("prose", "generate")
	return resilience.DoVal(ctx, cfg, func(ctx context.Context) (string, error) {
		return writer.GenerateProse(ctx, prompt, pctx)
	})
}

// dataDrivenContent formats the fixed context field subset every
// data-driven section carries.
func dataDrivenContent(pctx model.ProjectContext) string {
	var b strings.Builder
	b.WriteString("Project: " + pctx.Name + "\n")
	b.WriteString("Sector: " + pctx.Sector + "\n")
	b.WriteString("Deal Value: " + model.FormatMillions(pctx.DealValue) + "\n")
	b.WriteString("Stage: " + pctx.Stage)
	return b.String()
}
