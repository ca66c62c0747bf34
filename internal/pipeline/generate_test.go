package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/memo-cli/internal/model"
)

func testContext() model.ProjectContext {
	return model.ProjectContext{
		ID:        "proj-1",
		Name:      "Project Atlas",
		Sector:    "Technology",
		DealValue: 50_000_000,
		Stage:     "due-diligence",
	}
}

func TestGenerateSection_Static(t *testing.T) {
	desc := model.SectionDescriptor{
		ID:       "sec-appendix",
		Title:    "Appendix",
		Order:    9,
		Strategy: model.StrategyStatic,
	}

	sec, err := generateSection(context.Background(), desc, testContext(), model.ModeTraditional, nil)
	require.NoError(t, err)

	assert.Equal(t, "[Appendix - Content to be added]", sec.Content)
	assert.InDelta(t, qualityStatic, sec.Quality, 0.001)
	assert.Equal(t, "sec-appendix", sec.DescriptorID)
	assert.NotEmpty(t, sec.ID)
}

func TestGenerateSection_UnknownStrategyFallsBackToStatic(t *testing.T) {
	desc := model.SectionDescriptor{
		Title:    "Mystery",
		Strategy: model.GenerationStrategy("interpretive-dance"),
	}

	sec, err := generateSection(context.Background(), desc, testContext(), model.ModeTraditional, nil)
	require.NoError(t, err)
	assert.Equal(t, "[Mystery - Content to be added]", sec.Content)
	assert.InDelta(t, qualityStatic, sec.Quality, 0.001)
}

func TestGenerateSection_DataDriven(t *testing.T) {
	desc := model.SectionDescriptor{
		Title:    "Deal Snapshot",
		Strategy: model.StrategyDataDriven,
	}

	sec, err := generateSection(context.Background(), desc, testContext(), model.ModeAssisted, nil)
	require.NoError(t, err)

	assert.Contains(t, sec.Content, "Project: Project Atlas")
	assert.Contains(t, sec.Content, "Sector: Technology")
	assert.Contains(t, sec.Content, "Deal Value: $50M")
	assert.Contains(t, sec.Content, "Stage: due-diligence")
	assert.InDelta(t, qualityDataDriven, sec.Quality, 0.001)
	assert.Equal(t, "assisted", sec.Metadata["mode"])
}

func TestGenerateSection_GeneratedInterpolatesPrompt(t *testing.T) {
	writer := &fakeProse{text: "Prose output."}
	desc := model.SectionDescriptor{
		Title:    "Executive Summary",
		Strategy: model.StrategyGenerated,
		Prompt:   "Summarize {projectName} in {sector}. Deadline: {missingField}.",
	}

	sec, err := generateSection(context.Background(), desc, testContext(), model.ModeAutonomous, writer)
	require.NoError(t, err)

	assert.Equal(t, "Prose output.", sec.Content)
	assert.InDelta(t, qualityGenerated, sec.Quality, 0.001)
	require.Len(t, writer.prompts, 1)
	assert.Equal(t, "Summarize Project Atlas in Technology. Deadline: .", writer.prompts[0])
	assert.Equal(t, writer.prompts[0], sec.Prompt)
}

func TestGenerateSection_GeneratedFailureBubbles(t *testing.T) {
	writer := &fakeProse{err: eris.New("model unavailable")}
	desc := model.SectionDescriptor{
		ID:       "sec-fail",
		Strategy: model.StrategyGenerated,
		Prompt:   "whatever",
	}

	_, err := generateSection(context.Background(), desc, testContext(), model.ModeTraditional, writer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sec-fail")
}

func TestGenerateSection_Hybrid(t *testing.T) {
	writer := &fakeProse{text: "Narrative half."}
	desc := model.SectionDescriptor{
		Title:    "Overview",
		Strategy: model.StrategyHybrid,
		Prompt:   "Describe {projectName}",
	}

	sec, err := generateSection(context.Background(), desc, testContext(), model.ModeTraditional, writer)
	require.NoError(t, err)

	parts := strings.Split(sec.Content, hybridSeparator)
	require.Len(t, parts, 2)
	assert.Equal(t, "Narrative half.", parts[0])
	assert.Contains(t, parts[1], "Project: Project Atlas")
	assert.InDelta(t, qualityHybrid, sec.Quality, 0.001)
}

func TestGenerateSection_NoProseClient(t *testing.T) {
	desc := model.SectionDescriptor{Strategy: model.StrategyGenerated}

	_, err := generateSection(context.Background(), desc, testContext(), model.ModeTraditional, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no prose client")
}
