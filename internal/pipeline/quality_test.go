package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/memo-cli/internal/model"
)

func TestAnalyzeQuality_NilDocument(t *testing.T) {
	_, err := analyzeQuality(nil)
	require.Error(t, err)
}

func TestAnalyzeQuality_EmptyDocument(t *testing.T) {
	report, err := analyzeQuality(&model.WorkProduct{})
	require.NoError(t, err)

	assert.Zero(t, report.OverallScore)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, model.SeverityError, report.Warnings[0].Severity)
}

func TestAnalyzeQuality_ScoresAndWarnings(t *testing.T) {
	substantial := strings.TrimSpace(strings.Repeat("The company shows durable growth. ", 12))
	wp := &model.WorkProduct{
		Sections: []model.DocumentSection{
			{ID: "s1", Title: "Summary", Required: true, Quality: 0.88, Content: substantial},
			{ID: "s2", Title: "Risks", Required: true, Quality: 0.85, Content: "Thin coverage here."},
			{ID: "s3", Title: "Appendix", Content: ""},
		},
	}

	report, err := analyzeQuality(wp)
	require.NoError(t, err)

	require.Len(t, report.SectionScores, 3)
	assert.InDelta(t, 0.88, report.SectionScores[0].Score, 0.001)
	assert.InDelta(t, 0.65, report.SectionScores[1].Score, 0.001, "thin sections take a 0.2 penalty")
	assert.Zero(t, report.SectionScores[2].Score, "empty sections score zero")
	assert.InDelta(t, (0.88+0.65+0)/3, report.OverallScore, 0.001)

	var empty, thin bool
	for _, w := range report.Warnings {
		switch w.SectionID {
		case "s3":
			empty = w.Severity == model.SeverityError
		case "s2":
			thin = w.Severity == model.SeverityWarning
		}
	}
	assert.True(t, empty, "empty section reported at error severity")
	assert.True(t, thin, "short required section reported at warning severity")
}

func TestSectionQuality_DefaultsWhenUnscored(t *testing.T) {
	sec := model.DocumentSection{
		Content: strings.TrimSpace(strings.Repeat("word ", 40)),
	}
	assert.InDelta(t, qualityStatic, sectionQuality(sec), 0.001)
}

func TestAnalyzeQuality_SuggestionsFromMetrics(t *testing.T) {
	// A single thin required section trips the completeness suggestion.
	wp := &model.WorkProduct{
		Sections: []model.DocumentSection{
			{ID: "s1", Title: "Summary", Required: true, Quality: 0.9,
				Content: strings.TrimSpace(strings.Repeat("steady growth continues apace here now ", 10))},
			{ID: "s2", Title: "Risks", Required: true, Quality: 0.9, Content: "Too short."},
		},
	}

	report, err := analyzeQuality(wp)
	require.NoError(t, err)
	assert.Contains(t, strings.Join(report.Suggestions, "; "), "Expand required sections")
}
