package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/memo-cli/internal/model"
)

func docWith(contents ...string) *model.WorkProduct {
	wp := &model.WorkProduct{Title: "Test Memo"}
	for i, c := range contents {
		wp.Sections = append(wp.Sections, model.DocumentSection{
			Title:   "Section",
			Order:   i,
			Content: c,
		})
	}
	return wp
}

func TestApplyReplacements_ProfessionalTone(t *testing.T) {
	in := "I think that the deal is strong. We won't overpay and it's a lot of upside."
	out := applyReplacements(in, professionalReplacements)

	assert.Contains(t, out, "Our analysis indicates that the deal is strong")
	assert.Contains(t, out, "will not overpay")
	assert.Contains(t, out, "it is substantial upside")
	assert.NotContains(t, out, "won't")
}

func TestApplyReplacements_LongestPhraseWins(t *testing.T) {
	out := applyReplacements("I think that margins hold.", professionalReplacements)
	assert.Equal(t, "Our analysis indicates that margins hold.", out)
}

func TestApplyReplacements_WordBoundaries(t *testing.T) {
	// "maybe" inside another word must not rewrite.
	out := applyReplacements("The maybes were tallied.", professionalReplacements)
	assert.Equal(t, "The maybes were tallied.", out)
}

func TestApplyReplacements_Concise(t *testing.T) {
	in := "In order to close, we met due to the fact that timing mattered."
	out := applyReplacements(in, conciseReplacements)
	assert.Equal(t, "to close, we met because timing mattered.", out)
}

func TestCanonicalizeTerms(t *testing.T) {
	vocab := vocabularyFor("Technology")
	out := canonicalizeTerms("Strong saas growth with rising arr and ebitda.", vocab)

	assert.Contains(t, out, "SaaS")
	assert.Contains(t, out, "ARR")
	assert.Contains(t, out, "EBITDA")
}

func TestVocabularyFor(t *testing.T) {
	assert.NotEmpty(t, vocabularyFor("Technology"))
	assert.NotEmpty(t, vocabularyFor("healthcare services"))
	assert.Empty(t, vocabularyFor("agriculture"))
	assert.Empty(t, vocabularyFor(""))
}

func TestReadabilityScore_Band(t *testing.T) {
	// 15 words per sentence sits inside the 12-22 band.
	sentence := strings.TrimSpace(strings.Repeat("word ", 15)) + "."
	wp := docWith(strings.Repeat(sentence+" ", 4))
	assert.InDelta(t, 1.0, readabilityScore(wp), 0.001)

	// Very long sentences score below the band.
	long := strings.TrimSpace(strings.Repeat("word ", 60)) + "."
	wp = docWith(long)
	assert.Less(t, readabilityScore(wp), 0.7)

	assert.Zero(t, readabilityScore(docWith("")))
}

func TestProfessionalismScore_PenalizesHedges(t *testing.T) {
	clean := docWith(strings.TrimSpace(strings.Repeat("revenue ", 100)))
	hedged := docWith("I think maybe we probably can't be sure. " +
		strings.TrimSpace(strings.Repeat("revenue ", 92)))

	assert.InDelta(t, 1.0, professionalismScore(clean), 0.001)
	assert.Less(t, professionalismScore(hedged), professionalismScore(clean))
}

func TestCompletenessScore(t *testing.T) {
	full := strings.Repeat("x", 150)
	thin := "short"

	wp := &model.WorkProduct{Sections: []model.DocumentSection{
		{Required: true, Content: full},
		{Required: true, Content: thin},
		{Required: false, Content: ""},
	}}
	assert.InDelta(t, 0.5, completenessScore(wp), 0.001)

	// Exactly 100 chars is not substantive.
	wp = &model.WorkProduct{Sections: []model.DocumentSection{
		{Required: true, Content: strings.Repeat("x", completenessMinChars)},
	}}
	assert.Zero(t, completenessScore(wp))

	// No required sections means nothing is missing.
	wp = &model.WorkProduct{Sections: []model.DocumentSection{{Content: thin}}}
	assert.InDelta(t, 1.0, completenessScore(wp), 0.001)
}

func TestOptimizeDocument_RewritesAndScores(t *testing.T) {
	wp := docWith("I think the saas business is attractive. In order to win we must move quickly and decisively here.")
	wp.Sections[0].Required = true

	metrics, _ := optimizeDocument(wp, OptimizeOptions{
		ProfessionalTone:  true,
		Concise:           true,
		InjectTerminology: true,
		Industry:          "Technology",
	})

	content := wp.Sections[0].Content
	assert.Contains(t, content, "Our analysis indicates")
	assert.Contains(t, content, "SaaS")
	assert.NotContains(t, content, "In order to")
	assert.Positive(t, metrics.WordsBefore)
	assert.Positive(t, metrics.WordsAfter)
	assert.LessOrEqual(t, metrics.WordsAfter, metrics.WordsBefore)
}

func TestOptimizationSuggestions(t *testing.T) {
	out := optimizationSuggestions(OptimizationMetrics{
		Readability:     0.5,
		Professionalism: 0.6,
		Completeness:    0.5,
	})
	assert.Len(t, out, 3)

	out = optimizationSuggestions(OptimizationMetrics{
		Readability:     1.0,
		Professionalism: 1.0,
		Completeness:    1.0,
	})
	assert.Empty(t, out)
}

func TestClampScore(t *testing.T) {
	assert.Zero(t, clampScore(-0.5))
	assert.Equal(t, 1.0, clampScore(1.5))
	assert.InDelta(t, 0.42, clampScore(0.42), 0.001)
}
