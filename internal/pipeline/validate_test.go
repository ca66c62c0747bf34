package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/memo-cli/internal/model"
)

func sectionWithWords(n int) *model.DocumentSection {
	return &model.DocumentSection{
		DescriptorID: "sec-test",
		Content:      strings.TrimSpace(strings.Repeat("word ", n)),
	}
}

func TestValidateSection_CompletenessBoundary(t *testing.T) {
	rule := model.ValidationRule{
		Type:        "completeness",
		Description: "section must reach fifty words",
		Severity:    model.SeverityWarning,
		Params:      map[string]any{"minWords": 50},
	}

	out := validateSection(sectionWithWords(49), []model.ValidationRule{rule})
	assert.Equal(t, 0, out.Passed)
	assert.Equal(t, 1, out.Failed)
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, model.SeverityWarning, out.Warnings[0].Severity)

	out = validateSection(sectionWithWords(50), []model.ValidationRule{rule})
	assert.Equal(t, 1, out.Passed)
	assert.Equal(t, 0, out.Failed)
	assert.Empty(t, out.Warnings)
}

func TestValidateSection_CompletenessMaxWords(t *testing.T) {
	rule := model.ValidationRule{
		Type:   "completeness",
		Params: map[string]any{"maxWords": 10},
	}

	out := validateSection(sectionWithWords(11), []model.ValidationRule{rule})
	assert.Equal(t, 1, out.Failed)

	out = validateSection(sectionWithWords(10), []model.ValidationRule{rule})
	assert.Equal(t, 1, out.Passed)
}

func TestValidateSection_CompletenessDefaults(t *testing.T) {
	// No params: [0, 10000] accepts everything reasonable.
	rule := model.ValidationRule{Type: "completeness"}

	out := validateSection(sectionWithWords(0), []model.ValidationRule{rule})
	assert.Equal(t, 1, out.Passed)
}

func TestValidateSection_Readability(t *testing.T) {
	rule := model.ValidationRule{
		Type:        "readability",
		Description: "content too short to assess",
		Severity:    model.SeverityWarning,
	}

	short := &model.DocumentSection{Content: strings.Repeat("x", 50)}
	out := validateSection(short, []model.ValidationRule{rule})
	assert.Equal(t, 1, out.Failed, "exactly 50 chars fails the strict greater-than check")

	long := &model.DocumentSection{Content: strings.Repeat("x", 51)}
	out = validateSection(long, []model.ValidationRule{rule})
	assert.Equal(t, 1, out.Passed)
}

func TestValidateSection_UnknownTypePasses(t *testing.T) {
	rule := model.ValidationRule{Type: "accuracy", Severity: model.SeverityError}

	out := validateSection(sectionWithWords(5), []model.ValidationRule{rule})
	assert.Equal(t, 1, out.Passed)
	assert.Equal(t, 0, out.Failed)
}

func TestValidateSection_RuleExecutionErrorIsErrorSeverity(t *testing.T) {
	// minWords of the wrong type makes the rule itself fail to run.
	rule := model.ValidationRule{
		Type:     "completeness",
		Severity: model.SeverityWarning,
		Params:   map[string]any{"minWords": "fifty"},
	}

	out := validateSection(sectionWithWords(100), []model.ValidationRule{rule})
	assert.Equal(t, 1, out.Failed)
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, model.SeverityError, out.Warnings[0].Severity,
		"execution failure escalates to error severity regardless of the rule's own severity")
	assert.Contains(t, out.Warnings[0].Message, "failed to execute")
}

func TestValidateSection_MixedRules(t *testing.T) {
	rules := []model.ValidationRule{
		{Type: "completeness", Params: map[string]any{"minWords": 10}},
		{Type: "readability", Severity: model.SeverityWarning},
		{Type: "accuracy"},
	}

	out := validateSection(sectionWithWords(60), rules)
	assert.Equal(t, 3, out.Passed)
	assert.Equal(t, 0, out.Failed)
}

func TestParamInt_JSONFloatShape(t *testing.T) {
	v, err := paramInt(map[string]any{"minWords": float64(50)}, "minWords", 0)
	require.NoError(t, err)
	assert.Equal(t, 50, v)
}
