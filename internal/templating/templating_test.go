package templating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func staticResolver(m map[string]string) Resolver {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func TestExpand_LeavesUnresolved(t *testing.T) {
	out := Expand("Revenue: {revenue}, EBITDA: {ebitda}",
		staticResolver(map[string]string{"revenue": "1000000"}))
	assert.Equal(t, "Revenue: 1000000, EBITDA: {ebitda}", out)
}

func TestExpandPrompt_MissingBecomesEmpty(t *testing.T) {
	out := ExpandPrompt("Write about {projectName} in {sector}.",
		staticResolver(map[string]string{"projectName": "Atlas"}))
	assert.Equal(t, "Write about Atlas in .", out)
}

func TestExpand_EscapesBracesInValues(t *testing.T) {
	out := Expand("Note: {note}",
		staticResolver(map[string]string{"note": "see {appendix}"}))
	// Substituted braces are neutralized so values cannot inject placeholders.
	assert.Equal(t, "Note: see (appendix)", out)
}

func TestSubstitute_AllOccurrences(t *testing.T) {
	out := Substitute("{x} and {x} and {y}", "x", "1")
	assert.Equal(t, "1 and 1 and {y}", out)
}

func TestPlaceholders_DistinctInOrder(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Placeholders("{a} {b} {a}"))
	assert.Nil(t, Placeholders("no tokens here"))
}
