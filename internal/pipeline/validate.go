package pipeline

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/memo-cli/internal/model"
)

// Completeness rule word-count defaults when params omit them.
const (
	defaultMinWords = 0
	defaultMaxWords = 10000
)

// Readability floor: content at or under this length fails the check.
const readabilityMinChars = 50

// ValidationOutcome aggregates rule results for one section. A rule
// whose execution errors and a rule that evaluates false both count as
// failed; only the former forces error severity.
type ValidationOutcome struct {
	Passed   int
	Failed   int
	Warnings []model.Warning
}

// validateSection runs the declared rules against the section content.
func validateSection(sec *model.DocumentSection, rules []model.ValidationRule) ValidationOutcome {
	var out ValidationOutcome

	for _, rule := range rules {
		ok, err := runRule(sec, rule)
		if err != nil {
			out.Failed++
			out.Warnings = append(out.Warnings, model.Warning{
				SectionID:  sec.DescriptorID,
				Message:    "validation rule " + rule.Function + " failed to execute: " + err.Error(),
				Suggestion: "Fix the rule parameters on the template",
				Severity:   model.SeverityError,
			})
			continue
		}
		if !ok {
			out.Failed++
			out.Warnings = append(out.Warnings, model.Warning{
				SectionID:  sec.DescriptorID,
				Message:    rule.Description,
				Suggestion: ruleSuggestion(rule),
				Severity:   rule.Severity,
			})
			continue
		}
		out.Passed++
	}

	return out
}

// runRule evaluates one rule. The bool is the validation verdict; a
// non-nil error means the rule itself could not run.
func runRule(sec *model.DocumentSection, rule model.ValidationRule) (bool, error) {
	switch rule.Type {
	case "completeness":
		minWords, err := paramInt(rule.Params, "minWords", defaultMinWords)
		if err != nil {
			return false, err
		}
		maxWords, err := paramInt(rule.Params, "maxWords", defaultMaxWords)
		if err != nil {
			return false, err
		}
		wc := sec.WordCount()
		return wc >= minWords && wc <= maxWords, nil

	case "readability":
		return len(sec.Content) > readabilityMinChars, nil

	default:
		// Unknown rule types pass unconditionally. Fail-open matches the
		// historical behavior templates were authored against.
		return true, nil
	}
}

func ruleSuggestion(rule model.ValidationRule) string {
	switch rule.Type {
	case "completeness":
		return "Adjust the section length to the template's word range"
	case "readability":
		return "Expand the section with substantive content"
	default:
		return ""
	}
}

// paramInt reads an integer rule parameter, tolerating the float64 shape
// JSON decoding produces.
func paramInt(params map[string]any, key string, def int) (int, error) {
	v, ok := params[key]
	if !ok {
		return def, nil
	}
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	default:
		return 0, eris.Errorf("param %s: expected number, got %T", key, v)
	}
}
