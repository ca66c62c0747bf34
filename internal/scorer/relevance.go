// Package scorer ranks catalog templates against a project context and
// derives generation estimates per mode.
package scorer

import (
	"fmt"
	"strings"

	"github.com/sells-group/memo-cli/internal/model"
)

// Fixed additive weights for template relevance. The sum of all maximum
// contributions is 1.0; the final score is clamped anyway so historical
// data cannot push it out of range.
const (
	weightIndustry    = 0.3
	weightStage       = 0.2
	weightDealSize    = 0.2
	weightSuccessRate = 0.2
	weightPopularity  = 0.1

	// Deal sizes inside this band are the templates' sweet spot.
	dealSizeSweetSpotMin = 10_000_000.0
	dealSizeSweetSpotMax = 500_000_000.0

	// Usage thresholds: the bonus fires at popularityBonusMin recorded
	// uses; reasoning mentions popularity only past popularityMentionMin.
	popularityBonusMin   = 10
	popularityMentionMin = 15
)

// Score computes a bounded [0,1] relevance score for a template against a
// project context, with a human-readable justification. Deterministic and
// side-effect-free.
func Score(tmpl *model.Template, pctx model.ProjectContext) (float64, string) {
	score := 0.0
	var reasons []string

	if matchesAny(pctx.Sector, tmpl.IndustryFocus) {
		score += weightIndustry
		reasons = append(reasons, fmt.Sprintf("strong %s sector alignment", pctx.Sector))
	}

	if matchesAny(pctx.Stage, tmpl.DealStages) {
		score += weightStage
	}

	if pctx.DealValue >= dealSizeSweetSpotMin && pctx.DealValue <= dealSizeSweetSpotMax {
		score += weightDealSize
	}

	score += tmpl.SuccessRate * weightSuccessRate
	if tmpl.SuccessRate > 0.8 {
		reasons = append(reasons, fmt.Sprintf("proven track record (%.0f%% success rate)", tmpl.SuccessRate*100))
	}

	if tmpl.UsageCount >= popularityBonusMin {
		score += weightPopularity
	}
	if tmpl.UsageCount > popularityMentionMin {
		reasons = append(reasons, "widely used across the team")
	}

	if score > 1.0 {
		score = 1.0
	}

	switch {
	case score > 0.8:
		reasons = append(reasons, "excellent fit for this deal profile")
	case score > 0.6:
		reasons = append(reasons, "good fit with minor customization")
	}

	if len(reasons) == 0 {
		return score, "baseline structural match"
	}
	return score, strings.Join(reasons, "; ")
}

// matchesAny reports whether value matches any entry, case-insensitively
// and tolerant of substring containment in either direction (so
// "Technology" matches a template focused on "technology" or "tech").
func matchesAny(value string, entries []string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return false
	}
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if v == e || strings.Contains(v, e) || strings.Contains(e, v) {
			return true
		}
	}
	return false
}
