package pipeline

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/memo-cli/internal/model"
)

// Sections under this word count get a thin-content quality penalty.
const thinSectionWords = 30

// analyzeQuality scores an existing document without regenerating it.
// Section scores start from the generation-time estimate and are
// adjusted by content signal.
func analyzeQuality(wp *model.WorkProduct) (*model.QualityReport, error) {
	if wp == nil {
		return nil, eris.New("quality: nil document")
	}

	report := &model.QualityReport{}
	if len(wp.Sections) == 0 {
		report.Warnings = append(report.Warnings, model.Warning{
			Message:  "document has no sections",
			Severity: model.SeverityError,
		})
		return report, nil
	}

	total := 0.0
	for _, sec := range wp.Sections {
		score := sectionQuality(sec)
		total += score
		report.SectionScores = append(report.SectionScores, model.SectionScore{
			SectionID: sec.ID,
			Title:     sec.Title,
			Score:     score,
		})

		if sec.WordCount() == 0 {
			report.Warnings = append(report.Warnings, model.Warning{
				SectionID:  sec.ID,
				Message:    "section " + sec.Title + " is empty",
				Suggestion: "Regenerate the section or remove it from the document",
				Severity:   model.SeverityError,
			})
		} else if sec.Required && sec.WordCount() < thinSectionWords {
			report.Warnings = append(report.Warnings, model.Warning{
				SectionID:  sec.ID,
				Message:    "required section " + sec.Title + " is unusually short",
				Suggestion: "Expand the section with supporting detail",
				Severity:   model.SeverityWarning,
			})
		}
	}
	report.OverallScore = total / float64(len(wp.Sections))

	m := OptimizationMetrics{
		Readability:     readabilityScore(wp),
		Professionalism: professionalismScore(wp),
		Completeness:    completenessScore(wp),
	}
	report.Suggestions = optimizationSuggestions(m)

	return report, nil
}

// sectionQuality adjusts the generation-time estimate by content signal.
func sectionQuality(sec model.DocumentSection) float64 {
	score := sec.Quality
	if score == 0 {
		score = qualityStatic
	}

	wc := sec.WordCount()
	switch {
	case wc == 0:
		return 0
	case wc < thinSectionWords:
		score -= 0.2
	}

	return clampScore(score)
}
