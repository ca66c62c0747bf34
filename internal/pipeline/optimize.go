package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/memo-cli/internal/model"
)

// OptimizeOptions selects which rewrites run. The rewrites compose and
// are order-dependent: professional tone first, then conciseness, then
// terminology injection.
type OptimizeOptions struct {
	ProfessionalTone  bool
	Concise           bool
	InjectTerminology bool
	Industry          string
}

// OptimizationMetrics aggregates the optimizer's whole-document scores.
// Completeness is the fraction of required sections with substantive
// content; readability and professionalism are computed from sentence
// length and hedge density on the final text.
type OptimizationMetrics struct {
	WordsBefore     int     `json:"words_before"`
	WordsAfter      int     `json:"words_after"`
	Readability     float64 `json:"readability"`
	Professionalism float64 `json:"professionalism"`
	Completeness    float64 `json:"completeness"`
}

// Replacement tables are ordered: longer phrases first so "I think that"
// never degrades into a partial rewrite of "I think".
var professionalReplacements = [][2]string{
	{"I think that", "Our analysis indicates that"},
	{"I think", "Our analysis indicates"},
	{"I believe", "Our assessment is"},
	{"won't", "will not"},
	{"can't", "cannot"},
	{"don't", "do not"},
	{"isn't", "is not"},
	{"doesn't", "does not"},
	{"we're", "we are"},
	{"it's", "it is"},
	{"a lot of", "substantial"},
	{"maybe", "potentially"},
}

var conciseReplacements = [][2]string{
	{"due to the fact that", "because"},
	{"at this point in time", "currently"},
	{"in the event that", "if"},
	{"a large number of", "many"},
	{"with regard to", "regarding"},
	{"in order to", "to"},
	{"for the purpose of", "to"},
}

var titleCaser = cases.Title(language.AmericanEnglish)

// industryVocabulary maps a sector keyword to the canonical spellings its
// documents should use. Matching is case-insensitive; the canonical form
// replaces whatever casing the draft used.
var industryVocabulary = map[string][]string{
	"technology": {
		"SaaS", "ARR", "EBITDA", "TAM",
		titleCaser.String("net revenue retention"),
		titleCaser.String("total addressable market"),
	},
	"healthcare": {
		"EBITDA", "HIPAA", "payor",
		titleCaser.String("value-based care"),
	},
	"industrials": {
		"EBITDA", "OEM", "capex",
		titleCaser.String("order backlog"),
	},
	"financial services": {
		"AUM", "EBITDA", "NIM",
		titleCaser.String("assets under management"),
	},
}

// Hedge phrases counted against the professionalism score.
var hedgePhrases = []string{
	"i think", "i believe", "maybe", "sort of", "kind of", "probably",
}

// Sections under this content length do not count as complete.
const completenessMinChars = 100

// optimizeDocument rewrites sections in place and returns whole-document
// metrics plus improvement suggestions.
func optimizeDocument(wp *model.WorkProduct, opts OptimizeOptions) (OptimizationMetrics, []string) {
	metrics := OptimizationMetrics{WordsBefore: wp.WordCount()}

	vocab := vocabularyFor(opts.Industry)
	for i := range wp.Sections {
		content := wp.Sections[i].Content
		if opts.ProfessionalTone {
			content = applyReplacements(content, professionalReplacements)
		}
		if opts.Concise {
			content = applyReplacements(content, conciseReplacements)
		}
		if opts.InjectTerminology && len(vocab) > 0 {
			content = canonicalizeTerms(content, vocab)
		}
		wp.Sections[i].Content = content
	}

	metrics.WordsAfter = wp.WordCount()
	metrics.Readability = readabilityScore(wp)
	metrics.Professionalism = professionalismScore(wp)
	metrics.Completeness = completenessScore(wp)

	return metrics, optimizationSuggestions(metrics)
}

// applyReplacements runs an ordered, case-insensitive phrase table.
func applyReplacements(content string, table [][2]string) string {
	for _, pair := range table {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(pair[0]) + `\b`)
		content = re.ReplaceAllString(content, pair[1])
	}
	return content
}

// canonicalizeTerms rewrites known domain terms to their canonical
// casing wherever the draft spelled them differently.
func canonicalizeTerms(content string, vocab []string) string {
	for _, term := range vocab {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		content = re.ReplaceAllString(content, term)
	}
	return content
}

// vocabularyFor finds the vocabulary list whose key appears in the
// industry name.
func vocabularyFor(industry string) []string {
	needle := strings.ToLower(strings.TrimSpace(industry))
	if needle == "" {
		return nil
	}
	for key, terms := range industryVocabulary {
		if strings.Contains(needle, key) || strings.Contains(key, needle) {
			return terms
		}
	}
	return nil
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// readabilityScore bands the average sentence length: 12-22 words reads
// well; the score decays linearly outside the band.
func readabilityScore(wp *model.WorkProduct) float64 {
	totalWords := 0
	totalSentences := 0
	for _, sec := range wp.Sections {
		for _, sentence := range sentenceSplitRe.Split(sec.Content, -1) {
			words := len(strings.Fields(sentence))
			if words == 0 {
				continue
			}
			totalWords += words
			totalSentences++
		}
	}
	if totalSentences == 0 {
		return 0
	}

	avg := float64(totalWords) / float64(totalSentences)
	switch {
	case avg >= 12 && avg <= 22:
		return 1.0
	case avg < 12:
		return clampScore(0.5 + avg/24)
	default:
		return clampScore(1.0 - (avg-22)/40)
	}
}

// professionalismScore penalizes hedge phrases and apostrophe
// contractions per hundred words.
func professionalismScore(wp *model.WorkProduct) float64 {
	words := wp.WordCount()
	if words == 0 {
		return 0
	}

	hits := 0
	for _, sec := range wp.Sections {
		lower := strings.ToLower(sec.Content)
		for _, hedge := range hedgePhrases {
			hits += strings.Count(lower, hedge)
		}
		hits += strings.Count(lower, "'t ")
		hits += strings.Count(lower, "'re ")
	}

	density := float64(hits) / float64(words) * 100
	return clampScore(1.0 - density*0.05)
}

// completenessScore is the fraction of required sections carrying
// substantive content.
func completenessScore(wp *model.WorkProduct) float64 {
	required := 0
	complete := 0
	for _, sec := range wp.Sections {
		if !sec.Required {
			continue
		}
		required++
		if len(sec.Content) > completenessMinChars {
			complete++
		}
	}
	if required == 0 {
		return 1.0
	}
	return float64(complete) / float64(required)
}

func optimizationSuggestions(m OptimizationMetrics) []string {
	var out []string
	if m.Readability < 0.7 {
		out = append(out, "Break up long sentences; several sections read above the target sentence length")
	}
	if m.Professionalism < 0.8 {
		out = append(out, "Remove remaining hedge language and contractions")
	}
	if m.Completeness < 1.0 {
		out = append(out, "Expand required sections that are still below substantive length")
	}
	return out
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
