package model

import "time"

// DocumentType classifies the kind of document a template produces.
type DocumentType string

const (
	DocTypeInvestmentMemo  DocumentType = "investment-memo"
	DocTypeDiligenceReport DocumentType = "diligence-report"
	DocTypeMarketAnalysis  DocumentType = "market-analysis"
	DocTypeCommitteeUpdate DocumentType = "committee-update"
)

// GenerationMode controls the automation level of a generation run.
// It scales time/automation/quality estimates; it does not change the
// generation algorithm itself.
type GenerationMode string

const (
	ModeTraditional GenerationMode = "traditional"
	ModeAssisted    GenerationMode = "assisted"
	ModeAutonomous  GenerationMode = "autonomous"
)

// ParseMode maps a mode string to a GenerationMode, defaulting to traditional
// for unrecognized values.
func ParseMode(s string) GenerationMode {
	switch GenerationMode(s) {
	case ModeAssisted:
		return ModeAssisted
	case ModeAutonomous:
		return ModeAutonomous
	default:
		return ModeTraditional
	}
}

// ProjectContext is an immutable snapshot of the deal being documented.
// It is created by the caller per request and never mutated by the pipeline.
type ProjectContext struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	DocumentType DocumentType   `json:"document_type"`
	DealValue    float64        `json:"deal_value"`
	Sector       string         `json:"sector"`
	Geography    string         `json:"geography"`
	Stage        string         `json:"stage"`
	RiskProfile  string         `json:"risk_profile"`
	TeamSize     int            `json:"team_size"`
	Completeness float64        `json:"completeness"`
	Deadline     *time.Time     `json:"deadline,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Field returns the context value for a named prompt placeholder.
// Unknown names resolve to the empty string so prompts degrade gracefully.
func (p ProjectContext) Field(name string) (string, bool) {
	switch name {
	case "id", "projectId":
		return p.ID, true
	case "name", "projectName":
		return p.Name, true
	case "sector", "industry":
		return p.Sector, true
	case "geography", "region":
		return p.Geography, true
	case "stage", "dealStage":
		return p.Stage, true
	case "riskProfile", "risk":
		return p.RiskProfile, true
	case "dealValue":
		return FormatMillions(p.DealValue), true
	}
	if p.Metadata != nil {
		if v, ok := p.Metadata[name]; ok {
			return Stringify(v), true
		}
	}
	return "", false
}
