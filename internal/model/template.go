package model

// GenerationStrategy selects how a section's content is produced.
type GenerationStrategy string

const (
	StrategyGenerated  GenerationStrategy = "generated"
	StrategyDataDriven GenerationStrategy = "data-driven"
	StrategyHybrid     GenerationStrategy = "hybrid"
	StrategyStatic     GenerationStrategy = "static"
)

// ParseStrategy maps a strategy string to a GenerationStrategy. Unknown
// values fall back to the static placeholder strategy.
func ParseStrategy(s string) GenerationStrategy {
	switch GenerationStrategy(s) {
	case StrategyGenerated:
		return StrategyGenerated
	case StrategyDataDriven:
		return StrategyDataDriven
	case StrategyHybrid:
		return StrategyHybrid
	default:
		return StrategyStatic
	}
}

// SourceType identifies an external data source kind for bindings.
type SourceType string

const (
	SourceDealMetrics    SourceType = "deal-metrics"
	SourceFinancialModel SourceType = "financial-model"
	SourceMarketData     SourceType = "market-data"
)

// ContentType tags the structural kind of a section's content.
type ContentType string

const (
	ContentText      ContentType = "text"
	ContentFinancial ContentType = "financial"
	ContentTable     ContentType = "table"
	ContentList      ContentType = "list"
)

// RefreshPolicy describes how binding data should be refreshed.
// Informational only at this layer.
type RefreshPolicy string

const (
	RefreshOnDemand RefreshPolicy = "on-demand"
	RefreshRealTime RefreshPolicy = "real-time"
	RefreshCached   RefreshPolicy = "cached"
)

// Severity grades validation warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Template is a reusable document blueprint: an ordered set of section
// descriptors plus matching metadata and usage statistics.
// Templates are read-only at generation time.
type Template struct {
	ID            string              `json:"id" yaml:"id"`
	Name          string              `json:"name" yaml:"name"`
	Description   string              `json:"description" yaml:"description"`
	Category      string              `json:"category" yaml:"category"`
	IndustryFocus []string            `json:"industry_focus" yaml:"industry_focus"`
	DealStages    []string            `json:"deal_stages" yaml:"deal_stages"`
	DocumentType  DocumentType        `json:"document_type" yaml:"document_type"`
	Sections      []SectionDescriptor `json:"sections" yaml:"sections"`
	DynamicFields []DynamicField      `json:"dynamic_fields,omitempty" yaml:"dynamic_fields"`
	UsageCount    int                 `json:"usage_count" yaml:"usage_count"`
	SuccessRate   float64             `json:"success_rate" yaml:"success_rate"`
	AvgQuality    float64             `json:"avg_quality" yaml:"avg_quality"`
	Tags          []string            `json:"tags,omitempty" yaml:"tags"`
}

// DynamicField declares a typed template input, optionally required and
// restricted to an allowed value set.
type DynamicField struct {
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Required bool     `json:"required" yaml:"required"`
	Allowed  []string `json:"allowed,omitempty" yaml:"allowed"`
}

// SectionDescriptor is the blueprint for one document section.
type SectionDescriptor struct {
	ID           string             `json:"id" yaml:"id"`
	Title        string             `json:"title" yaml:"title"`
	Order        int                `json:"order" yaml:"order"`
	Required     bool               `json:"required" yaml:"required"`
	ContentType  ContentType        `json:"content_type" yaml:"content_type"`
	Strategy     GenerationStrategy `json:"strategy" yaml:"strategy"`
	Prompt       string             `json:"prompt,omitempty" yaml:"prompt"`
	Bindings     []DataBinding      `json:"bindings,omitempty" yaml:"bindings"`
	Rules        []ValidationRule   `json:"rules,omitempty" yaml:"rules"`
	EstWords     int                `json:"est_words" yaml:"est_words"`
	Dependencies []string           `json:"dependencies,omitempty" yaml:"dependencies"`
}

// DataBinding declares a link from a section to an external data source.
type DataBinding struct {
	SourceType SourceType           `json:"source_type" yaml:"source_type"`
	SourceID   string               `json:"source_id" yaml:"source_id"`
	FieldMap   map[string]string    `json:"field_map" yaml:"field_map"`
	Transforms []TransformationRule `json:"transforms,omitempty" yaml:"transforms"`
	Refresh    RefreshPolicy        `json:"refresh,omitempty" yaml:"refresh"`
}

// TransformationRule is a format/compute operation applied to a source value
// before substitution.
type TransformationRule struct {
	Field     string `json:"field" yaml:"field"`
	Operation string `json:"operation" yaml:"operation"` // "currency", "percent", "millions"
}

// ValidationRule is a declarative check run against generated section content.
type ValidationRule struct {
	Type        string         `json:"type" yaml:"type"` // "completeness", "accuracy", "readability"
	Description string         `json:"description" yaml:"description"`
	Severity    Severity       `json:"severity" yaml:"severity"`
	Function    string         `json:"function" yaml:"function"`
	Params      map[string]any `json:"params,omitempty" yaml:"params"`
}

// Estimate bundles the projected effort for generating from a template
// under a given mode.
type Estimate struct {
	TimeMinutes     float64 `json:"time_minutes"`
	AutomationLevel float64 `json:"automation_level"`
	ExpectedQuality float64 `json:"expected_quality"`
}

// TemplateMatchResult is a scored template candidate. Ephemeral: produced
// per request, never persisted.
type TemplateMatchResult struct {
	Template    *Template `json:"template"`
	Score       float64   `json:"score"`
	Reasoning   string    `json:"reasoning"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Estimate    Estimate  `json:"estimate"`
}
