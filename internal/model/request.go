package model

// OutputFormat selects a downstream encoding for a finished document.
type OutputFormat string

const (
	FormatPDF      OutputFormat = "pdf"
	FormatDocx     OutputFormat = "docx"
	FormatHTML     OutputFormat = "html"
	FormatMarkdown OutputFormat = "markdown"
)

// GenerationOptions carries the boolean switches of a generation request.
type GenerationOptions struct {
	IncludeDataBindings bool `json:"include_data_bindings"`
	GenerateAllSections bool `json:"generate_all_sections"`
	ValidateContent     bool `json:"validate_content"`
	OptimizeContent     bool `json:"optimize_content"`
}

// GenerationRequest is the inbound request for the document pipeline.
// TemplateID is optional; when empty the selector picks the best match.
type GenerationRequest struct {
	TemplateID   string            `json:"template_id,omitempty"`
	WorkspaceID  string            `json:"workspace_id"`
	Context      ProjectContext    `json:"context"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
	Mode         GenerationMode    `json:"mode"`
	Options      GenerationOptions `json:"options"`
}

// Warning is a structured, non-fatal problem surfaced by the pipeline.
type Warning struct {
	SectionID  string   `json:"section_id,omitempty"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Severity   Severity `json:"severity"`
}

// IntegrationResult records the outcome of one external data source fetch.
type IntegrationResult struct {
	SourceType     SourceType `json:"source_type"`
	SourceID       string     `json:"source_id"`
	DataFetched    bool       `json:"data_fetched"`
	RecordsApplied int        `json:"records_applied"`
	Error          string     `json:"error,omitempty"`
}

// GenerationMetrics aggregates counters for a generation run. A successful
// top-level result does not imply zero internal failures: callers must
// inspect ValidationsFailed and the warnings list.
type GenerationMetrics struct {
	TotalSections     int     `json:"total_sections"`
	GeneratedSections int     `json:"generated_sections"`
	AutomationLevel   float64 `json:"automation_level"`
	QualityScore      float64 `json:"quality_score"`
	ElapsedMs         int64   `json:"elapsed_ms"`
	BindingsApplied   int     `json:"bindings_applied"`
	ValidationsPassed int     `json:"validations_passed"`
	ValidationsFailed int     `json:"validations_failed"`
	OptimizationRun   bool    `json:"optimization_run"`
}

// GenerationResult is the outbound result of the document pipeline.
type GenerationResult struct {
	Document     *WorkProduct        `json:"document"`
	Metrics      GenerationMetrics   `json:"metrics"`
	Suggestions  []string            `json:"suggestions,omitempty"`
	Warnings     []Warning           `json:"warnings,omitempty"`
	Integrations []IntegrationResult `json:"integrations,omitempty"`
}

// SectionScore is one section's quality score within a quality report.
type SectionScore struct {
	SectionID string  `json:"section_id"`
	Title     string  `json:"title"`
	Score     float64 `json:"score"`
}

// QualityReport is the result of the standalone quality analysis operation.
type QualityReport struct {
	OverallScore  float64        `json:"overall_score"`
	SectionScores []SectionScore `json:"section_scores"`
	Suggestions   []string       `json:"suggestions,omitempty"`
	Warnings      []Warning      `json:"warnings,omitempty"`
}

// ConversionResult is the outcome of converting a work product to an
// output encoding. Content holds the serialized document for text formats
// or an opaque handle for externally rendered formats.
type ConversionResult struct {
	Format      OutputFormat   `json:"format"`
	Content     string         `json:"content"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	DownloadURL string         `json:"download_url,omitempty"`
}
