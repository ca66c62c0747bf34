package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/model"
)

var (
	genProject     string
	genDealID      string
	genDocType     string
	genTemplateID  string
	genWorkspace   string
	genMode        string
	genSector      string
	genGeography   string
	genStage       string
	genRiskProfile string
	genDealValue   float64
	genAllSections bool
	genBind        bool
	genValidate    bool
	genOptimize    bool
	genOutput      string
	genFields      map[string]string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a deal document",
	Long:  "Selects a template (or uses --template), generates every section, and writes the result JSON to stdout or --output.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx, "generate")
		if err != nil {
			return err
		}
		defer env.Close()

		req := model.GenerationRequest{
			TemplateID:   genTemplateID,
			WorkspaceID:  genWorkspace,
			CustomFields: genFields,
			Mode:         model.ParseMode(genMode),
			Context: model.ProjectContext{
				ID:           genDealID,
				Name:         genProject,
				DocumentType: model.DocumentType(genDocType),
				Sector:       genSector,
				Geography:    genGeography,
				Stage:        genStage,
				RiskProfile:  genRiskProfile,
				DealValue:    genDealValue,
			},
			Options: model.GenerationOptions{
				IncludeDataBindings: genBind,
				GenerateAllSections: genAllSections,
				ValidateContent:     genValidate,
				OptimizeContent:     genOptimize,
			},
		}

		result, err := env.Pipeline.Transform(ctx, req)
		if err != nil {
			return eris.Wrap(err, "generate")
		}

		zap.L().Info("generation complete",
			zap.String("document_id", result.Document.ID),
			zap.Int("sections", result.Metrics.GeneratedSections),
			zap.Int("total_sections", result.Metrics.TotalSections),
			zap.Float64("quality", result.Metrics.QualityScore),
			zap.Int("warnings", len(result.Warnings)),
		)

		return writeJSON(result, genOutput)
	},
}

// writeJSON encodes v to the given path, or stdout when path is empty.
func writeJSON(v any, path string) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrapf(err, "create %s", path)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	generateCmd.Flags().StringVar(&genProject, "project", "", "project name (required)")
	generateCmd.Flags().StringVar(&genDealID, "deal-id", "", "CRM opportunity ID for data binding and write-back")
	generateCmd.Flags().StringVar(&genDocType, "type", "investment-memo", "document type (investment-memo|diligence-report|market-analysis|committee-update)")
	generateCmd.Flags().StringVar(&genTemplateID, "template", "", "explicit template ID (skips selection)")
	generateCmd.Flags().StringVar(&genWorkspace, "workspace", "default", "workspace ID stamped on the document")
	generateCmd.Flags().StringVar(&genMode, "mode", "assisted", "generation mode (traditional|assisted|autonomous)")
	generateCmd.Flags().StringVar(&genSector, "sector", "", "deal sector")
	generateCmd.Flags().StringVar(&genGeography, "geography", "", "deal geography")
	generateCmd.Flags().StringVar(&genStage, "stage", "", "deal stage")
	generateCmd.Flags().StringVar(&genRiskProfile, "risk", "medium", "risk profile")
	generateCmd.Flags().Float64Var(&genDealValue, "deal-value", 0, "deal value in dollars")
	generateCmd.Flags().BoolVar(&genAllSections, "all-sections", false, "generate optional sections too")
	generateCmd.Flags().BoolVar(&genBind, "bind", false, "fetch and bind external data sources")
	generateCmd.Flags().BoolVar(&genValidate, "validate", false, "run section validation rules")
	generateCmd.Flags().BoolVar(&genOptimize, "optimize", false, "run content optimization after generation")
	generateCmd.Flags().StringVar(&genOutput, "output", "", "write result JSON to file instead of stdout")
	generateCmd.Flags().StringToStringVar(&genFields, "field", nil, "custom field overrides for prompt placeholders (key=value, repeatable)")
	_ = generateCmd.MarkFlagRequired("project")
	rootCmd.AddCommand(generateCmd)
}
