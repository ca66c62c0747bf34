package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/memo-cli/internal/model"
	"github.com/sells-group/memo-cli/internal/pipeline"
)

var analyzeInput string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score the quality of a generated document",
	Long:  "Reads a document JSON file and prints a quality report: per-section scores, overall score, and improvement suggestions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(analyzeInput)
		if err != nil {
			return err
		}

		// Quality analysis is store- and client-free.
		p := pipeline.New(cfg, nil, nil, nil, nil)
		report, err := p.AnalyzeQuality(doc)
		if err != nil {
			return eris.Wrap(err, "analyze")
		}

		return writeJSON(report, "")
	},
}

// loadDocument reads a WorkProduct from a JSON file. Files holding a
// full generation result are accepted too; the document field is used.
func loadDocument(path string) (*model.WorkProduct, error) {
	if path == "" {
		return nil, eris.New("document file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}

	var wrapper struct {
		Document *model.WorkProduct `json:"document"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Document != nil {
		return wrapper.Document, nil
	}

	var doc model.WorkProduct
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "parse document %s", path)
	}
	return &doc, nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "document JSON file (required)")
	_ = analyzeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(analyzeCmd)
}
