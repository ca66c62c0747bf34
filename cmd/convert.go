package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/model"
	"github.com/sells-group/memo-cli/internal/pipeline"
	"github.com/sells-group/memo-cli/pkg/render"
)

var (
	convertInput  string
	convertFormat string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a generated document to an output format",
	Long:  "Markdown and html are produced locally; pdf and docx require the rendering service (MEMO_RENDER_BASE_URL).",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		doc, err := loadDocument(convertInput)
		if err != nil {
			return err
		}

		var renderer render.Client
		if cfg.Render.BaseURL != "" {
			renderer = render.NewClient(render.Options{
				BaseURL: cfg.Render.BaseURL,
				Key:     cfg.Render.Key,
			})
		}

		p := pipeline.New(cfg, nil, nil, renderer, nil)
		result, err := p.Convert(ctx, doc, model.OutputFormat(convertFormat))
		if err != nil {
			return eris.Wrap(err, "convert")
		}

		switch result.Format {
		case model.FormatMarkdown, model.FormatHTML:
			if convertOutput == "" {
				_, err = os.Stdout.WriteString(result.Content)
				return err
			}
			if err := os.WriteFile(convertOutput, []byte(result.Content), 0o644); err != nil {
				return eris.Wrapf(err, "write %s", convertOutput)
			}
			zap.L().Info("document written",
				zap.String("path", convertOutput),
				zap.String("format", string(result.Format)),
			)
			return nil

		default:
			// Rendered formats come back as a content handle.
			zap.L().Info("document rendered",
				zap.String("format", string(result.Format)),
				zap.String("download_url", result.DownloadURL),
			)
			return writeJSON(result, convertOutput)
		}
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertInput, "input", "", "document JSON file (required)")
	convertCmd.Flags().StringVar(&convertFormat, "format", "markdown", "output format (markdown|html|pdf|docx)")
	convertCmd.Flags().StringVar(&convertOutput, "output", "", "write output to file instead of stdout")
	_ = convertCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(convertCmd)
}
