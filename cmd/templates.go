package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/catalog"
	"github.com/sells-group/memo-cli/internal/model"
)

var (
	tmplListType   string
	tmplDeriveName string
	tmplDeriveFrom string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect and manage the template catalog",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates for a document type",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate catalog store")
		}
		cat := catalog.NewService(st)

		docTypes := []model.DocumentType{
			model.DocTypeInvestmentMemo,
			model.DocTypeDiligenceReport,
			model.DocTypeMarketAnalysis,
			model.DocTypeCommitteeUpdate,
		}
		if tmplListType != "" {
			docTypes = []model.DocumentType{model.DocumentType(tmplListType)}
		}

		var all []model.Template
		for _, dt := range docTypes {
			tmpls, err := cat.ListByType(ctx, dt)
			if err != nil {
				return eris.Wrapf(err, "list %s templates", dt)
			}
			all = append(all, tmpls...)
		}

		for _, t := range all {
			fmt.Printf("%-28s  %-18s  %2d sections  usage=%-3d  success=%.2f  %s\n",
				t.ID, t.DocumentType, len(t.Sections), t.UsageCount, t.SuccessRate, t.Name)
		}
		if len(all) == 0 {
			fmt.Println("no templates found")
		}
		return nil
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <template-id>",
	Short: "Print a template as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate catalog store")
		}
		cat := catalog.NewService(st)

		tmpl, err := cat.Get(ctx, args[0])
		if err != nil {
			return err
		}
		return writeJSON(tmpl, "")
	},
}

var templatesDeriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive a custom template from a finished document",
	Long:  "Reads a generated document JSON (the generate command's document field) and persists its section structure as a reusable custom template.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		doc, err := loadDocument(tmplDeriveFrom)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate catalog store")
		}
		cat := catalog.NewService(st)

		tmpl, err := cat.Derive(ctx, doc, tmplDeriveName)
		if err != nil {
			return eris.Wrap(err, "derive template")
		}

		zap.L().Info("template derived",
			zap.String("template_id", tmpl.ID),
			zap.Int("sections", len(tmpl.Sections)),
		)
		return writeJSON(tmpl, "")
	},
}

func init() {
	templatesListCmd.Flags().StringVar(&tmplListType, "type", "", "filter by document type")
	templatesDeriveCmd.Flags().StringVar(&tmplDeriveFrom, "from", "", "document JSON file (required)")
	templatesDeriveCmd.Flags().StringVar(&tmplDeriveName, "name", "", "template name (defaults to the document title)")
	_ = templatesDeriveCmd.MarkFlagRequired("from")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesDeriveCmd)
	rootCmd.AddCommand(templatesCmd)
}
