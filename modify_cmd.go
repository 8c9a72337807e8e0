package main

import (
	"errors"

	"github.com/spf13/cobra"

	"slidecomposer/demo"
	"slidecomposer/i18n"
	"slidecomposer/pptx"
)

var modifyCmd = &cobra.Command{
	Use:   "modify [deck.pptx]",
	Short: "Retitle a deck and append a slide",
	Long: `Opens an existing deck, replaces the first slide's title, appends a
content slide and saves the result next to it as <name>_modified.pptx.
Shapes that cannot be carried into the copy are reported as a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runModify,
}

func init() {
	rootCmd.AddCommand(modifyCmd)
}

func runModify(_ *cobra.Command, args []string) error {
	path := args[0]
	out, err := demo.Modify(path, cfg.Theme, i18n.GetTranslator(), appLog.Print)
	if errors.Is(err, pptx.ErrFileNotFound) {
		return errors.New(i18n.T("error.file_not_found", path))
	}
	if err != nil {
		return WrapOperationErrorf("modify %s", err, path)
	}
	appLog.Print(i18n.T("progress.modified", out))
	return nil
}
