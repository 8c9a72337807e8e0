package main

import (
	"github.com/spf13/cobra"

	"slidecomposer/composer"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts [deck.pptx]",
	Short: "List the slide layouts of a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := composer.Open(args[0], cfg.Theme)
		if err != nil {
			return WrapOperationErrorf("open %s", err, args[0])
		}
		printLayouts(cmd, c.Layouts())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
}
