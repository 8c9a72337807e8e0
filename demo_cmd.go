package main

import (
	"github.com/spf13/cobra"

	"slidecomposer/composer"
	"slidecomposer/demo"
	"slidecomposer/i18n"
)

var demoOut string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build the reference presentation",
	Long: `Builds a ten slide deck showing every slide kind: title, bullets,
free text, a table, shapes, a background colour and styled paragraphs.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVarP(&demoOut, "out", "o", "", "Output file (default from config)")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	out := demoOut
	if out == "" {
		out = cfg.OutputPath
	}

	c := composer.New(cfg.Theme)
	c.SetLogger(appLog.Log)
	c.Deck().Properties.Creator = cfg.Author
	if err := demo.Build(c, i18n.GetTranslator(), appLog.Print); err != nil {
		return WrapOperationError("build demo deck", err)
	}
	if err := c.Save(out); err != nil {
		return WrapOperationError("save deck", err)
	}
	appLog.Print(i18n.T("progress.saved", out))

	printLayouts(cmd, c.Layouts())
	return nil
}

func printLayouts(cmd *cobra.Command, layouts []composer.LayoutInfo) {
	cmd.Println()
	cmd.Println(i18n.T("progress.layouts"))
	for _, l := range layouts {
		cmd.Printf("  %d: %s\n", l.Index, l.Name)
	}
}
