package main

import (
	"github.com/spf13/cobra"

	"slidecomposer/preview"
)

var outlineMax int

var outlineCmd = &cobra.Command{
	Use:   "outline [deck.pptx]",
	Short: "Print the text of each slide",
	Args:  cobra.ExactArgs(1),
	RunE:  runOutline,
}

func init() {
	outlineCmd.Flags().IntVarP(&outlineMax, "max", "n", 0, "Maximum slides to print (0 for all)")
	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	o, err := preview.ReadOutline(args[0], outlineMax)
	if err != nil {
		return WrapOperationErrorf("outline %s", err, args[0])
	}
	return o.Write(cmd.OutOrStdout())
}
