package main

import (
	"github.com/spf13/cobra"

	"slidecomposer/i18n"
	"slidecomposer/preview"
)

var (
	renderPattern string
	renderWidth   int
)

var renderCmd = &cobra.Command{
	Use:   "render [deck.pptx]",
	Short: "Render slides to PNG thumbnails",
	Long: `Writes one wireframe PNG per slide: shapes with their fills and
outlines, table grids and text in a fixed bitmap face. Kept pictures and
groups appear as labelled boxes. The pattern receives the 1-based slide
number through its %d verb.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderPattern, "pattern", "p", "slide_%d.png", "Output file pattern")
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", preview.DefaultWidth, "Image width in pixels")
	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, args []string) error {
	n, err := preview.RenderThumbnails(args[0], renderPattern, renderWidth)
	if err != nil {
		return WrapOperationErrorf("render %s", err, args[0])
	}
	appLog.Print(i18n.T("progress.rendered", n))
	return nil
}
