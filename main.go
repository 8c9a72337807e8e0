// Command slidecomposer builds PowerPoint decks: the reference demo deck,
// decks described by YAML plans, and edits to existing decks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slidecomposer/config"
	"slidecomposer/i18n"
	"slidecomposer/logger"
)

var (
	configPath string
	langFlag   string
	logDirFlag string

	cfg    = config.Default()
	appLog = logger.NewLogger(nil)
)

var rootCmd = &cobra.Command{
	Use:   "slidecomposer",
	Short: "Compose PowerPoint presentations",
	Long: `Builds .pptx decks from slide intents: titles, bullet lists,
free text, tables and shapes. Plans may be written as YAML and table
rows may come from Excel or CSV files.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "JSON configuration file")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Output language (en or zh)")
	rootCmd.PersistentFlags().StringVar(&logDirFlag, "log-dir", "", "Directory for run logs")
}

// setup loads the configuration and applies flag overrides before any
// command runs.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return WrapOperationError("load config", err)
	}
	if langFlag != "" {
		loaded.Language = langFlag
	}
	if logDirFlag != "" {
		loaded.LogDir = logDirFlag
	}
	cfg = loaded
	i18n.SyncLanguageFromConfig(&cfg)

	appLog.Close()
	appLog = logger.NewLogger(cmd.OutOrStdout())
	if cfg.LogDir != "" {
		if err := appLog.Init(cfg.LogDir); err != nil {
			return WrapOperationError("open run log", err)
		}
	}
	appLog.Logf("command %s", cmd.CommandPath())
	return nil
}

// Execute runs the root command and closes the run log.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		appLog.Logf("error: %v", err)
	}
	appLog.Close()
	return err
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
