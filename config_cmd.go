package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slidecomposer/config"
	"slidecomposer/i18n"
)

const defaultConfigFile = "slidecomposer.json"

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [config.json]",
	Short: "Write the effective configuration to a file",
	Long: `Writes the configuration in effect, defaults plus any --config file and
flag overrides, as indented JSON. The path defaults to --config, then to
slidecomposer.json. An existing file is kept unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(_ *cobra.Command, args []string) error {
	path := defaultConfigFile
	switch {
	case len(args) > 0:
		path = args[0]
	case configPath != "":
		path = configPath
	}
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return WrapOperationError("write config", err)
	}
	appLog.Print(i18n.T("progress.config", path))
	return nil
}
