package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/pickacard/config"
	"github.com/lixenwraith/pickacard/constant"
)

var version = "dev"

var rootFlags struct {
	configPath string
	envFile    string
}

var rootCmd = &cobra.Command{
	Use:           "pickacard",
	Short:         "Timed card-selection ability: cast, pick, throw",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "YAML settings file")
	rootCmd.PersistentFlags().StringVar(&rootFlags.envFile, "env", constant.DefaultEnvFile, "dotenv file merged before the environment")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadSettings() (config.Settings, error) {
	settings, err := config.Load(rootFlags.configPath, rootFlags.envFile)
	if err != nil {
		return config.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
