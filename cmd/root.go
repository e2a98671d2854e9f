package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/chartlit/internal/app"
	"github.com/firefly-engineering/chartlit/internal/config"
	"github.com/firefly-engineering/chartlit/internal/errors"
	"github.com/firefly-engineering/chartlit/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "chartlit",
	Short: "Chart options literal checker",
	Long: `chartlit parses, validates and normalizes Highcharts-style chart option
literals written as JavaScript object expressions.

It checks a fixture corpus where the file name encodes the expectation:
  NN.js              - must parse and validate
  error-NN.js        - must be rejected
  X.js + X_output.js - X.js normalizes to the canonical X_output.js`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, cmd.ErrOrStderr())
		logging.SetUserOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
		return loadApp(configPath)
	},
}

// loadApp reads the configuration and installs the default App.
// Tests replace it to keep their own App.
var loadApp = func(path string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to get working directory", err)
	}
	cfg, err := config.Load(cwd, path)
	if err != nil {
		return errors.ConfigError("failed to load configuration", err)
	}
	logging.Debug("configuration loaded", "path", cfg.Path, "root", cfg.Corpus.Root)
	app.SetDefault(app.New(app.WithConfig(cfg)))
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs and reports in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (default ./"+config.DefaultConfigFile+")")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
