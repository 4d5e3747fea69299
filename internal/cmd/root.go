package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	debugMode  bool
	logger     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "riflett-intent",
	Short: "On-device intent classification engine and offline tooling",
	Long: `riflett-intent scores free-text utterances against a versioned model
artifact, evaluates the model on a held-out set, and harvests production
misclassification audits into a reviewer label queue.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
}

func Execute() {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

func initLogger() error {
	config := zap.NewProductionConfig()
	if debugMode {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	var err error
	logger, err = config.Build()
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.CompletionOptions.HiddenDefaultCmd = false
}
