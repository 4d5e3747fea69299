package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andrewibrah/riflett-intent/internal/classifier"
	"github.com/andrewibrah/riflett-intent/internal/config"
	"github.com/andrewibrah/riflett-intent/internal/eval"
	"github.com/andrewibrah/riflett-intent/internal/intent"
	"github.com/andrewibrah/riflett-intent/internal/model"
)

var (
	evaluateModelPath   string
	evaluateHoldoutPath string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Replay the held-out set and write a metrics report",
	Long: `Evaluate runs every held-out example through the classifier and writes a
timestamped, immutable JSON report with overall accuracy, top-3 accuracy,
per-class metrics, and the full confusion matrix.`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVarP(&evaluateModelPath, "model", "m", "", "Path to the model artifact (default: from config)")
	evaluateCmd.Flags().StringVar(&evaluateHoldoutPath, "holdout", "", "Path to the holdout set (default: from config)")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	modelPath := cfg.ModelPath
	if evaluateModelPath != "" {
		modelPath = evaluateModelPath
	}
	holdoutPath := cfg.HoldoutPath
	if evaluateHoldoutPath != "" {
		holdoutPath = evaluateHoldoutPath
	}

	artifact, err := model.Load(modelPath)
	if err != nil {
		return err
	}

	examples, err := eval.LoadHoldout(holdoutPath)
	if err != nil {
		return err
	}
	if len(examples) == 0 {
		logger.Info("holdout set is empty, report will carry zero counts",
			zap.String("path", holdoutPath))
	}

	fmt.Printf("Evaluating model %s on %d examples\n", artifact.Version, len(examples))

	clf := classifier.New(artifact)
	summary := eval.Evaluate(examples, clf.Classify)

	report := eval.Report{
		GeneratedAt:  time.Now(),
		ModelVersion: artifact.Version,
		Summary:      summary,
	}

	path, err := eval.WriteReport(cfg.ReportsDir, report)
	if err != nil {
		return err
	}

	fmt.Printf("Accuracy: %.3f (%d/%d)\n", summary.Accuracy, summary.Correct, summary.Total)
	fmt.Printf("Top-3 accuracy: %.3f (%d/%d)\n", summary.Top3Accuracy, summary.Top3Correct, summary.Total)
	for _, l := range intent.All {
		m := summary.PerClass[l]
		if m.Support == 0 {
			continue
		}
		fmt.Printf("  %-20s accuracy %.3f (support %d)\n", l, m.Accuracy, m.Support)
	}
	fmt.Printf("Report written to %s\n", path)

	return nil
}
