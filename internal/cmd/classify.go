package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrewibrah/riflett-intent/internal/classifier"
	"github.com/andrewibrah/riflett-intent/internal/config"
	"github.com/andrewibrah/riflett-intent/internal/model"
)

var (
	classifyModelPath string
	classifyTop       int
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify an utterance against the loaded model artifact",
	Long: `Classify scores the given text against every intent label and prints the
ranked, probability-normalized result as JSON. Empty input classifies a fixed
placeholder phrase and reports zero inference time.`,
	Args: cobra.ArbitraryArgs,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVarP(&classifyModelPath, "model", "m", "", "Path to the model artifact (default: from config)")
	classifyCmd.Flags().IntVar(&classifyTop, "top", classifier.TopKSize, "Number of ranked candidates to print")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	modelPath := cfg.ModelPath
	if classifyModelPath != "" {
		modelPath = classifyModelPath
	}

	artifact, err := model.Load(modelPath)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	result := classifier.New(artifact).Classify(text)

	if classifyTop > 0 && classifyTop < len(result.TopK) {
		result.TopK = result.TopK[:classifyTop]
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
