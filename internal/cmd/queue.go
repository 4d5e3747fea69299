package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrewibrah/riflett-intent/internal/config"
	"github.com/andrewibrah/riflett-intent/internal/queue"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Build and inspect the active-learning label queue",
}

var queueBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Harvest audit logs into the reviewer label queue",
	Long: `Build loads every audit-log export, deduplicates records by id, resolves
suggested corrected labels against the intent vocabulary, and writes the
reviewer queue to its fixed path oldest-first.`,
	RunE: runQueueBuild,
}

var queueStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the audit sources feeding the queue",
	RunE:  runQueueStats,
}

func init() {
	rootCmd.AddCommand(queueCmd)
	queueCmd.AddCommand(queueBuildCmd)
	queueCmd.AddCommand(queueStatsCmd)
}

func runQueueBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	loader, err := queue.NewLoader(cfg.AuditDir, cfg.AuditPrefix, logger)
	if err != nil {
		return err
	}

	records, err := loader.LoadAll()
	if err != nil {
		return err
	}

	rows := queue.Build(records)

	if err := queue.WriteQueue(cfg.QueuePath, rows); err != nil {
		return err
	}

	verified := 0
	for _, row := range rows {
		if row.Status == queue.StatusVerified {
			verified++
		}
	}

	fmt.Printf("Built label queue with %d rows (%d verified, %d pending)\n",
		len(rows), verified, len(rows)-verified)
	fmt.Printf("Queue written to %s\n", cfg.QueuePath)

	return nil
}

func runQueueStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	loader, err := queue.NewLoader(cfg.AuditDir, cfg.AuditPrefix, logger)
	if err != nil {
		return err
	}

	stats, err := loader.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Audit files: %d\n", stats.Files)
	fmt.Printf("Records: %d (%d distinct ids)\n", stats.Records, stats.DistinctIDs)
	if stats.Records > 0 {
		fmt.Printf("Time range: %s to %s\n",
			stats.First.Format("2006-01-02"), stats.Last.Format("2006-01-02"))
	}
	for _, pc := range stats.ByPredicted {
		fmt.Printf("  %-20s %d\n", pc.Predicted, pc.Count)
	}

	return nil
}
