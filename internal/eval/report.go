package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Report wraps a summary with the traceability fields the external tooling
// keys on: when it was generated and which artifact produced the predictions.
type Report struct {
	GeneratedAt  time.Time `json:"generatedAt"`
	ModelVersion string    `json:"modelVersion"`
	Summary      Summary   `json:"summary"`
}

// WriteReport persists a report as an immutable timestamped JSON file and
// returns the path. Each run gets its own file; prior reports are never
// overwritten.
func WriteReport(reportsDir string, report Report) (string, error) {
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	filename := filepath.Join(reportsDir, fmt.Sprintf("eval_%s.json", safeTimestamp(report.GeneratedAt)))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return filename, nil
}

// safeTimestamp renders an ISO-8601 timestamp with the characters filesystems
// reject replaced.
func safeTimestamp(t time.Time) string {
	return strings.ReplaceAll(t.UTC().Format(time.RFC3339), ":", "-")
}
