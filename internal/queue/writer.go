package queue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteQueue persists the reviewer queue as an indented JSON array at its
// fixed well-known path. Concurrent runs race last-writer-wins, which is
// acceptable: each run writes a complete queue.
func WriteQueue(path string, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create queue directory: %w", err)
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode queue: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write queue: %w", err)
	}

	return nil
}
