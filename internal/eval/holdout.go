package eval

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/andrewibrah/riflett-intent/internal/intent"
)

// Example is one held-out labeled utterance, never used in training.
type Example struct {
	ID    string       `json:"id"`
	Label intent.Label `json:"label"`
	Text  string       `json:"text"`
}

// LoadHoldout reads the held-out set from a JSON array file. A missing file
// is a benign empty set; malformed content or an example carrying a label
// outside the vocabulary aborts the run.
func LoadHoldout(path string) ([]Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read holdout set: %w", err)
	}

	var examples []Example
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("failed to decode holdout set: %w", err)
	}

	for _, ex := range examples {
		if !ex.Label.IsValid() {
			return nil, fmt.Errorf("holdout example %s has unknown label %q", ex.ID, ex.Label)
		}
	}

	return examples, nil
}
