package model

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/andrewibrah/riflett-intent/internal/intent"
)

// Artifact is the versioned output of an external training run: per-label log
// priors and per-token log-likelihoods. It is loaded once at process start and
// treated as read-only afterwards.
type Artifact struct {
	Version     string    `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	Description string    `json:"description"`

	Labels              []intent.Definition                 `json:"labels"`
	LogPriors           map[intent.Label]float64            `json:"logPriors"`
	TokenLogLikelihoods map[intent.Label]map[string]float64 `json:"tokenLogLikelihoods"`
	UnseenTokenPenalty  float64                             `json:"unseenTokenPenalty"`

	// Training metadata describing how additive smoothing was applied.
	// The runtime never recomputes these.
	VocabularySize int     `json:"vocabularySize"`
	Alpha          float64 `json:"alpha"`

	TopFeatures map[intent.Label][]string `json:"topFeatures,omitempty"`
}

// Load reads and validates an artifact from a JSON file.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}

	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}

	return &a, nil
}

// Validate checks that the artifact covers the full label vocabulary and
// nothing outside it.
func (a *Artifact) Validate() error {
	if a.Version == "" {
		return fmt.Errorf("missing version")
	}
	if a.UnseenTokenPenalty >= 0 {
		return fmt.Errorf("unseen token penalty must be negative, got %v", a.UnseenTokenPenalty)
	}

	for _, l := range intent.All {
		if _, ok := a.LogPriors[l]; !ok {
			return fmt.Errorf("missing log prior for label %q", l)
		}
		if _, ok := a.TokenLogLikelihoods[l]; !ok {
			return fmt.Errorf("missing token likelihood table for label %q", l)
		}
	}

	for l := range a.LogPriors {
		if !l.IsValid() {
			return fmt.Errorf("log prior for unknown label %q", l)
		}
	}
	for l := range a.TokenLogLikelihoods {
		if !l.IsValid() {
			return fmt.Errorf("token likelihood table for unknown label %q", l)
		}
	}

	return nil
}

// LogLikelihood returns the evidence weight for a token under a label. The
// second return is false when the token is unseen for that label.
func (a *Artifact) LogLikelihood(l intent.Label, token string) (float64, bool) {
	v, ok := a.TokenLogLikelihoods[l][token]
	return v, ok
}
