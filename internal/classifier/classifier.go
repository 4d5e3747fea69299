package classifier

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/andrewibrah/riflett-intent/internal/intent"
	"github.com/andrewibrah/riflett-intent/internal/model"
)

// TopKSize caps how many ranked candidates a result carries.
const TopKSize = 5

// placeholderPhrase stands in for empty input so callers always get the same
// baseline guess instead of an error.
const placeholderPhrase = "generic reflection"

// Candidate is one label's result for one input.
type Candidate struct {
	ID            intent.Label `json:"id"`
	Label         string       `json:"label"`
	Confidence    float64      `json:"confidence"`
	LogScore      float64      `json:"logScore"`
	MatchedTokens []string     `json:"matchedTokens"`
}

// Result is produced fresh per call and never persisted by the engine itself.
type Result struct {
	Primary      Candidate   `json:"primary"`
	TopK         []Candidate `json:"topK"`
	ModelVersion string      `json:"modelVersion"`
	InferenceMs  float64     `json:"inferenceMs"`
	Tokens       []string    `json:"tokens"`
}

// Classifier scores utterances against an immutable model artifact. It holds
// no other state, so a single instance is safe to share.
type Classifier struct {
	artifact *model.Artifact
}

func New(artifact *model.Artifact) *Classifier {
	return &Classifier{artifact: artifact}
}

// Classify maps free text to a ranked, probability-normalized set of intent
// candidates. It is pure given the loaded artifact: the same input always
// yields the same labels and confidences.
func (c *Classifier) Classify(text string) Result {
	if strings.TrimSpace(text) == "" {
		result := c.score(placeholderPhrase)
		result.InferenceMs = 0
		return result
	}

	start := time.Now()
	result := c.score(text)
	result.InferenceMs = float64(time.Since(start).Microseconds()) / 1000.0
	return result
}

func (c *Classifier) score(text string) Result {
	tokens := Tokenize(text)

	// Naive-Bayes log posterior per label. Unseen tokens contribute a fixed
	// penalty standing in for the smoothed unseen-token probability. With no
	// tokens at all every label scores its prior, which reduces the result to
	// a most-common-intent baseline.
	candidates := make([]Candidate, 0, len(intent.All))
	for _, l := range intent.All {
		score := c.artifact.LogPriors[l]
		var matched []string
		for _, token := range tokens {
			if ll, ok := c.artifact.LogLikelihood(l, token); ok {
				score += ll
				matched = append(matched, token)
			} else {
				score += c.artifact.UnseenTokenPenalty
			}
		}
		candidates = append(candidates, Candidate{
			ID:            l,
			Label:         intent.Display(l),
			LogScore:      score,
			MatchedTokens: matched,
		})
	}

	softmax(candidates)

	// Descending by confidence. Equal confidences keep the declared
	// vocabulary order, which candidates already follow, so a stable sort is
	// all the tie-break needs.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	topK := candidates
	if len(topK) > TopKSize {
		topK = topK[:TopKSize]
	}

	return Result{
		Primary:      topK[0],
		TopK:         topK,
		ModelVersion: c.artifact.Version,
		Tokens:       tokens,
	}
}

// softmax converts log scores to confidences summing to 1. The max score is
// subtracted before exponentiating so long inputs cannot overflow.
func softmax(candidates []Candidate) {
	maxScore := math.Inf(-1)
	for _, cand := range candidates {
		if cand.LogScore > maxScore {
			maxScore = cand.LogScore
		}
	}

	var sum float64
	exps := make([]float64, len(candidates))
	for i, cand := range candidates {
		exps[i] = math.Exp(cand.LogScore - maxScore)
		sum += exps[i]
	}

	for i := range candidates {
		candidates[i].Confidence = exps[i] / sum
	}
}
