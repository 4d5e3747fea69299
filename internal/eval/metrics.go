package eval

import (
	"github.com/andrewibrah/riflett-intent/internal/classifier"
	"github.com/andrewibrah/riflett-intent/internal/intent"
)

// ClassifyFunc is the classifier contract the harness replays examples
// through. Taking a function keeps the harness testable with canned results.
type ClassifyFunc func(text string) classifier.Result

// ClassMetrics holds per-label accuracy over the examples whose actual label
// equals that class.
type ClassMetrics struct {
	Accuracy float64 `json:"accuracy"`
	Support  int     `json:"support"`
}

// Summary is the derived, write-once metrics report for one evaluation run.
type Summary struct {
	Accuracy     float64                               `json:"accuracy"`
	Top3Accuracy float64                               `json:"top3Accuracy"`
	PerClass     map[intent.Label]ClassMetrics         `json:"perClass"`
	Confusion    map[intent.Label]map[intent.Label]int `json:"confusion"`
	Total        int                                   `json:"total"`
	Correct      int                                   `json:"correct"`
	Top3Correct  int                                   `json:"top3Correct"`
}

// Evaluate replays the held-out set through classify and aggregates a
// confusion matrix plus overall, top-3, and per-class accuracy. Predicted
// label strings are folded back to canonical ids; unrecognized ones resolve
// to the fallback label rather than failing the run.
func Evaluate(examples []Example, classify ClassifyFunc) Summary {
	confusion := make(map[intent.Label]map[intent.Label]int)
	correctByClass := make(map[intent.Label]int)
	supportByClass := make(map[intent.Label]int)

	var correct, top3Correct int
	for _, ex := range examples {
		result := classify(ex.Text)
		predicted := intent.Resolve(result.Primary.Label)

		if confusion[ex.Label] == nil {
			confusion[ex.Label] = make(map[intent.Label]int)
		}
		confusion[ex.Label][predicted]++
		supportByClass[ex.Label]++

		if predicted == ex.Label {
			correct++
			correctByClass[ex.Label]++
		}

		for i, cand := range result.TopK {
			if i >= 3 {
				break
			}
			if intent.Resolve(cand.Label) == ex.Label {
				top3Correct++
				break
			}
		}
	}

	// An empty set divides by 1 so the summary stays finite while still
	// reporting zero correct.
	denom := len(examples)
	if denom == 0 {
		denom = 1
	}

	perClass := make(map[intent.Label]ClassMetrics, len(intent.All))
	for _, l := range intent.All {
		support := supportByClass[l]
		m := ClassMetrics{Support: support}
		if support > 0 {
			m.Accuracy = float64(correctByClass[l]) / float64(support)
		}
		perClass[l] = m
	}

	return Summary{
		Accuracy:     float64(correct) / float64(denom),
		Top3Accuracy: float64(top3Correct) / float64(denom),
		PerClass:     perClass,
		Confusion:    confusion,
		Total:        len(examples),
		Correct:      correct,
		Top3Correct:  top3Correct,
	}
}
