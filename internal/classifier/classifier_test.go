package classifier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewibrah/riflett-intent/internal/intent"
	"github.com/andrewibrah/riflett-intent/internal/model"
)

func testArtifact(tables map[intent.Label]map[string]float64) *model.Artifact {
	a := &model.Artifact{
		Version:             "test.v1",
		UnseenTokenPenalty:  -8.0,
		VocabularySize:      100,
		Alpha:               1.0,
		LogPriors:           make(map[intent.Label]float64),
		TokenLogLikelihoods: make(map[intent.Label]map[string]float64),
	}
	for _, l := range intent.All {
		a.LogPriors[l] = -2.08
		a.TokenLogLikelihoods[l] = map[string]float64{}
	}
	for l, table := range tables {
		a.TokenLogLikelihoods[l] = table
	}
	return a
}

func TestClassifyRanksByEvidence(t *testing.T) {
	clf := New(testArtifact(map[intent.Label]map[string]float64{
		intent.LabelGoalCreate:   {"goal": -0.5, "start": -0.7},
		intent.LabelReminderSet:  {"remind": -0.4},
		intent.LabelJournalEntry: {"today": -0.9},
	}))

	result := clf.Classify("I want to start a new goal")

	assert.Equal(t, intent.LabelGoalCreate, result.Primary.ID)
	assert.Equal(t, "Goal Create", result.Primary.Label)
	assert.ElementsMatch(t, []string{"goal", "start"}, result.Primary.MatchedTokens)
	assert.Equal(t, "test.v1", result.ModelVersion)
	assert.Len(t, result.TopK, TopKSize)
}

func TestConfidencesAreNormalized(t *testing.T) {
	// Uniform artifact: no token evidence, equal priors. Every label takes
	// the identical score, so each confidence must be exactly 1/8 and the
	// full distribution sums to 1.
	clf := New(testArtifact(nil))

	result := clf.Classify("anything at all")

	var sum float64
	for _, cand := range result.TopK {
		assert.InDelta(t, 1.0/8.0, cand.Confidence, 1e-12)
		sum += cand.Confidence
	}
	assert.InDelta(t, float64(TopKSize)/8.0, sum, 1e-12)
}

func TestTieBreakFollowsVocabularyOrder(t *testing.T) {
	clf := New(testArtifact(nil))

	result := clf.Classify("nothing matches anywhere")

	require.Len(t, result.TopK, TopKSize)
	for i, cand := range result.TopK {
		assert.Equal(t, intent.All[i], cand.ID, "position %d", i)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	clf := New(testArtifact(map[intent.Label]map[string]float64{
		intent.LabelScheduleCreate: {"meeting": -0.3, "tomorrow": -0.6},
	}))

	first := clf.Classify("schedule a meeting tomorrow")
	second := clf.Classify("schedule a meeting tomorrow")

	assert.Equal(t, first.Primary.ID, second.Primary.ID)
	require.Equal(t, len(first.TopK), len(second.TopK))
	for i := range first.TopK {
		assert.Equal(t, first.TopK[i].ID, second.TopK[i].ID)
		assert.Equal(t, first.TopK[i].Confidence, second.TopK[i].Confidence)
		assert.Equal(t, first.TopK[i].LogScore, second.TopK[i].LogScore)
	}
}

func TestEmptyInputUsesPlaceholder(t *testing.T) {
	clf := New(testArtifact(map[intent.Label]map[string]float64{
		intent.LabelReflectionRequest: {"reflection": -0.2, "generic": -0.9},
	}))

	empty := clf.Classify("")
	placeholder := clf.Classify("generic reflection")

	assert.Equal(t, placeholder.Primary.ID, empty.Primary.ID)
	assert.Equal(t, placeholder.Primary.Confidence, empty.Primary.Confidence)
	assert.Equal(t, placeholder.Tokens, empty.Tokens)
	assert.Zero(t, empty.InferenceMs)

	whitespace := clf.Classify("   \n ")
	assert.Equal(t, placeholder.Primary.ID, whitespace.Primary.ID)
}

func TestPriorDominatesWithNoMatchedTokens(t *testing.T) {
	a := testArtifact(nil)
	// Skew one prior hard enough that it wins over unmatched input.
	a.LogPriors[intent.LabelSettingsChange] = -0.5

	result := New(a).Classify("xyzzy plugh")

	assert.Equal(t, intent.LabelSettingsChange, result.Primary.ID)
	assert.Empty(t, result.Primary.MatchedTokens)
}

func TestUnseenTokensApplyPenalty(t *testing.T) {
	a := testArtifact(map[intent.Label]map[string]float64{
		intent.LabelGoalCreate: {"goal": -1.0},
	})
	result := New(a).Classify("goal")

	// goal_create: prior + likelihood; every other label: prior + penalty.
	for _, cand := range result.TopK {
		if cand.ID == intent.LabelGoalCreate {
			assert.InDelta(t, -2.08-1.0, cand.LogScore, 1e-9)
		} else {
			assert.InDelta(t, -2.08-8.0, cand.LogScore, 1e-9)
		}
	}
}

func TestRepeatedWordsDoNotBiasScore(t *testing.T) {
	a := testArtifact(map[intent.Label]map[string]float64{
		intent.LabelGoalCreate: {"goal": -0.5},
	})
	clf := New(a)

	once := clf.Classify("goal")
	repeated := clf.Classify("goal goal goal goal")

	assert.Equal(t, once.Primary.ID, repeated.Primary.ID)
	assert.Equal(t, once.Primary.Confidence, repeated.Primary.Confidence)
}

func TestSoftmaxStableForExtremeScores(t *testing.T) {
	a := testArtifact(nil)
	for _, l := range intent.All {
		a.LogPriors[l] = -5000.0
	}
	a.LogPriors[intent.LabelJournalEntry] = -4990.0

	result := New(a).Classify("long unmatched input with many words here")

	assert.Equal(t, intent.LabelJournalEntry, result.Primary.ID)
	for _, cand := range result.TopK {
		assert.False(t, math.IsNaN(cand.Confidence))
		assert.False(t, math.IsInf(cand.Confidence, 0))
	}
}
