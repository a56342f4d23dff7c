package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendThresholds(t *testing.T) {
	tests := []struct {
		name         string
		score        float64
		wantPriority Priority
		wantImpact   float64
		wantNone     bool
	}{
		{name: "deep deficit is high priority", score: 40, wantPriority: PriorityHigh, wantImpact: 3},
		{name: "moderate deficit is medium priority", score: 65, wantPriority: PriorityMedium, wantImpact: 1},
		{name: "exactly 50 is medium", score: 50, wantPriority: PriorityMedium, wantImpact: 2},
		{name: "exactly 70 gets nothing", score: 70, wantNone: true},
		{name: "exactly 80 gets nothing", score: 80, wantNone: true},
		{name: "above 80 is low priority advancement", score: 95, wantPriority: PriorityLow, wantImpact: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Park the other four domains in the silent 70-80 band.
			scores := DomainScores{
				DomainSymbolRecognition:   75,
				DomainDreamAnalysis:       75,
				DomainSkillDevelopment:    75,
				DomainFlowStates:          75,
				DomainMindfulnessPractice: tt.score,
			}

			recs := Recommend(scores)
			if tt.wantNone {
				assert.Empty(t, recs)
				return
			}
			require.Len(t, recs, 1)
			assert.Equal(t, DomainMindfulnessPractice, recs[0].Domain)
			assert.Equal(t, tt.wantPriority, recs[0].Priority)
			assert.Equal(t, tt.wantImpact, recs[0].EstimatedImpact)
			assert.NotEmpty(t, recs[0].Action)
			assert.NotEmpty(t, recs[0].Rationale)
		})
	}
}

func TestRecommendOrdersByPriorityTimesImpact(t *testing.T) {
	scores := DomainScores{
		DomainSymbolRecognition:   40, // high, impact 3, weight 9
		DomainDreamAnalysis:       65, // medium, impact 1 (0.5 rounds up), weight 2
		DomainSkillDevelopment:    75, // silent band
		DomainFlowStates:          75,
		DomainMindfulnessPractice: 95, // low, impact 3, weight 3
	}

	recs := Recommend(scores)
	require.Len(t, recs, 3)
	assert.Equal(t, DomainSymbolRecognition, recs[0].Domain)
	assert.Equal(t, DomainMindfulnessPractice, recs[1].Domain)
	assert.Equal(t, DomainDreamAnalysis, recs[2].Domain)
}

func TestRecommendEqualWeightsKeepCanonicalOrder(t *testing.T) {
	// Two domains at the same deficit produce equal weights; the stable sort
	// keeps them in canonical domain order.
	scores := DomainScores{
		DomainSymbolRecognition:   75,
		DomainDreamAnalysis:       60,
		DomainSkillDevelopment:    75,
		DomainFlowStates:          60,
		DomainMindfulnessPractice: 75,
	}

	recs := Recommend(scores)
	require.Len(t, recs, 2)
	assert.Equal(t, DomainDreamAnalysis, recs[0].Domain)
	assert.Equal(t, DomainFlowStates, recs[1].Domain)
}

func TestRecommendAllStrongDomains(t *testing.T) {
	scores := DomainScores{
		DomainSymbolRecognition:   85,
		DomainDreamAnalysis:       90,
		DomainSkillDevelopment:    85,
		DomainFlowStates:          85,
		DomainMindfulnessPractice: 85,
	}

	recs := Recommend(scores)
	require.Len(t, recs, 5)
	for _, rec := range recs {
		assert.Equal(t, PriorityLow, rec.Priority)
	}
	// Dream analysis has the biggest surplus and sorts first.
	assert.Equal(t, DomainDreamAnalysis, recs[0].Domain)
}
