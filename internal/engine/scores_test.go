package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"noesis/internal/profile/models"
)

func TestFlowScore(t *testing.T) {
	tests := []struct {
		name string
		fs   models.FlowStates
		want float64
	}{
		{
			name: "frequency and one metric",
			fs: models.FlowStates{
				OptimalExperienceFrequency: 3.2,
				PeakPerformanceMetrics:     map[string]float64{"coding": 4.1},
			},
			want: 73,
		},
		{
			name: "frequency contribution capped at 100",
			fs: models.FlowStates{
				OptimalExperienceFrequency: 50,
				PeakPerformanceMetrics:     map[string]float64{"running": 5},
			},
			want: 100,
		},
		{
			name: "no metrics means performance half is zero",
			fs: models.FlowStates{
				OptimalExperienceFrequency: 4,
				PeakPerformanceMetrics:     map[string]float64{},
			},
			want: 40,
		},
		{
			name: "metric mean over several activities",
			fs: models.FlowStates{
				OptimalExperienceFrequency: 2,
				PeakPerformanceMetrics:     map[string]float64{"coding": 4, "writing": 2},
			},
			want: 50,
		},
		{
			name: "zero profile",
			fs:   models.FlowStates{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlowScore(tt.fs))
		})
	}
}

func TestScoresMapsEachDomain(t *testing.T) {
	cd := models.ConsciousnessData{
		SymbolRecognition:   models.SymbolRecognition{MeaningDevelopmentScore: 61},
		DreamAnalysis:       models.DreamAnalysis{SubconsciousIntegrationScore: 45},
		SkillDevelopment:    models.SkillDevelopment{CompetenceLevel: 72},
		FlowStates:          models.FlowStates{OptimalExperienceFrequency: 3.2, PeakPerformanceMetrics: map[string]float64{"coding": 4.1}},
		MindfulnessPractice: models.MindfulnessPractice{PresentMomentAwareness: 58},
	}

	scores := Scores(cd)
	assert.Equal(t, 61.0, scores[DomainSymbolRecognition])
	assert.Equal(t, 45.0, scores[DomainDreamAnalysis])
	assert.Equal(t, 72.0, scores[DomainSkillDevelopment])
	assert.Equal(t, 73.0, scores[DomainFlowStates])
	assert.Equal(t, 58.0, scores[DomainMindfulnessPractice])
}

func TestOverallIsRoundedMean(t *testing.T) {
	scores := DomainScores{
		DomainSymbolRecognition:   61,
		DomainDreamAnalysis:       45,
		DomainSkillDevelopment:    72,
		DomainFlowStates:          73,
		DomainMindfulnessPractice: 58,
	}
	// (61+45+72+73+58)/5 = 61.8 rounds to 62.
	assert.Equal(t, 62.0, Overall(scores))
}

func TestStrongestBreaksTiesByCanonicalOrder(t *testing.T) {
	scores := DomainScores{
		DomainSymbolRecognition:   50,
		DomainDreamAnalysis:       80,
		DomainSkillDevelopment:    80,
		DomainFlowStates:          30,
		DomainMindfulnessPractice: 10,
	}

	domain, score := Strongest(scores)
	assert.Equal(t, DomainDreamAnalysis, domain)
	assert.Equal(t, 80.0, score)
}

func TestStrongestOfAllZerosIsSymbolRecognition(t *testing.T) {
	domain, score := Strongest(DomainScores{})
	assert.Equal(t, DomainSymbolRecognition, domain)
	assert.Zero(t, score)
}

func TestDomainDisplayName(t *testing.T) {
	assert.Equal(t, "Symbol Recognition", DomainSymbolRecognition.DisplayName())
	assert.Equal(t, "Mindfulness Practice", DomainMindfulnessPractice.DisplayName())
}
