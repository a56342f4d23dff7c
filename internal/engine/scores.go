package engine

import (
	"math"

	"noesis/internal/profile/models"
)

// Scores computes the per-domain score map. Symbol recognition, dream
// analysis, skill development, and mindfulness map straight to their stored
// scores; flow states is the only derived one.
func Scores(cd models.ConsciousnessData) DomainScores {
	return DomainScores{
		DomainSymbolRecognition:   cd.SymbolRecognition.MeaningDevelopmentScore,
		DomainDreamAnalysis:       cd.DreamAnalysis.SubconsciousIntegrationScore,
		DomainSkillDevelopment:    cd.SkillDevelopment.CompetenceLevel,
		DomainFlowStates:          FlowScore(cd.FlowStates),
		DomainMindfulnessPractice: cd.MindfulnessPractice.PresentMomentAwareness,
	}
}

// FlowScore converts flow session frequency and peak performance metrics
// into a 0-100 score. Frequency contributes min(frequency*20, 100); the
// performance half is the metric mean scaled by 20, or 0 when no metrics
// have been recorded. The two halves are averaged and rounded.
func FlowScore(fs models.FlowStates) float64 {
	frequencyScore := math.Min(fs.OptimalExperienceFrequency*20, 100)

	var performanceScore float64
	if len(fs.PeakPerformanceMetrics) > 0 {
		var sum float64
		for _, v := range fs.PeakPerformanceMetrics {
			sum += v
		}
		performanceScore = sum / float64(len(fs.PeakPerformanceMetrics)) * 20
	}

	return math.Round((frequencyScore + performanceScore) / 2)
}

// Overall is the rounded mean of all five domain scores.
func Overall(scores DomainScores) float64 {
	var sum float64
	for _, d := range Domains {
		sum += scores[d]
	}
	return math.Round(sum / float64(len(Domains)))
}

// Strongest returns the highest-scoring domain, breaking ties in favor of
// the earlier domain in canonical order.
func Strongest(scores DomainScores) (Domain, float64) {
	best := DomainSymbolRecognition
	bestScore := 0.0
	for _, d := range Domains {
		if scores[d] > bestScore {
			best = d
			bestScore = scores[d]
		}
	}
	return best, bestScore
}
