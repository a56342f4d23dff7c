package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"noesis/internal/profile/models"
)

// Detector finds one family of cross-domain correlations. Detectors are
// heuristic keyword matchers over profile data; each family carries a fixed
// confidence reflecting how strong the underlying correlation evidence is.
type Detector interface {
	Detect(cd models.ConsciousnessData) []Pattern
}

// DetectPatterns runs the standard detector set in order: dream-symbol,
// skill-flow, then mindfulness-development correlations.
func DetectPatterns(cd models.ConsciousnessData) []Pattern {
	patterns := []Pattern{}
	for _, d := range defaultDetectors {
		patterns = append(patterns, d.Detect(cd)...)
	}
	return patterns
}

var defaultDetectors = []Detector{
	dreamSymbolDetector{},
	skillFlowDetector{},
	mindfulnessDetector{},
}

// dreamSymbolDetector matches dictionary symbols against dream pattern
// names. A symbol correlates with a pattern when the pattern contains the
// symbol, or the symbol contains the pattern's first underscore-separated
// word.
type dreamSymbolDetector struct{}

func (dreamSymbolDetector) Detect(cd models.ConsciousnessData) []Pattern {
	var patterns []Pattern
	for _, symbol := range sortedKeys(cd.SymbolRecognition.PersonalSymbolDictionary) {
		for _, dream := range cd.DreamAnalysis.DreamPatterns {
			firstWord := strings.SplitN(dream, "_", 2)[0]
			symbolLower := strings.ToLower(symbol)
			dreamLower := strings.ToLower(dream)
			if strings.Contains(dreamLower, symbolLower) || (firstWord != "" && strings.Contains(symbolLower, firstWord)) {
				patterns = append(patterns, Pattern{
					Type:        "dream_symbol_correlation",
					Description: fmt.Sprintf("Symbol %q appears related to dream pattern %q", symbol, dream),
					Confidence:  0.75,
					Domains:     []Domain{DomainSymbolRecognition, DomainDreamAnalysis},
					Correlations: map[string]float64{
						symbol: 0.75,
						dream:  0.75,
					},
				})
			}
		}
	}
	return patterns
}

// skillFlowDetector matches mastery areas against peak performance metric
// names in either containment direction.
type skillFlowDetector struct{}

func (skillFlowDetector) Detect(cd models.ConsciousnessData) []Pattern {
	var patterns []Pattern
	for _, skill := range cd.SkillDevelopment.MasteryAreas {
		for _, metric := range sortedKeys(cd.FlowStates.PeakPerformanceMetrics) {
			skillLower := strings.ToLower(skill)
			metricLower := strings.ToLower(metric)
			if strings.Contains(metricLower, skillLower) || strings.Contains(skillLower, metricLower) {
				patterns = append(patterns, Pattern{
					Type:        "skill_flow_correlation",
					Description: fmt.Sprintf("Skill mastery in %q correlates with flow state in %q", skill, metric),
					Confidence:  0.8,
					Domains:     []Domain{DomainSkillDevelopment, DomainFlowStates},
					Correlations: map[string]float64{
						skill:  0.8,
						metric: 0.8,
					},
				})
			}
		}
	}
	return patterns
}

// mindfulnessDetector reports a correlation when present-moment awareness
// sits within 10 points of the overall score.
type mindfulnessDetector struct{}

func (mindfulnessDetector) Detect(cd models.ConsciousnessData) []Pattern {
	mindfulness := cd.MindfulnessPractice.PresentMomentAwareness
	overall := Overall(Scores(cd))
	if math.Abs(mindfulness-overall) >= 10 {
		return nil
	}
	return []Pattern{{
		Type:        "mindfulness_development_correlation",
		Description: "Mindfulness practice strongly correlates with overall consciousness development",
		Confidence:  0.9,
		Domains:     []Domain{DomainMindfulnessPractice},
		Correlations: map[string]float64{
			"mindfulness": mindfulness / 100,
			"overall":     overall / 100,
		},
	}}
}

// sortedKeys keeps detector output deterministic across runs; map iteration
// order would otherwise reorder patterns for identical input.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
