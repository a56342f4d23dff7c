package engine

import (
	"math"
	"sort"
)

type recommendationText struct {
	action    string
	rationale string
}

var developmentTexts = map[Domain]recommendationText{
	DomainSymbolRecognition: {
		action:    "Expand personal symbol dictionary through daily symbolic awareness practice",
		rationale: "Low symbol recognition score indicates need for increased symbolic awareness",
	},
	DomainDreamAnalysis: {
		action:    "Establish consistent dream journaling and recall practices",
		rationale: "Strengthening dream analysis will enhance subconscious integration",
	},
	DomainSkillDevelopment: {
		action:    "Focus on deliberate practice in identified skill areas",
		rationale: "Structured skill development will improve competence levels",
	},
	DomainFlowStates: {
		action:    "Create optimal conditions for flow state experiences",
		rationale: "Increase frequency and quality of peak performance experiences",
	},
	DomainMindfulnessPractice: {
		action:    "Establish regular mindfulness meditation routine",
		rationale: "Consistent practice will enhance present-moment awareness",
	},
}

var advancementTexts = map[Domain]recommendationText{
	DomainSymbolRecognition: {
		action:    "Explore cross-cultural symbolic interpretations and archetypal patterns",
		rationale: "Deepen symbolic understanding through advanced interpretation techniques",
	},
	DomainDreamAnalysis: {
		action:    "Practice lucid dreaming and active dream engagement",
		rationale: "Advanced dream work for enhanced subconscious integration",
	},
	DomainSkillDevelopment: {
		action:    "Mentor others and teach your mastered skills",
		rationale: "Teaching will deepen mastery and create new growth opportunities",
	},
	DomainFlowStates: {
		action:    "Experiment with flow state triggers in new domains",
		rationale: "Expand optimal experience to additional life areas",
	},
	DomainMindfulnessPractice: {
		action:    "Explore advanced meditation techniques and retreats",
		rationale: "Deepen mindfulness practice through intensive training",
	},
}

// Recommend builds personalized suggestions from domain scores. Domains
// scoring strictly below 70 get a development recommendation (high priority
// under 50, medium otherwise); domains strictly above 80 get a low-priority
// advancement recommendation. A domain between 70 and 80 inclusive gets
// nothing. The result is sorted by priority weight times estimated impact,
// descending; the sort is stable so equal weights keep generation order.
func Recommend(scores DomainScores) []Recommendation {
	recs := []Recommendation{}
	for _, d := range Domains {
		if score := scores[d]; score < 70 {
			priority := PriorityMedium
			if score < 50 {
				priority = PriorityHigh
			}
			text := developmentTexts[d]
			recs = append(recs, Recommendation{
				Domain:          d,
				Action:          text.action,
				Priority:        priority,
				Rationale:       text.rationale,
				EstimatedImpact: math.Round((70 - score) / 10),
			})
		}
	}
	for _, d := range Domains {
		if score := scores[d]; score > 80 {
			text := advancementTexts[d]
			recs = append(recs, Recommendation{
				Domain:          d,
				Action:          text.action,
				Priority:        PriorityLow,
				Rationale:       text.rationale,
				EstimatedImpact: math.Round((score - 80) / 5),
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		wi := float64(recs[i].Priority.weight()) * recs[i].EstimatedImpact
		wj := float64(recs[j].Priority.weight()) * recs[j].EstimatedImpact
		return wi > wj
	})
	return recs
}
