// Package engine derives consciousness state from a profile: per-domain
// scores, cross-domain patterns, personalized recommendations, and a growth
// trajectory. Everything here is a pure function of one profile snapshot;
// persistence and transport live elsewhere.
package engine

import (
	"strings"
	"time"

	id "noesis/pkg/domain"
)

// Domain is one of the five fixed consciousness development domains.
type Domain string

const (
	DomainSymbolRecognition   Domain = "symbol_recognition"
	DomainDreamAnalysis       Domain = "dream_analysis"
	DomainSkillDevelopment    Domain = "skill_development"
	DomainFlowStates          Domain = "flow_states"
	DomainMindfulnessPractice Domain = "mindfulness_practice"
)

// Domains is the canonical domain order. Score maps, insight scans, and
// recommendation generation all iterate in this order so output is
// deterministic.
var Domains = []Domain{
	DomainSymbolRecognition,
	DomainDreamAnalysis,
	DomainSkillDevelopment,
	DomainFlowStates,
	DomainMindfulnessPractice,
}

// DisplayName renders a domain for human-readable insight text:
// underscores become spaces and each word is capitalized.
func (d Domain) DisplayName() string {
	words := strings.Split(string(d), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Trend labels the predicted direction of development.
type Trend string

const (
	TrendAscending  Trend = "ascending"
	TrendStable     Trend = "stable"
	TrendDescending Trend = "descending"
)

// Priority orders recommendations.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// DomainScores maps every domain to its 0-100 score.
type DomainScores map[Domain]float64

// Pattern is one detected cross-domain correlation.
type Pattern struct {
	Type         string             `json:"type"`
	Description  string             `json:"description"`
	Confidence   float64            `json:"confidence"`
	Domains      []Domain           `json:"domains"`
	Correlations map[string]float64 `json:"correlations"`
}

// Recommendation is one personalized development suggestion.
type Recommendation struct {
	Domain          Domain   `json:"domain"`
	Action          string   `json:"action"`
	Priority        Priority `json:"priority"`
	Rationale       string   `json:"rationale"`
	EstimatedImpact float64  `json:"estimatedImpact"`
}

// Trajectory is the predicted growth direction with a confidence level in
// [0,1] and a predicted score in [0,100].
type Trajectory struct {
	Trend           Trend   `json:"trend"`
	PredictedScore  float64 `json:"predictedScore"`
	ConfidenceLevel float64 `json:"confidenceLevel"`
}

// Snapshot is the full consciousness state derived for one user at one
// moment.
type Snapshot struct {
	UserID          id.UserID    `json:"userId"`
	Timestamp       time.Time    `json:"timestamp"`
	OverallScore    float64      `json:"overallConsciousnessScore"`
	DomainScores    DomainScores `json:"domainScores"`
	Insights        []string     `json:"insights"`
	Recommendations []string     `json:"recommendations"`
	Trajectory      Trajectory   `json:"growthTrajectory"`
}

// RecentActivity is the dashboard's timestamps block.
type RecentActivity struct {
	LastSymbolUpdate *time.Time `json:"lastSymbolUpdate"`
	LastDreamEntry   *time.Time `json:"lastDreamEntry"`
	LastFlowSession  *time.Time `json:"lastFlowSession"`
	MeditationStreak int        `json:"meditationStreak"`
}

// Summary is the condensed dashboard view of a profile.
type Summary struct {
	OverallScore    float64        `json:"overallScore"`
	DomainBreakdown DomainScores   `json:"domainBreakdown"`
	RecentActivity  RecentActivity `json:"recentActivity"`
	GrowthTrend     Trend          `json:"growthTrend"`
	KeyInsights     []string       `json:"keyInsights"`
}
