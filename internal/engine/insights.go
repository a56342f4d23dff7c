package engine

import (
	"fmt"
	"time"

	"noesis/internal/profile/models"
)

// SnapshotInsights builds the narrative insight lines for a full state
// snapshot.
func SnapshotInsights(cd models.ConsciousnessData, scores DomainScores) []string {
	insights := []string{}

	domain, score := Strongest(scores)
	insights = append(insights, fmt.Sprintf("Your strongest consciousness domain is %s with a score of %v", domain.DisplayName(), score))

	if streak := cd.MindfulnessPractice.MeditationStreak; streak > 7 {
		insights = append(insights, fmt.Sprintf("Strong mindfulness practice with %d-day meditation streak", streak))
	}

	if len(cd.SymbolRecognition.PersonalSymbolDictionary) > 0 && len(cd.DreamAnalysis.DreamPatterns) > 0 {
		insights = append(insights, "Active integration between symbolic awareness and dream analysis detected")
	}

	return insights
}

// KeyInsights builds the shorter insight list shown on the dashboard.
func KeyInsights(cd models.ConsciousnessData, scores DomainScores) []string {
	insights := []string{}

	domain, score := Strongest(scores)
	insights = append(insights, fmt.Sprintf("Strongest development area: %s (%v)", domain.DisplayName(), score))

	if streak := cd.MindfulnessPractice.MeditationStreak; streak > 0 {
		insights = append(insights, fmt.Sprintf("Current mindfulness streak: %d days", streak))
	}

	if n := len(cd.SymbolRecognition.PersonalSymbolDictionary); n > 0 {
		insights = append(insights, fmt.Sprintf("Personal symbol dictionary contains %d meaningful symbols", n))
	}

	return insights
}

// GrowthTrend is the dashboard's coarse trend heuristic: a week-plus
// meditation streak with a healthy overall score reads ascending, a dream
// entry within the last week with a passable score reads stable, and
// everything else reads descending.
func GrowthTrend(cd models.ConsciousnessData, overall float64, now time.Time) Trend {
	if cd.MindfulnessPractice.MeditationStreak > 7 && overall > 60 {
		return TrendAscending
	}

	last := cd.DreamAnalysis.LastDreamEntry
	if last != nil && now.Sub(*last) < 7*24*time.Hour && overall > 40 {
		return TrendStable
	}

	return TrendDescending
}

// ExtractRecentActivity pulls the dashboard's activity timestamps from a
// profile.
func ExtractRecentActivity(cd models.ConsciousnessData) RecentActivity {
	lastSymbol := cd.SymbolRecognition.LastUpdated
	return RecentActivity{
		LastSymbolUpdate: &lastSymbol,
		LastDreamEntry:   cd.DreamAnalysis.LastDreamEntry,
		LastFlowSession:  cd.FlowStates.LastFlowSession,
		MeditationStreak: cd.MindfulnessPractice.MeditationStreak,
	}
}
