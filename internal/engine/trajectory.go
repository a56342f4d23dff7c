package engine

import (
	"math"
	"time"

	"noesis/internal/profile/models"
)

// daysWithoutDreamDefault stands in for "never recorded a dream": treated as
// long enough ago to trip the inactivity rule.
const daysWithoutDreamDefault = 30

// PredictTrajectory estimates the growth direction from current practice
// signals. Rules apply in order:
//
//  1. Baseline: stable trend, predicted score = overall, confidence 0.7.
//  2. Meditation streak over 10 days: ascending, +5 score, confidence 0.85.
//  3. More than one active skill tree: +3 score, +0.05 confidence.
//  4. No dream entry for over 14 days: trend steps down one level
//     (ascending becomes stable, anything else descending), -2 score,
//     -0.1 confidence.
//
// The predicted score is clamped to [0,100] and confidence to [0,1].
func PredictTrajectory(cd models.ConsciousnessData, now time.Time) Trajectory {
	overall := Overall(Scores(cd))

	trend := TrendStable
	predicted := overall
	confidence := 0.7

	if cd.MindfulnessPractice.MeditationStreak > 10 {
		trend = TrendAscending
		predicted += 5
		confidence = 0.85
	}

	if len(cd.SkillDevelopment.ActiveSkillTrees) > 1 {
		predicted += 3
		confidence += 0.05
	}

	daysSinceLastDream := daysWithoutDreamDefault
	if cd.DreamAnalysis.LastDreamEntry != nil {
		daysSinceLastDream = int(now.Sub(*cd.DreamAnalysis.LastDreamEntry).Hours() / 24)
	}
	if daysSinceLastDream > 14 {
		if trend == TrendAscending {
			trend = TrendStable
		} else {
			trend = TrendDescending
		}
		predicted -= 2
		confidence -= 0.1
	}

	return Trajectory{
		Trend:           trend,
		PredictedScore:  math.Max(0, math.Min(100, math.Round(predicted))),
		ConfidenceLevel: math.Max(0, math.Min(1, confidence)),
	}
}
