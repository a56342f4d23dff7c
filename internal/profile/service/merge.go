package service

import (
	"time"

	"noesis/internal/profile/models"
)

// applyUpdate merges a partial update into a profile in place. The merge is
// one level deep per section: scalar pointers overwrite when non-nil, and
// map- or slice-valued fields present in the update replace the stored value
// wholesale rather than being unioned or appended. ID and CreatedAt are never
// touched; UpdatedAt is set to now even when the update is empty.
func applyUpdate(p *models.Profile, update models.ProfileUpdate, now time.Time) {
	if update.Email != nil {
		p.Email = *update.Email
	}
	if update.Preferences != nil {
		p.Preferences = *update.Preferences
	}
	if update.ConsciousnessData != nil {
		applyConsciousnessUpdate(&p.ConsciousnessData, update.ConsciousnessData)
	}
	p.UpdatedAt = now
}

func applyConsciousnessUpdate(cd *models.ConsciousnessData, update *models.ConsciousnessDataUpdate) {
	if u := update.SymbolRecognition; u != nil {
		if u.PersonalSymbolDictionary != nil {
			cd.SymbolRecognition.PersonalSymbolDictionary = u.PersonalSymbolDictionary
		}
		if u.MeaningDevelopmentScore != nil {
			cd.SymbolRecognition.MeaningDevelopmentScore = *u.MeaningDevelopmentScore
		}
		if u.LastUpdated != nil {
			cd.SymbolRecognition.LastUpdated = *u.LastUpdated
		}
	}
	if u := update.DreamAnalysis; u != nil {
		if u.DreamPatterns != nil {
			cd.DreamAnalysis.DreamPatterns = u.DreamPatterns
		}
		if u.SubconsciousIntegrationScore != nil {
			cd.DreamAnalysis.SubconsciousIntegrationScore = *u.SubconsciousIntegrationScore
		}
		if u.LastDreamEntry != nil {
			cd.DreamAnalysis.LastDreamEntry = u.LastDreamEntry
		}
	}
	if u := update.SkillDevelopment; u != nil {
		if u.MasteryAreas != nil {
			cd.SkillDevelopment.MasteryAreas = u.MasteryAreas
		}
		if u.CompetenceLevel != nil {
			cd.SkillDevelopment.CompetenceLevel = *u.CompetenceLevel
		}
		if u.ActiveSkillTrees != nil {
			cd.SkillDevelopment.ActiveSkillTrees = u.ActiveSkillTrees
		}
	}
	if u := update.FlowStates; u != nil {
		if u.OptimalExperienceFrequency != nil {
			cd.FlowStates.OptimalExperienceFrequency = *u.OptimalExperienceFrequency
		}
		if u.PeakPerformanceMetrics != nil {
			cd.FlowStates.PeakPerformanceMetrics = u.PeakPerformanceMetrics
		}
		if u.LastFlowSession != nil {
			cd.FlowStates.LastFlowSession = u.LastFlowSession
		}
	}
	if u := update.MindfulnessPractice; u != nil {
		if u.PresentMomentAwareness != nil {
			cd.MindfulnessPractice.PresentMomentAwareness = *u.PresentMomentAwareness
		}
		if u.MeditationStreak != nil {
			cd.MindfulnessPractice.MeditationStreak = *u.MeditationStreak
		}
		if u.PracticeHistory != nil {
			cd.MindfulnessPractice.PracticeHistory = u.PracticeHistory
		}
	}
}
