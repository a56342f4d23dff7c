package models

import "time"

// ProfileUpdate is a partial update. Presence is signaled by non-nil fields:
// a nil pointer or nil map/slice means "leave the existing value alone".
//
// Section merges are one level deep. Map- and slice-valued fields present in
// an update replace the stored value wholesale; they are not unioned or
// appended. A one-entry dictionary update therefore discards previously
// accumulated entries for that field.
type ProfileUpdate struct {
	Email             *string                  `json:"email,omitempty"`
	Preferences       *Preferences             `json:"preferences,omitempty"`
	ConsciousnessData *ConsciousnessDataUpdate `json:"consciousnessData,omitempty"`
}

// IsEmpty reports whether the update carries no changes. An empty update is
// still a valid merge: the profile's UpdatedAt advances.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Email == nil && u.Preferences == nil && u.ConsciousnessData == nil
}

type ConsciousnessDataUpdate struct {
	SymbolRecognition   *SymbolRecognitionUpdate   `json:"symbolRecognition,omitempty"`
	DreamAnalysis       *DreamAnalysisUpdate       `json:"dreamAnalysis,omitempty"`
	SkillDevelopment    *SkillDevelopmentUpdate    `json:"skillDevelopment,omitempty"`
	FlowStates          *FlowStatesUpdate          `json:"flowStates,omitempty"`
	MindfulnessPractice *MindfulnessPracticeUpdate `json:"mindfulnessPractice,omitempty"`
}

type SymbolRecognitionUpdate struct {
	PersonalSymbolDictionary map[string]string `json:"personalSymbolDictionary,omitempty"`
	MeaningDevelopmentScore  *float64          `json:"meaningDevelopmentScore,omitempty"`
	LastUpdated              *time.Time        `json:"lastUpdated,omitempty"`
}

type DreamAnalysisUpdate struct {
	DreamPatterns                []string   `json:"dreamPatterns,omitempty"`
	SubconsciousIntegrationScore *float64   `json:"subconsciousIntegrationScore,omitempty"`
	LastDreamEntry               *time.Time `json:"lastDreamEntry,omitempty"`
}

type SkillDevelopmentUpdate struct {
	MasteryAreas     []string `json:"masteryAreas,omitempty"`
	CompetenceLevel  *float64 `json:"competenceLevel,omitempty"`
	ActiveSkillTrees []string `json:"activeSkillTrees,omitempty"`
}

type FlowStatesUpdate struct {
	OptimalExperienceFrequency *float64           `json:"optimalExperienceFrequency,omitempty"`
	PeakPerformanceMetrics     map[string]float64 `json:"peakPerformanceMetrics,omitempty"`
	LastFlowSession            *time.Time         `json:"lastFlowSession,omitempty"`
}

type MindfulnessPracticeUpdate struct {
	PresentMomentAwareness *float64    `json:"presentMomentAwareness,omitempty"`
	MeditationStreak       *int        `json:"meditationStreak,omitempty"`
	PracticeHistory        []time.Time `json:"practiceHistory,omitempty"`
}
