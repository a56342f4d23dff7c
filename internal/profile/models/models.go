package models

import (
	"fmt"
	"strings"
	"time"

	id "noesis/pkg/domain"
	dErrors "noesis/pkg/domain-errors"
)

// PrivacyLevel controls how a profile may be used outside the owner's own
// dashboard.
type PrivacyLevel string

const (
	PrivacyPrivate           PrivacyLevel = "private"
	PrivacyAnonymousResearch PrivacyLevel = "anonymous_research"
	PrivacyPublic            PrivacyLevel = "public"
)

func (p PrivacyLevel) IsValid() bool {
	switch p {
	case PrivacyPrivate, PrivacyAnonymousResearch, PrivacyPublic:
		return true
	}
	return false
}

// Profile is the unified per-user record aggregating all development domains.
//
// Invariants:
//   - ID is immutable after construction
//   - Email contains an "@"
//   - Every domain score lies in [0,100]
//   - UpdatedAt >= CreatedAt, bumped on every successful merge
type Profile struct {
	ID                id.UserID         `json:"id"`
	Email             string            `json:"email"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
	ConsciousnessData ConsciousnessData `json:"consciousnessData"`
	Preferences       Preferences       `json:"preferences"`
}

// ConsciousnessData groups the five fixed domain sections.
type ConsciousnessData struct {
	SymbolRecognition   SymbolRecognition   `json:"symbolRecognition"`
	DreamAnalysis       DreamAnalysis       `json:"dreamAnalysis"`
	SkillDevelopment    SkillDevelopment    `json:"skillDevelopment"`
	FlowStates          FlowStates          `json:"flowStates"`
	MindfulnessPractice MindfulnessPractice `json:"mindfulnessPractice"`
}

type SymbolRecognition struct {
	PersonalSymbolDictionary map[string]string `json:"personalSymbolDictionary"`
	MeaningDevelopmentScore  float64           `json:"meaningDevelopmentScore"`
	LastUpdated              time.Time         `json:"lastUpdated"`
}

type DreamAnalysis struct {
	DreamPatterns                []string   `json:"dreamPatterns"`
	SubconsciousIntegrationScore float64    `json:"subconsciousIntegrationScore"`
	LastDreamEntry               *time.Time `json:"lastDreamEntry,omitempty"`
}

type SkillDevelopment struct {
	MasteryAreas     []string `json:"masteryAreas"`
	CompetenceLevel  float64  `json:"competenceLevel"`
	ActiveSkillTrees []string `json:"activeSkillTrees"`
}

type FlowStates struct {
	OptimalExperienceFrequency float64            `json:"optimalExperienceFrequency"`
	PeakPerformanceMetrics     map[string]float64 `json:"peakPerformanceMetrics"`
	LastFlowSession            *time.Time         `json:"lastFlowSession,omitempty"`
}

type MindfulnessPractice struct {
	PresentMomentAwareness float64     `json:"presentMomentAwareness"`
	MeditationStreak       int         `json:"meditationStreak"`
	PracticeHistory        []time.Time `json:"practiceHistory"`
}

type Preferences struct {
	PrivacyLevel           PrivacyLevel    `json:"privacyLevel"`
	NotificationSettings   map[string]bool `json:"notificationSettings"`
	IntegrationPreferences []string        `json:"integrationPreferences"`
}

// NewProfile constructs a profile with default section data and validates it.
// Construction and validation are colocated so an invalid profile can never
// enter the store.
func NewProfile(userID id.UserID, email string, now time.Time) (*Profile, error) {
	p := &Profile{
		ID:        userID,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
		ConsciousnessData: ConsciousnessData{
			SymbolRecognition: SymbolRecognition{
				PersonalSymbolDictionary: map[string]string{},
				LastUpdated:              now,
			},
			DreamAnalysis: DreamAnalysis{
				DreamPatterns: []string{},
			},
			SkillDevelopment: SkillDevelopment{
				MasteryAreas:     []string{},
				ActiveSkillTrees: []string{},
			},
			FlowStates: FlowStates{
				PeakPerformanceMetrics: map[string]float64{},
			},
			MindfulnessPractice: MindfulnessPractice{
				PracticeHistory: []time.Time{},
			},
		},
		Preferences: Preferences{
			PrivacyLevel: PrivacyPrivate,
			NotificationSettings: map[string]bool{
				"daily_insights":         true,
				"weekly_reports":         true,
				"milestone_celebrations": true,
			},
			IntegrationPreferences: []string{},
		},
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces the profile invariants, failing on the first violation.
// The same check runs at creation and after every merge.
func (p *Profile) Validate() error {
	if !strings.Contains(p.Email, "@") {
		return dErrors.New(dErrors.CodeValidation, "email must contain @")
	}
	if p.ID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "profile id is required")
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		return dErrors.New(dErrors.CodeValidation, "updatedAt must not precede createdAt")
	}
	if !p.Preferences.PrivacyLevel.IsValid() {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown privacy level %q", p.Preferences.PrivacyLevel))
	}

	cd := p.ConsciousnessData
	if err := scoreInRange("symbolRecognition.meaningDevelopmentScore", cd.SymbolRecognition.MeaningDevelopmentScore); err != nil {
		return err
	}
	if err := scoreInRange("dreamAnalysis.subconsciousIntegrationScore", cd.DreamAnalysis.SubconsciousIntegrationScore); err != nil {
		return err
	}
	if err := scoreInRange("skillDevelopment.competenceLevel", cd.SkillDevelopment.CompetenceLevel); err != nil {
		return err
	}
	if err := scoreInRange("mindfulnessPractice.presentMomentAwareness", cd.MindfulnessPractice.PresentMomentAwareness); err != nil {
		return err
	}
	if cd.FlowStates.OptimalExperienceFrequency < 0 {
		return dErrors.New(dErrors.CodeValidation, "flowStates.optimalExperienceFrequency must not be negative")
	}
	if cd.MindfulnessPractice.MeditationStreak < 0 {
		return dErrors.New(dErrors.CodeValidation, "mindfulnessPractice.meditationStreak must not be negative")
	}
	return nil
}

func scoreInRange(field string, score float64) error {
	if score < 0 || score > 100 {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be between 0 and 100", field))
	}
	return nil
}

// Clone returns a deep copy so callers can mutate a candidate without touching
// the stored value.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.ConsciousnessData.SymbolRecognition.PersonalSymbolDictionary = copyStringMap(p.ConsciousnessData.SymbolRecognition.PersonalSymbolDictionary)
	cp.ConsciousnessData.DreamAnalysis.DreamPatterns = copySlice(p.ConsciousnessData.DreamAnalysis.DreamPatterns)
	cp.ConsciousnessData.DreamAnalysis.LastDreamEntry = copyTime(p.ConsciousnessData.DreamAnalysis.LastDreamEntry)
	cp.ConsciousnessData.SkillDevelopment.MasteryAreas = copySlice(p.ConsciousnessData.SkillDevelopment.MasteryAreas)
	cp.ConsciousnessData.SkillDevelopment.ActiveSkillTrees = copySlice(p.ConsciousnessData.SkillDevelopment.ActiveSkillTrees)
	cp.ConsciousnessData.FlowStates.PeakPerformanceMetrics = copyFloatMap(p.ConsciousnessData.FlowStates.PeakPerformanceMetrics)
	cp.ConsciousnessData.FlowStates.LastFlowSession = copyTime(p.ConsciousnessData.FlowStates.LastFlowSession)
	cp.ConsciousnessData.MindfulnessPractice.PracticeHistory = copySlice(p.ConsciousnessData.MindfulnessPractice.PracticeHistory)
	cp.Preferences.NotificationSettings = copyBoolMap(p.Preferences.NotificationSettings)
	cp.Preferences.IntegrationPreferences = copySlice(p.Preferences.IntegrationPreferences)
	return &cp
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyFloatMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyBoolMap(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copySlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append([]T{}, s...)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
