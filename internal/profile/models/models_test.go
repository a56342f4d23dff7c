package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "noesis/pkg/domain"
	dErrors "noesis/pkg/domain-errors"
)

func TestNewProfile(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("builds defaults and validates", func(t *testing.T) {
		p, err := NewProfile(id.NewUserID(), "seeker@example.com", now)
		require.NoError(t, err)

		assert.Equal(t, "seeker@example.com", p.Email)
		assert.Equal(t, now, p.CreatedAt)
		assert.Equal(t, now, p.UpdatedAt)
		assert.Equal(t, PrivacyPrivate, p.Preferences.PrivacyLevel)
		assert.NotNil(t, p.ConsciousnessData.SymbolRecognition.PersonalSymbolDictionary)
		assert.NotNil(t, p.ConsciousnessData.FlowStates.PeakPerformanceMetrics)
		assert.True(t, p.Preferences.NotificationSettings["daily_insights"])
	})

	t.Run("rejects email without @", func(t *testing.T) {
		_, err := NewProfile(id.NewUserID(), "not-an-email", now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestProfileValidate(t *testing.T) {
	now := time.Now()

	valid := func() *Profile {
		p, err := NewProfile(id.NewUserID(), "seeker@example.com", now)
		require.NoError(t, err)
		return p
	}

	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"score above 100", func(p *Profile) { p.ConsciousnessData.SymbolRecognition.MeaningDevelopmentScore = 101 }},
		{"negative score", func(p *Profile) { p.ConsciousnessData.DreamAnalysis.SubconsciousIntegrationScore = -1 }},
		{"competence out of range", func(p *Profile) { p.ConsciousnessData.SkillDevelopment.CompetenceLevel = 250 }},
		{"awareness out of range", func(p *Profile) { p.ConsciousnessData.MindfulnessPractice.PresentMomentAwareness = 100.5 }},
		{"negative flow frequency", func(p *Profile) { p.ConsciousnessData.FlowStates.OptimalExperienceFrequency = -0.1 }},
		{"negative meditation streak", func(p *Profile) { p.ConsciousnessData.MindfulnessPractice.MeditationStreak = -3 }},
		{"unknown privacy level", func(p *Profile) { p.Preferences.PrivacyLevel = "secret" }},
		{"updatedAt before createdAt", func(p *Profile) { p.UpdatedAt = p.CreatedAt.Add(-time.Hour) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}

	t.Run("boundary scores are valid", func(t *testing.T) {
		p := valid()
		p.ConsciousnessData.SymbolRecognition.MeaningDevelopmentScore = 100
		p.ConsciousnessData.DreamAnalysis.SubconsciousIntegrationScore = 0
		require.NoError(t, p.Validate())
	})
}

func TestProfileClone(t *testing.T) {
	now := time.Now()
	p, err := NewProfile(id.NewUserID(), "seeker@example.com", now)
	require.NoError(t, err)
	p.ConsciousnessData.SymbolRecognition.PersonalSymbolDictionary["tree"] = "growth"
	p.ConsciousnessData.DreamAnalysis.DreamPatterns = []string{"water_flowing"}

	clone := p.Clone()
	clone.ConsciousnessData.SymbolRecognition.PersonalSymbolDictionary["moon"] = "intuition"
	clone.ConsciousnessData.DreamAnalysis.DreamPatterns[0] = "fire_rising"

	assert.NotContains(t, p.ConsciousnessData.SymbolRecognition.PersonalSymbolDictionary, "moon")
	assert.Equal(t, "water_flowing", p.ConsciousnessData.DreamAnalysis.DreamPatterns[0])
}
