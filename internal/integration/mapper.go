package integration

import (
	"encoding/json"
	"math"
	"time"

	"noesis/internal/profile/models"
)

// Mapper translates an event into the minimal partial update for exactly one
// consciousness section, selected by source system. An unknown
// (sourceSystem, dataType) pair or a payload missing its required keys maps
// to an empty update; the resulting no-op merge still advances the profile's
// UpdatedAt.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// Map builds the partial update for an event.
func (m *Mapper) Map(event Event) models.ProfileUpdate {
	switch event.SourceSystem {
	case SourceSymbolQuest:
		if event.DataType == "symbol_interpretation" {
			return mapSymbolInterpretation(event)
		}
	case SourceDreamJournalPro:
		if event.DataType == "dream_pattern" {
			return mapDreamPattern(event)
		}
	case SourceSkilltree:
		if event.DataType == "skill_mastery" {
			return mapSkillMastery(event)
		}
	case SourceMindfulCode:
		if event.DataType == "flow_session" {
			return mapFlowSession(event)
		}
	case SourceUserProgression:
		if event.DataType == "mindfulness_session" {
			return mapMindfulnessSession(event)
		}
	}
	return models.ProfileUpdate{}
}

func mapSymbolInterpretation(event Event) models.ProfileUpdate {
	symbol := payloadString(event.Payload, "symbol")
	interpretation := payloadString(event.Payload, "interpretation")
	if symbol == "" || interpretation == "" {
		return models.ProfileUpdate{}
	}

	score := math.Round(payloadNumber(event.Payload, "confidence", 0.5) * 100)
	ts := event.Timestamp
	return sectionUpdate(models.ConsciousnessDataUpdate{
		SymbolRecognition: &models.SymbolRecognitionUpdate{
			PersonalSymbolDictionary: map[string]string{symbol: interpretation},
			MeaningDevelopmentScore:  &score,
			LastUpdated:              &ts,
		},
	})
}

func mapDreamPattern(event Event) models.ProfileUpdate {
	pattern := payloadString(event.Payload, "pattern")
	if pattern == "" {
		return models.ProfileUpdate{}
	}

	score := math.Min(payloadNumber(event.Payload, "frequency", 1)*15, 100)
	ts := event.Timestamp
	return sectionUpdate(models.ConsciousnessDataUpdate{
		DreamAnalysis: &models.DreamAnalysisUpdate{
			DreamPatterns:                []string{pattern},
			SubconsciousIntegrationScore: &score,
			LastDreamEntry:               &ts,
		},
	})
}

func mapSkillMastery(event Event) models.ProfileUpdate {
	skill := payloadString(event.Payload, "skill")
	if skill == "" {
		return models.ProfileUpdate{}
	}

	level := payloadNumber(event.Payload, "level", 0)
	category := payloadString(event.Payload, "category")
	if category == "" {
		category = "general"
	}
	return sectionUpdate(models.ConsciousnessDataUpdate{
		SkillDevelopment: &models.SkillDevelopmentUpdate{
			MasteryAreas:     []string{skill},
			CompetenceLevel:  &level,
			ActiveSkillTrees: []string{category},
		},
	})
}

func mapFlowSession(event Event) models.ProfileUpdate {
	activity := payloadString(event.Payload, "activity")
	if activity == "" {
		return models.ProfileUpdate{}
	}

	frequency := payloadNumber(event.Payload, "frequency", 1)
	performance := payloadNumber(event.Payload, "performance", 3.0)
	ts := event.Timestamp
	return sectionUpdate(models.ConsciousnessDataUpdate{
		FlowStates: &models.FlowStatesUpdate{
			OptimalExperienceFrequency: &frequency,
			PeakPerformanceMetrics:     map[string]float64{activity: performance},
			LastFlowSession:            &ts,
		},
	})
}

func mapMindfulnessSession(event Event) models.ProfileUpdate {
	awareness := payloadNumber(event.Payload, "awareness_score", 0)
	streak := int(payloadNumber(event.Payload, "streak", 0))
	return sectionUpdate(models.ConsciousnessDataUpdate{
		MindfulnessPractice: &models.MindfulnessPracticeUpdate{
			PresentMomentAwareness: &awareness,
			MeditationStreak:       &streak,
			PracticeHistory:        []time.Time{event.Timestamp},
		},
	})
}

func sectionUpdate(cd models.ConsciousnessDataUpdate) models.ProfileUpdate {
	return models.ProfileUpdate{ConsciousnessData: &cd}
}

func payloadString(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

// payloadNumber reads a numeric payload value, tolerating the types JSON
// decoding produces. Missing or non-numeric values yield the default.
func payloadNumber(payload map[string]any, key string, fallback float64) float64 {
	switch v := payload[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return fallback
}
