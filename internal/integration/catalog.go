package integration

// CatalogEntry describes one connectable source system for the integrations
// listing.
type CatalogEntry struct {
	ID          SourceSystem `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	DataTypes   []string     `json:"dataTypes"`
}

// Catalog returns the static listing of available integrations. Data types
// cover what each source currently pushes; entries the mapper ignores are
// accepted on the wire and produce a recorded no-op.
func Catalog() []CatalogEntry {
	return []CatalogEntry{
		{
			ID:          SourceSymbolQuest,
			Name:        "Symbol Quest",
			Description: "Symbol interpretation and meaning discovery",
			DataTypes:   []string{"symbol_interpretation", "symbol_analysis"},
		},
		{
			ID:          SourceDreamJournalPro,
			Name:        "Dream Journal Pro",
			Description: "Dream analysis and pattern recognition",
			DataTypes:   []string{"dream_pattern", "dream_analysis"},
		},
		{
			ID:          SourceSkilltree,
			Name:        "Skilltree Platform",
			Description: "Skill visualization and progression",
			DataTypes:   []string{"skill_mastery", "skill_progress"},
		},
		{
			ID:          SourceMindfulCode,
			Name:        "Mindful Code",
			Description: "Flow state detection and optimization",
			DataTypes:   []string{"flow_session", "productivity_metrics"},
		},
		{
			ID:          SourceUserProgression,
			Name:        "User Progression",
			Description: "Mindfulness practice and meditation tracking",
			DataTypes:   []string{"mindfulness_session"},
		},
	}
}
