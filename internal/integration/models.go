// Package integration translates events pushed by external development tools
// into partial profile updates.
package integration

import (
	"time"

	id "noesis/pkg/domain"
)

// SourceSystem is the closed set of tools that may push events.
type SourceSystem string

const (
	SourceSymbolQuest     SourceSystem = "symbol_quest"
	SourceDreamJournalPro SourceSystem = "dream_journal_pro"
	SourceSkilltree       SourceSystem = "skilltree_platform"
	SourceMindfulCode     SourceSystem = "mindful_code"
	SourceUserProgression SourceSystem = "user_progression"
)

func (s SourceSystem) IsValid() bool {
	switch s {
	case SourceSymbolQuest, SourceDreamJournalPro, SourceSkilltree, SourceMindfulCode, SourceUserProgression:
		return true
	}
	return false
}

// SyncStatus tracks an event through the sync pipeline: pending on receipt,
// synced once the mapped update lands, error when the merge is rejected.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
	SyncError   SyncStatus = "error"
)

// Event is one unit of user activity reported by an external tool. Payload is
// untyped by contract: each source system ships its own keys and the mapper
// tolerates whatever shape arrives.
type Event struct {
	SourceSystem SourceSystem   `json:"sourceSystem"`
	DataType     string         `json:"dataType"`
	Payload      map[string]any `json:"payload"`
	Timestamp    time.Time      `json:"timestamp"`
	UserID       id.UserID      `json:"userId"`
	SyncStatus   SyncStatus     `json:"syncStatus"`
}
