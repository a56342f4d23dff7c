// Package audit records the per-user sync activity trail. Every integration
// sync attempt and profile lifecycle change is appended as an event, listable
// through the activity endpoint and optionally mirrored to Kafka for
// downstream consumers.
package audit

import (
	"time"

	"github.com/google/uuid"

	id "noesis/pkg/domain"
)

// Action labels what happened.
type Action string

const (
	ActionProfileCreated Action = "profile_created"
	ActionProfileDeleted Action = "profile_deleted"
	ActionSyncApplied    Action = "sync_applied"
	ActionSyncNoop       Action = "sync_noop"
)

// Event is one entry in a user's activity trail.
type Event struct {
	ID       uuid.UUID         `json:"id"`
	UserID   id.UserID         `json:"userId"`
	Action   Action            `json:"action"`
	Source   string            `json:"source,omitempty"`
	DataType string            `json:"dataType,omitempty"`
	At       time.Time         `json:"at"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
