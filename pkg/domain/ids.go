package domain

import (
	"github.com/google/uuid"

	dErrors "noesis/pkg/domain-errors"
)

// UserID is a typed UUID for profile owners. The distinct type keeps arbitrary
// strings from flowing into store and service signatures unvalidated.
type UserID uuid.UUID

// ParseUserID validates and returns a UserID. IDs must be valid, non-nil UUIDs;
// malformed identifiers are a validation failure at the trust boundary.
func ParseUserID(s string) (UserID, error) {
	if s == "" {
		return UserID{}, dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, dErrors.New(dErrors.CodeInvalidInput, "user id must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return UserID{}, dErrors.New(dErrors.CodeInvalidInput, "user id must not be the nil UUID")
	}
	return UserID(parsed), nil
}

// NewUserID returns a freshly generated UserID.
func NewUserID() UserID {
	return UserID(uuid.New())
}

func (id UserID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the ID is the zero UUID.
func (id UserID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler so UserID renders as the
// canonical UUID string in JSON payloads.
func (id UserID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
