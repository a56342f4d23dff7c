// Package postgres provides the durable profile store. Profiles are stored as
// jsonb documents: the merge semantics operate on whole snapshots, so a
// document column avoids a lossy relational mapping while keeping the store
// swappable with the in-memory implementation.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"noesis/internal/profile/models"
	id "noesis/pkg/domain"
	"noesis/pkg/platform/sentinel"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
    id         UUID PRIMARY KEY,
    doc        JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`

type PostgresStore struct {
	pool *pgxpool.Pool
}

// New creates the store and ensures the schema exists.
func New(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure profiles schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Create(ctx context.Context, profile *models.Profile) error {
	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (id, doc, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		profile.ID.String(), doc, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.Profile, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM profiles WHERE id = $1`, userID.String(),
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select profile: %w", err)
	}
	return unmarshalProfile(doc)
}

// Update serializes same-id writers with SELECT ... FOR UPDATE: the row lock
// is held across the apply callback, mirroring the in-memory store's
// mutex-guarded read-modify-write.
func (s *PostgresStore) Update(ctx context.Context, userID id.UserID, apply func(*models.Profile) error) (*models.Profile, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var doc []byte
	err = tx.QueryRow(ctx,
		`SELECT doc FROM profiles WHERE id = $1 FOR UPDATE`, userID.String(),
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select profile for update: %w", err)
	}

	profile, err := unmarshalProfile(doc)
	if err != nil {
		return nil, err
	}
	if err := apply(profile); err != nil {
		return nil, err
	}

	updated, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE profiles SET doc = $2, updated_at = $3 WHERE id = $1`,
		userID.String(), updated, profile.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return profile, nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID id.UserID) error {
	// Idempotent: zero rows affected is still success.
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM profiles WHERE id = $1`, userID.String(),
	); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func unmarshalProfile(doc []byte) (*models.Profile, error) {
	var profile models.Profile
	if err := json.Unmarshal(doc, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &profile, nil
}
