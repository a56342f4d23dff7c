// Package service orchestrates profile lifecycle, partial merges, and
// integration sync. All writes go through the store's Update callback so the
// read-merge-validate-write cycle runs under the store's per-key lock.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"noesis/internal/audit"
	"noesis/internal/integration"
	"noesis/internal/profile/metrics"
	"noesis/internal/profile/models"
	"noesis/internal/profile/store"
	id "noesis/pkg/domain"
	dErrors "noesis/pkg/domain-errors"
	"noesis/pkg/platform/sentinel"
	"noesis/pkg/requestcontext"
)

// Mapper translates an integration event into a partial update.
type Mapper interface {
	Map(event integration.Event) models.ProfileUpdate
}

// AuditPublisher records activity trail events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
	List(ctx context.Context, userID id.UserID) ([]audit.Event, error)
}

// Service manages profile lifecycle and merges.
type Service struct {
	profiles store.Store
	mapper   Mapper
	logger   *slog.Logger
	auditor  AuditPublisher
	metrics  *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(profiles store.Store, mapper Mapper, opts ...Option) *Service {
	s := &Service{profiles: profiles, mapper: mapper, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new profile with default section data. When userID is
// nil a fresh id is generated; a caller-supplied id that already exists is a
// conflict.
func (s *Service) Create(ctx context.Context, userID id.UserID, email string) (*models.Profile, error) {
	email = strings.TrimSpace(email)
	if userID.IsNil() {
		userID = id.NewUserID()
	}

	p, err := models.NewProfile(userID, email, requestcontext.Now(ctx).UTC())
	if err != nil {
		return nil, err
	}

	if err := s.profiles.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "profile already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create profile")
	}

	s.logAudit(ctx, audit.Event{UserID: p.ID, Action: audit.ActionProfileCreated})
	s.incrementCreated()
	s.logger.Info("profile created", "user_id", p.ID, "request_id", requestcontext.RequestID(ctx))
	return p, nil
}

// Get returns a profile by id.
func (s *Service) Get(ctx context.Context, userID id.UserID) (*models.Profile, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
	return p, nil
}

// Update merges a partial update into an existing profile. The merged result
// is validated before the write; a validation failure leaves the stored
// profile untouched.
func (s *Service) Update(ctx context.Context, userID id.UserID, update models.ProfileUpdate) (*models.Profile, error) {
	now := requestcontext.Now(ctx).UTC()

	p, err := s.profiles.Update(ctx, userID, func(current *models.Profile) error {
		applyUpdate(current, update, now)
		if err := current.Validate(); err != nil {
			s.incrementMergeRejected()
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "profile not found")
		}
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update profile")
	}
	return p, nil
}

// Delete removes a profile. Deleting an absent profile succeeds silently.
func (s *Service) Delete(ctx context.Context, userID id.UserID) error {
	if err := s.profiles.Delete(ctx, userID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete profile")
	}
	s.logAudit(ctx, audit.Event{UserID: userID, Action: audit.ActionProfileDeleted})
	s.incrementDeleted()
	return nil
}

// Sync maps an integration event to a partial update and merges it. Events
// the mapper cannot place still bump UpdatedAt and are recorded as no-ops,
// so an integration can confirm delivery without changing any section.
// UserID, Timestamp, and SyncStatus are server-assigned; whatever the caller
// put in those fields is overwritten. The event enters as pending and moves
// to synced once the merge lands, or error when it is rejected.
func (s *Service) Sync(ctx context.Context, userID id.UserID, event integration.Event) (*models.Profile, error) {
	start := time.Now()
	defer s.observeSync(start)

	if !event.SourceSystem.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown source system")
	}
	event.UserID = userID
	event.Timestamp = requestcontext.Now(ctx).UTC()
	event.SyncStatus = integration.SyncPending

	update := s.mapper.Map(event)
	p, err := s.Update(ctx, userID, update)
	if err != nil {
		event.SyncStatus = integration.SyncError
		s.logger.Warn("sync rejected",
			"user_id", userID,
			"source", event.SourceSystem,
			"data_type", event.DataType,
			"sync_status", event.SyncStatus,
			"request_id", requestcontext.RequestID(ctx))
		return nil, err
	}
	event.SyncStatus = integration.SyncSynced

	action := audit.ActionSyncApplied
	if update.IsEmpty() {
		action = audit.ActionSyncNoop
		s.incrementSyncNoop()
	} else {
		s.incrementSyncApplied()
	}
	s.logAudit(ctx, audit.Event{
		UserID:   userID,
		Action:   action,
		Source:   string(event.SourceSystem),
		DataType: event.DataType,
		Metadata: map[string]string{"syncStatus": string(event.SyncStatus)},
	})
	s.logger.Info("sync processed",
		"user_id", userID,
		"source", event.SourceSystem,
		"data_type", event.DataType,
		"applied", !update.IsEmpty(),
		"sync_status", event.SyncStatus,
		"request_id", requestcontext.RequestID(ctx))
	return p, nil
}

// Activity returns the user's recorded activity trail in append order.
func (s *Service) Activity(ctx context.Context, userID id.UserID) ([]audit.Event, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	if s.auditor == nil {
		return []audit.Event{}, nil
	}
	return s.auditor.List(ctx, userID)
}

func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.Error("audit emit failed", "action", event.Action, "error", err)
	}
}

func (s *Service) incrementCreated() {
	if s.metrics != nil {
		s.metrics.IncrementProfilesCreated()
	}
}

func (s *Service) incrementDeleted() {
	if s.metrics != nil {
		s.metrics.IncrementProfilesDeleted()
	}
}

func (s *Service) incrementSyncApplied() {
	if s.metrics != nil {
		s.metrics.IncrementSyncsApplied()
	}
}

func (s *Service) incrementSyncNoop() {
	if s.metrics != nil {
		s.metrics.IncrementSyncsNoop()
	}
}

func (s *Service) incrementMergeRejected() {
	if s.metrics != nil {
		s.metrics.IncrementMergeRejected()
	}
}

func (s *Service) observeSync(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveSync(start)
	}
}
