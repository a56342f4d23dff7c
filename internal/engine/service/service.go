// Package service orchestrates engine reads: it loads the profile, serves
// derived snapshots through the cache, and traces the derivation stages.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"noesis/internal/engine"
	"noesis/internal/engine/cache"
	"noesis/internal/engine/metrics"
	"noesis/internal/profile/models"
	id "noesis/pkg/domain"
	dErrors "noesis/pkg/domain-errors"
	"noesis/pkg/platform/sentinel"
	"noesis/pkg/requestcontext"
)

// ProfileSource loads profiles for derivation. Satisfied by the profile
// store.
type ProfileSource interface {
	FindByID(ctx context.Context, userID id.UserID) (*models.Profile, error)
}

// Service derives consciousness state from profiles.
type Service struct {
	profiles ProfileSource
	cache    cache.Cache
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

type Option func(s *Service)

func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(profiles ProfileSource, opts ...Option) *Service {
	s := &Service{
		profiles: profiles,
		logger:   slog.Default(),
		tracer:   otel.Tracer("noesis/engine"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the full consciousness state for a user, from cache when
// the profile has not changed since the last derivation.
func (s *Service) Snapshot(ctx context.Context, userID id.UserID) (*engine.Snapshot, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "engine.Snapshot")
	defer span.End()

	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, userID, p.UpdatedAt)
		if err != nil {
			s.logger.Warn("snapshot cache read failed", "user_id", userID, "error", err)
		} else if ok {
			s.incrementCacheHit()
			return cached, nil
		}
		s.incrementCacheMiss()
	}

	snapshot, err := s.derive(ctx, p)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, p.UpdatedAt, snapshot); err != nil {
			s.logger.Warn("snapshot cache write failed", "user_id", userID, "error", err)
		}
	}
	s.incrementSnapshotsComputed()
	s.observeSnapshot(start)
	return snapshot, nil
}

// Patterns returns the detected cross-domain correlations for a user.
func (s *Service) Patterns(ctx context.Context, userID id.UserID) ([]engine.Pattern, error) {
	ctx, span := s.tracer.Start(ctx, "engine.Patterns")
	defer span.End()

	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return engine.DetectPatterns(p.ConsciousnessData), nil
}

// Recommendations returns the full prioritized recommendation list.
func (s *Service) Recommendations(ctx context.Context, userID id.UserID) ([]engine.Recommendation, error) {
	ctx, span := s.tracer.Start(ctx, "engine.Recommendations")
	defer span.End()

	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return engine.Recommend(engine.Scores(p.ConsciousnessData)), nil
}

// Summary returns the condensed dashboard view.
func (s *Service) Summary(ctx context.Context, userID id.UserID) (*engine.Summary, error) {
	ctx, span := s.tracer.Start(ctx, "engine.Summary")
	defer span.End()

	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	cd := p.ConsciousnessData
	scores := engine.Scores(cd)
	overall := engine.Overall(scores)
	now := requestcontext.Now(ctx).UTC()

	return &engine.Summary{
		OverallScore:    overall,
		DomainBreakdown: scores,
		RecentActivity:  engine.ExtractRecentActivity(cd),
		GrowthTrend:     engine.GrowthTrend(cd, overall, now),
		KeyInsights:     engine.KeyInsights(cd, scores),
	}, nil
}

// derive computes a fresh snapshot. The independent stages run concurrently;
// each gets its own span so slow derivations show which stage dominated.
func (s *Service) derive(ctx context.Context, p *models.Profile) (*engine.Snapshot, error) {
	cd := p.ConsciousnessData
	scores := engine.Scores(cd)
	now := requestcontext.Now(ctx).UTC()

	var (
		insights        []string
		recommendations []string
		trajectory      engine.Trajectory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, span := s.tracer.Start(gctx, "engine.derive.insights")
		defer span.End()
		insights = engine.SnapshotInsights(cd, scores)
		return nil
	})
	g.Go(func() error {
		_, span := s.tracer.Start(gctx, "engine.derive.recommendations")
		defer span.End()
		recommendations = summarizeRecommendations(engine.Recommend(scores))
		return nil
	})
	g.Go(func() error {
		_, span := s.tracer.Start(gctx, "engine.derive.trajectory")
		defer span.End()
		trajectory = engine.PredictTrajectory(cd, now)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &engine.Snapshot{
		UserID:          p.ID,
		Timestamp:       now,
		OverallScore:    engine.Overall(scores),
		DomainScores:    scores,
		Insights:        insights,
		Recommendations: recommendations,
		Trajectory:      trajectory,
	}, nil
}

// summarizeRecommendations condenses the top three recommendations into
// display strings.
func summarizeRecommendations(recs []engine.Recommendation) []string {
	if len(recs) > 3 {
		recs = recs[:3]
	}
	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fmt.Sprintf("%s (%s)", rec.Action, rec.Domain))
	}
	return out
}

func (s *Service) loadProfile(ctx context.Context, userID id.UserID) (*models.Profile, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
	return p, nil
}

func (s *Service) incrementCacheHit() {
	if s.metrics != nil {
		s.metrics.IncrementCacheHits()
	}
}

func (s *Service) incrementCacheMiss() {
	if s.metrics != nil {
		s.metrics.IncrementCacheMisses()
	}
}

func (s *Service) incrementSnapshotsComputed() {
	if s.metrics != nil {
		s.metrics.IncrementSnapshotsComputed()
	}
}

func (s *Service) observeSnapshot(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveSnapshot(start)
	}
}
