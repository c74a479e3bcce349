// Package accent applies matched palette colours to the macOS preferences.
package accent

import (
	"context"
	"fmt"

	"github.com/opencode-ai/macaccent/internal/logging"
	"github.com/opencode-ai/macaccent/internal/matcher"
	"github.com/opencode-ai/macaccent/internal/models"
	"github.com/opencode-ai/macaccent/internal/palette"
	"github.com/rs/zerolog"
)

// PreferenceStore is the subset of prefs.Store the service needs.
type PreferenceStore interface {
	ReadAccent(ctx context.Context) palette.Key
	SetAccent(ctx context.Context, key palette.Key)
	ReadHighlight(ctx context.Context) (palette.Key, error)
	SetHighlight(ctx context.Context, key palette.Key)
}

// HistoryRecorder stores a record of each applied change.
type HistoryRecorder interface {
	Create(ctx context.Context, entry *models.HistoryEntry) error
}

// Service connects the matcher to the preference store.
type Service struct {
	store   PreferenceStore
	history HistoryRecorder
	logger  zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithHistory records every apply through recorder.
func WithHistory(recorder HistoryRecorder) Option {
	return func(s *Service) {
		s.history = recorder
	}
}

// NewService creates a Service backed by store.
func NewService(store PreferenceStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logging.Component("accent"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current holds the colours read from the preference store.
type Current struct {
	Accent    palette.Key
	Highlight palette.Key
}

// Current reads both preferences.
func (s *Service) Current(ctx context.Context) (Current, error) {
	accent := s.store.ReadAccent(ctx)
	highlight, err := s.store.ReadHighlight(ctx)
	if err != nil {
		return Current{Accent: accent, Highlight: palette.Sentinel}, err
	}
	return Current{Accent: accent, Highlight: highlight}, nil
}

// SetClosest picks the palette colour most of hexes are nearest to and applies
// it to both accent and highlight.
func (s *Service) SetClosest(ctx context.Context, hexes []string) (palette.Key, error) {
	return s.SetClosestWith(ctx, models.PolicyMajority, hexes)
}

// SetClosestWith is SetClosest with an explicit matching policy.
func (s *Service) SetClosestWith(ctx context.Context, policy models.Policy, hexes []string) (palette.Key, error) {
	if policy == "" {
		policy = models.PolicyMajority
	}

	key, err := matcher.Closest(policy, hexes)
	if err != nil {
		return palette.Sentinel, err
	}

	s.logger.Info().
		Str("policy", string(policy)).
		Int("inputs", len(hexes)).
		Int("key", int(key)).
		Str("name", key.Name()).
		Msg("closest color selected")

	s.apply(ctx, models.TargetBoth, key)
	s.record(ctx, models.TargetBoth, key, policy, hexes)
	return key, nil
}

// Apply sets target to key directly.
func (s *Service) Apply(ctx context.Context, target models.Target, key palette.Key) error {
	if !palette.Valid(key) {
		return fmt.Errorf("%w: %d", palette.ErrUnknownKey, key)
	}
	switch target {
	case models.TargetAccent, models.TargetHighlight, models.TargetBoth:
	default:
		return fmt.Errorf("unknown target %q", target)
	}

	s.apply(ctx, target, key)
	s.record(ctx, target, key, models.PolicyManual, nil)
	return nil
}

func (s *Service) apply(ctx context.Context, target models.Target, key palette.Key) {
	if target == models.TargetAccent || target == models.TargetBoth {
		s.store.SetAccent(ctx, key)
	}
	if target == models.TargetHighlight || target == models.TargetBoth {
		s.store.SetHighlight(ctx, key)
	}
}

func (s *Service) record(ctx context.Context, target models.Target, key palette.Key, policy models.Policy, hexes []string) {
	if s.history == nil {
		return
	}

	entry := &models.HistoryEntry{
		Target: target,
		Key:    int(key),
		Name:   key.Name(),
		Policy: policy,
		Inputs: hexes,
	}
	if err := s.history.Create(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record history")
	}
}
