// Package settings persists the user's analysis window and set targets.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/2beens/setsbymuscle/internal/gymstats/stats"
	"github.com/2beens/setsbymuscle/internal/storage"

	log "github.com/sirupsen/logrus"
)

const (
	StorageKey        = "sbm_settings"
	DefaultWindowDays = 7
)

var ErrInvalidSettings = errors.New("invalid settings")

type Settings struct {
	WindowDays int           `json:"windowDays"`
	Targets    stats.Targets `json:"targets"`
}

type Service struct {
	mu            sync.Mutex
	store         storage.Store
	defaults      Settings
	windowOptions []int
}

// NewService keeps settings in store. Stored window sizes must be one of windowOptions.
func NewService(store storage.Store, defaults Settings, windowOptions []int) *Service {
	if defaults.WindowDays <= 0 {
		defaults.WindowDays = DefaultWindowDays
	}
	if defaults.Targets == (stats.Targets{}) {
		defaults.Targets = stats.DefaultTargets
	}
	return &Service{
		store:         store,
		defaults:      defaults,
		windowOptions: append([]int(nil), windowOptions...),
	}
}

func (s *Service) Defaults() Settings {
	return s.defaults
}

func (s *Service) WindowOptions() []int {
	return append([]int(nil), s.windowOptions...)
}

// Get returns the stored settings, falling back to the defaults when nothing
// usable is stored.
func (s *Service) Get(ctx context.Context) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(ctx)
}

func (s *Service) get(ctx context.Context) Settings {
	raw, err := s.store.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return s.defaults
	}
	if err != nil {
		log.Warnf("settings: read failed, using defaults: %s", err)
		return s.defaults
	}

	stored := s.defaults
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.Warnf("settings: stored value is corrupt, using defaults: %s", err)
		return s.defaults
	}
	if err := s.Validate(stored); err != nil {
		log.Warnf("settings: stored value rejected, using defaults: %s", err)
		return s.defaults
	}
	return stored
}

func (s *Service) Validate(settings Settings) error {
	if len(s.windowOptions) > 0 && !slices.Contains(s.windowOptions, settings.WindowDays) {
		return fmt.Errorf("%w: window of %d days is not one of %v", ErrInvalidSettings, settings.WindowDays, s.windowOptions)
	}
	if settings.WindowDays < 1 {
		return fmt.Errorf("%w: window must be at least 1 day", ErrInvalidSettings)
	}
	if settings.Targets.Min < 0 {
		return fmt.Errorf("%w: targets.min must not be negative", ErrInvalidSettings)
	}
	if settings.Targets.Min >= settings.Targets.Max {
		return fmt.Errorf("%w: targets.min must be less than targets.max", ErrInvalidSettings)
	}
	return nil
}

func (s *Service) Update(ctx context.Context, settings Settings) error {
	if err := s.Validate(settings); err != nil {
		return err
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("store settings: %w", err)
	}
	return nil
}
