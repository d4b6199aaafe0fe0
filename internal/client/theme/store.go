// Package theme owns the persisted appearance preference: a tri-state
// light/dark/system value resolved against the OS color scheme.
package theme

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/lifeboard/internal/client/models"
	"github.com/dmitrijs2005/lifeboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/lifeboard/internal/logging"
)

// Store is the sole writer of the theme preference. It keeps the resolved
// "dark" presentation flag current while the watcher runs.
type Store struct {
	meta   metadata.Repository
	source Source
	logger logging.Logger

	mu      sync.Mutex
	current models.Theme
	dark    bool
}

func NewStore(meta metadata.Repository, source Source, logger logging.Logger) *Store {
	return &Store{
		meta:    meta,
		source:  source,
		logger:  logger,
		current: models.ThemeSystem,
	}
}

// Load reads the persisted preference and applies it. An absent or invalid
// stored value falls back to system; a read failure is logged and degraded
// the same way, never returned.
func (s *Store) Load(ctx context.Context) models.Theme {
	loaded := models.ThemeSystem

	raw, err := s.meta.Get(ctx, metadata.KeyTheme)
	if err != nil {
		s.logger.Warn(ctx, "failed to load theme, falling back to system", "error", err)
	} else if raw != nil {
		if t := models.Theme(raw); t.Valid() {
			loaded = t
		} else {
			s.logger.Warn(ctx, "ignoring invalid stored theme", "value", string(raw))
		}
	}

	s.mu.Lock()
	s.current = loaded
	s.applyLocked()
	s.mu.Unlock()

	return loaded
}

// Current returns the active preference.
func (s *Store) Current() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// IsDark returns the resolved presentation flag the UI consumes.
func (s *Store) IsDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Set applies and persists the given theme.
func (s *Store) Set(ctx context.Context, t models.Theme) error {
	if !t.Valid() {
		return fmt.Errorf("unknown theme: %s", t)
	}

	s.mu.Lock()
	s.current = t
	s.applyLocked()
	s.mu.Unlock()

	if err := s.meta.Set(ctx, metadata.KeyTheme, []byte(t)); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	return nil
}

// Toggle advances the cycle light → dark → system → light and persists the
// result, returning the new preference.
func (s *Store) Toggle(ctx context.Context) (models.Theme, error) {
	next := s.Current().Next()
	if err := s.Set(ctx, next); err != nil {
		return next, err
	}
	return next, nil
}

// Watch polls the OS scheme source until ctx is cancelled, re-resolving the
// dark flag whenever the scheme changes while system is selected. Run it on
// its own goroutine for the store's lifetime.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if s.current == models.ThemeSystem {
				was := s.dark
				s.applyLocked()
				if s.dark != was {
					s.logger.Debug(ctx, "os color scheme changed", "dark", s.dark)
				}
			}
			s.mu.Unlock()

		case <-ctx.Done():
			return
		}
	}
}

// applyLocked resolves the preference to the dark flag. Callers hold s.mu.
func (s *Store) applyLocked() {
	switch s.current {
	case models.ThemeDark:
		s.dark = true
	case models.ThemeLight:
		s.dark = false
	default:
		s.dark = s.source.Current() == SchemeDark
	}
}
