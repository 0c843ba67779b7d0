// Package theme holds the light/dark presentation mode and persists the
// choice in the durable area so every client process shares it.
package theme

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bizcards/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bizcards/internal/common"
	"github.com/dmitrijs2005/bizcards/internal/logging"
)

type Theme int

const (
	Light Theme = iota
	Dark
)

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Parse accepts "light"/"dark" and the stored boolean form of darkMode.
func Parse(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	dark, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return Light, fmt.Errorf("unknown theme %q", s)
	}
	if dark {
		return Dark, nil
	}
	return Light, nil
}

var accents = map[Theme]string{
	Light: "\033[34m",
	Dark:  "\033[96m",
}

// Accent is the ANSI escape sequence the terminal front end highlights
// with under t.
func (t Theme) Accent() string {
	return accents[t]
}

// Service keeps the current theme in sync with the durable area.
type Service struct {
	repo metadata.Repository
	log  logging.Logger

	mu      sync.RWMutex
	current Theme
}

func NewService(repo metadata.Repository, log logging.Logger) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{repo: repo, log: log.With("component", "theme")}
}

// Load reads the stored theme. A missing or unreadable value means Light.
func (s *Service) Load(ctx context.Context) (Theme, error) {
	v, err := s.repo.Get(ctx, common.ThemeKey)
	if err != nil {
		return s.Current(), fmt.Errorf("read theme: %w", err)
	}

	t := Light
	if len(v) > 0 {
		if t, err = Parse(string(v)); err != nil {
			s.log.Warn(ctx, "ignoring stored theme", "value", string(v), "error", err)
			t = Light
		}
	}

	s.mu.Lock()
	s.current = t
	s.mu.Unlock()
	return t, nil
}

func (s *Service) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set stores t as the darkMode flag.
func (s *Service) Set(ctx context.Context, t Theme) error {
	if err := s.repo.Set(ctx, common.ThemeKey, []byte(strconv.FormatBool(t == Dark))); err != nil {
		return fmt.Errorf("store theme: %w", err)
	}

	s.mu.Lock()
	s.current = t
	s.mu.Unlock()
	s.log.Debug(ctx, "theme changed", "theme", t)
	return nil
}

func (s *Service) Toggle(ctx context.Context) (Theme, error) {
	next := s.Current().Toggle()
	if err := s.Set(ctx, next); err != nil {
		return s.Current(), err
	}
	return next, nil
}

// Watch reloads the theme whenever n reports a darkMode change, until ctx
// is done.
func (s *Service) Watch(ctx context.Context, n metadata.Notifier) error {
	changes, err := n.Changes(ctx)
	if err != nil {
		return fmt.Errorf("watch theme: %w", err)
	}
	for c := range changes {
		if c.Key != "" && c.Key != common.ThemeKey {
			continue
		}
		if _, err := s.Load(ctx); err != nil {
			s.log.Warn(ctx, "failed to reload theme", "error", err)
		}
	}
	if ctx.Err() == nil {
		return fmt.Errorf("watch theme: %w", metadata.ErrFeedClosed)
	}
	return nil
}
