package prefs

import (
	"sync"

	"github.com/matheus3301/tgclone/internal/bus"
	"go.uber.org/zap"
)

// Store holds the active theme and language. Every change is written to
// the backing KV and announced on the bus under the "prefs." namespace.
//
// If the KV fails the store keeps working from memory for the rest of the
// session.
type Store struct {
	mu       sync.RWMutex
	theme    Theme
	language Language
	kv       KV
	degraded bool
	bus      *bus.Bus
	logger   *zap.Logger
}

// Change is the payload of prefs events.
type Change struct {
	Theme    Theme
	Language Language
}

// Open loads both axes from kv once, falling back to defaults for missing
// or invalid values. kv may be nil, in which case the store is memory-only.
func Open(kv KV, b *bus.Bus, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if b == nil {
		b = bus.New()
	}
	s := &Store{
		theme:    DefaultTheme,
		language: DefaultLanguage,
		kv:       kv,
		bus:      b,
		logger:   logger,
	}
	if kv == nil {
		s.kv = NewMemory()
		s.degraded = true
		return s
	}

	if v, ok := s.load(ThemeKey); ok {
		if t := Theme(v); t.Valid() {
			s.theme = t
		} else {
			logger.Warn("ignoring stored theme", zap.String("value", v))
		}
	}
	if v, ok := s.load(LanguageKey); ok {
		if l := Language(v); l.Valid() {
			s.language = l
		} else {
			logger.Warn("ignoring stored language", zap.String("value", v))
		}
	}
	return s
}

func (s *Store) load(key string) (string, bool) {
	v, ok, err := s.kv.Get(key)
	if err != nil {
		s.degrade(err)
		return "", false
	}
	return v, ok
}

// degrade swaps the KV for memory. Callers hold no lock or the write lock.
func (s *Store) degrade(err error) {
	if s.degraded {
		return
	}
	s.logger.Warn("preference storage unavailable, continuing in memory", zap.Error(err))
	mem := NewMemory()
	_ = mem.Set(ThemeKey, string(s.theme))
	_ = mem.Set(LanguageKey, string(s.language))
	s.kv = mem
	s.degraded = true
}

// Degraded reports whether the store fell back to memory-only operation.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// Theme returns the active theme.
func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Language returns the active language.
func (s *Store) Language() Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// SetTheme activates t. Unknown themes are rejected and nothing changes.
func (s *Store) SetTheme(t Theme) error {
	if !t.Valid() {
		return ErrUnknownTheme
	}
	s.mu.Lock()
	if s.theme == t {
		s.mu.Unlock()
		return nil
	}
	s.theme = t
	s.persist(ThemeKey, string(t))
	change := Change{Theme: s.theme, Language: s.language}
	s.mu.Unlock()

	s.bus.Emit(bus.ThemeChanged, change)
	return nil
}

// CycleTheme advances light -> dark -> black -> light and returns the new theme.
func (s *Store) CycleTheme() Theme {
	s.mu.Lock()
	next := s.theme.Next()
	s.theme = next
	s.persist(ThemeKey, string(next))
	change := Change{Theme: s.theme, Language: s.language}
	s.mu.Unlock()

	s.bus.Emit(bus.ThemeChanged, change)
	return next
}

// SetLanguage activates l. Codes outside the supported set are rejected
// and the current language is kept.
func (s *Store) SetLanguage(l Language) error {
	if !l.Valid() {
		return ErrUnknownLanguage
	}
	s.mu.Lock()
	if s.language == l {
		s.mu.Unlock()
		return nil
	}
	s.language = l
	s.persist(LanguageKey, string(l))
	change := Change{Theme: s.theme, Language: s.language}
	s.mu.Unlock()

	s.bus.Emit(bus.LanguageChanged, change)
	return nil
}

// persist must be called with the write lock held.
func (s *Store) persist(key, value string) {
	if err := s.kv.Set(key, value); err != nil {
		s.degrade(err)
		_ = s.kv.Set(key, value)
	}
}

// Subscribe delivers every future change. The returned func unsubscribes.
func (s *Store) Subscribe(bufSize int) (<-chan bus.Event, func()) {
	return s.bus.Subscribe("prefs.", bufSize)
}
