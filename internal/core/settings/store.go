package settings

import (
	"log"
	"sync"

	"stagetimer/internal/core/theme"
)

// Persister writes settings changes somewhere that outlives the process.
type Persister interface {
	SaveTheme(settings theme.Settings) error
	SaveLogo(logo string) error
}

// Source supplies persisted values at startup.
type Source interface {
	LoadTheme() (theme.Settings, bool, error)
	LoadLogo() (string, error)
}

// Store holds the current theme and notifies observers on every change.
type Store struct {
	mu        sync.Mutex
	current   theme.Settings
	persister Persister
	observers []func(theme.Settings)
}

// NewStore creates a store seeded with initial.
func NewStore(initial theme.Settings, persister Persister) *Store {
	return &Store{current: initial, persister: persister}
}

// Load builds the startup theme: the session copy if present, otherwise the
// default preset, with a durable logo taking precedence.
func Load(source Source) theme.Settings {
	current := theme.Default()
	if source == nil {
		return current
	}

	stored, ok, err := source.LoadTheme()
	if err != nil {
		log.Printf("settings: load theme: %v", err)
	} else if ok {
		current = stored
	}

	logo, err := source.LoadLogo()
	if err != nil {
		log.Printf("settings: load logo: %v", err)
	} else if logo != "" {
		current.Logo = logo
	}
	return current
}

// OnChange registers an observer. Observers run outside the store lock.
func (store *Store) OnChange(observer func(theme.Settings)) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.observers = append(store.observers, observer)
}

// Current returns the current theme.
func (store *Store) Current() theme.Settings {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.current
}

// Set replaces the whole theme, name included.
func (store *Store) Set(settings theme.Settings) {
	store.change(func(theme.Settings) theme.Settings {
		return settings
	})
}

// Update merges patch into the current theme.
func (store *Store) Update(patch theme.Patch) {
	if patch.Empty() {
		return
	}
	store.change(func(current theme.Settings) theme.Settings {
		return current.Apply(patch)
	})
}

func (store *Store) change(next func(theme.Settings) theme.Settings) {
	store.mu.Lock()
	previous := store.current
	store.current = next(previous)
	updated := store.current
	observers := append(([]func(theme.Settings))(nil), store.observers...)
	store.mu.Unlock()

	store.persist(previous, updated)
	for _, observer := range observers {
		observer(updated)
	}
}

func (store *Store) persist(previous, updated theme.Settings) {
	if store.persister == nil {
		return
	}
	if err := store.persister.SaveTheme(updated); err != nil {
		log.Printf("settings: save theme: %v", err)
	}
	if previous.Logo != updated.Logo {
		if err := store.persister.SaveLogo(updated.Logo); err != nil {
			log.Printf("settings: save logo: %v", err)
		}
	}
}
