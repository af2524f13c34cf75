package storage

import "stagetimer/internal/core/theme"

// ThemePersister splits theme persistence across the two stores: the whole
// theme goes to the session store and the logo also goes to the durable one.
type ThemePersister struct {
	session *SessionStore
	durable *DurableStore
}

// NewThemePersister wires both stores. Either may be nil.
func NewThemePersister(session *SessionStore, durable *DurableStore) *ThemePersister {
	return &ThemePersister{session: session, durable: durable}
}

// SaveTheme writes the theme to the session store.
func (persister *ThemePersister) SaveTheme(settings theme.Settings) error {
	if persister.session == nil {
		return nil
	}
	return persister.session.Save(ThemeKey, settings)
}

// SaveLogo writes the logo to the durable store.
func (persister *ThemePersister) SaveLogo(logo string) error {
	if persister.durable == nil {
		return nil
	}
	return persister.durable.SaveLogo(logo)
}

// LoadTheme reads the session theme.
func (persister *ThemePersister) LoadTheme() (theme.Settings, bool, error) {
	var settings theme.Settings
	if persister.session == nil {
		return settings, false, nil
	}
	ok, err := persister.session.Load(ThemeKey, &settings)
	if err != nil || !ok {
		return theme.Settings{}, false, err
	}
	return settings, true, nil
}

// LoadLogo reads the durable logo.
func (persister *ThemePersister) LoadLogo() (string, error) {
	if persister.durable == nil {
		return "", nil
	}
	return persister.durable.LoadLogo()
}
