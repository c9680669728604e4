package config

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings are the user preferences kept between sessions.
type Settings struct {
	Volume float64 `yaml:"volume"` // 0.0 ~ 1.0
	Muted  bool    `yaml:"muted"`
}

// DefaultSettings returns the stock preferences.
func DefaultSettings() Settings {
	return Settings{Volume: DefaultVolume}
}

// EffectiveVolume is the volume a player should use right now.
func (s Settings) EffectiveVolume() float64 {
	if s.Muted {
		return 0
	}
	return s.Volume
}

const (
	settingsObject   = "settings"
	settingsProperty = "audio"
)

// SettingsManager loads and saves Settings through gdata.
// A nil store keeps settings in memory only.
type SettingsManager struct {
	store    *gdata.Manager
	settings Settings

	// sessionMute is a mute that lasts until exit and is never saved.
	sessionMute bool
}

// OpenSettings opens the platform data directory for appName. Failure to open
// it is logged and the manager falls back to in-memory settings.
func OpenSettings(appName string) *SettingsManager {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Settings] Warning: storage unavailable: %v (settings will not persist)", err)
		store = nil
	}
	return NewSettingsManager(store)
}

// NewSettingsManager wraps store and loads whatever it holds.
func NewSettingsManager(store *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{store: store, settings: DefaultSettings()}
	if err := sm.Load(); err != nil {
		log.Printf("[Settings] Warning: %v (using defaults)", err)
	}
	return sm
}

// Load replaces the current settings with the stored ones, or defaults when
// nothing is stored.
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.store == nil || !sm.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.Volume = clampVolume(loaded.Volume)
	sm.settings = loaded
	return nil
}

// Save writes the current settings. Without a store it does nothing.
func (sm *SettingsManager) Save() error {
	if sm.store == nil {
		return nil
	}
	stored := sm.settings
	if sm.sessionMute {
		stored.Muted = false
	}
	data, err := yaml.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Settings returns a copy of the current settings.
func (sm *SettingsManager) Settings() Settings {
	return sm.settings
}

// SetVolume clamps v to [0, 1], stores it and saves.
func (sm *SettingsManager) SetVolume(v float64) {
	sm.settings.Volume = clampVolume(v)
	sm.save()
}

// MuteForSession mutes until exit without touching the stored preference.
// It does nothing when the saved settings are already muted.
func (sm *SettingsManager) MuteForSession() {
	if sm.settings.Muted {
		return
	}
	sm.settings.Muted = true
	sm.sessionMute = true
}

// ToggleMute flips the mute flag, saves, and returns the new state. Toggling
// ends a session mute: from then on the flag is saved as usual.
func (sm *SettingsManager) ToggleMute() bool {
	sm.sessionMute = false
	sm.settings.Muted = !sm.settings.Muted
	sm.save()
	return sm.settings.Muted
}

func (sm *SettingsManager) save() {
	if err := sm.Save(); err != nil {
		log.Printf("[Settings] Warning: %v", err)
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
