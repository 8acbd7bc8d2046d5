package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manager handles thread-safe configuration access and updates.
type Manager struct {
	mu           sync.RWMutex
	current      *Config
	configPath   string
	LoadCallback func(*Config) error // Optional callback after load
}

// NewManager creates a new configuration manager. Until Load succeeds the
// current configuration is the normalized zero value.
func NewManager(path string) *Manager {
	initial := &Config{}
	initial.Normalize()
	return &Manager{
		configPath: path,
		current:    initial,
	}
}

// Load reads the configuration file from disk and updates the current state.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var newConfig Config
	if err := yaml.Unmarshal(data, &newConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	newConfig.Normalize()

	m.mu.Lock()
	m.current = &newConfig
	m.mu.Unlock()

	if m.LoadCallback != nil {
		if err := m.LoadCallback(&newConfig); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the current configuration safely.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Update applies fn to a copy of the current configuration and swaps the
// copy in. The settings layer uses this to overlay persisted overrides on
// top of whatever the file provided.
func (m *Manager) Update(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := *m.current
	fn(&next)
	next.Normalize()
	m.current = &next
}
