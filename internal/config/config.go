package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	LookupDirectories            []string        `json:"lookupDirectories"`
	HighlightPicturesWithoutExif bool            `json:"highlightPicturesWithoutExif"`
	CreationDateAsLabel          bool            `json:"creationDateAsLabel"`
	Thumbnail                    ThumbnailConfig `json:"thumbnail"`
	Watch                        WatchConfig     `json:"watch"`
	Hotkeys                      HotkeysConfig   `json:"hotkeys"`
}

// ThumbnailConfig controls the in-memory thumbnail cache
type ThumbnailConfig struct {
	MaxEntries int    `json:"maxEntries"` // Thumbnails kept in the LRU
	MaxPixels  int    `json:"maxPixels"`  // Longest edge of a scaled thumbnail
	Quality    string `json:"quality"`    // "fast" or "high"
}

// WatchConfig controls rescanning when lookup directories change on disk
type WatchConfig struct {
	Enabled    bool `json:"enabled"`
	DebounceMs int  `json:"debounceMs"`
}

// Settings is the read-only view of the configuration handed to cells.
// It is a value, so later config changes do not leak into a bound cell.
type Settings struct {
	HighlightPicturesWithoutExif bool
	CreationDateAsLabel          bool
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager backed by the default path
func NewManager() *Manager {
	return NewManagerAt(ConfigPath())
}

// NewManagerAt creates a configuration manager backed by path
func NewManagerAt(path string) *Manager {
	return &Manager{
		config: DefaultConfig(),
		path:   path,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LookupDirectories:            []string{},
		HighlightPicturesWithoutExif: true,
		CreationDateAsLabel:          false,
		Thumbnail: ThumbnailConfig{
			MaxEntries: 500,
			MaxPixels:  256,
			Quality:    "fast",
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMs: 500,
		},
		Hotkeys: DefaultHotkeys(),
	}
}

// ConfigPath returns the config file path: ~/.config/photominer/config.json
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "photominer", "config.json")
}

// Load reads the configuration from the config file.
// If the file doesn't exist, creates it with defaults.
// If parsing fails, stores the error and keeps defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.parseErr = nil

	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Printf("Config: failed to create directory %s: %v", configDir, err)
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		log.Printf("Config: creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Printf("Config: failed to save default config: %v", saveErr)
			return saveErr
		}
		return nil
	}
	if err != nil {
		log.Printf("Config: failed to read %s: %v", m.path, err)
		return err
	}

	// Start from defaults so fields missing in the file keep sane values
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Printf("Config: JSON parse error: %v", err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil
	}
	normalize(cfg)

	log.Printf("Config: loaded from %s", m.path)
	m.config = cfg
	return nil
}

func normalize(cfg *Config) {
	def := DefaultConfig()
	if cfg.Thumbnail.MaxEntries <= 0 {
		cfg.Thumbnail.MaxEntries = def.Thumbnail.MaxEntries
	}
	if cfg.Thumbnail.MaxPixels <= 0 {
		cfg.Thumbnail.MaxPixels = def.Thumbnail.MaxPixels
	}
	if cfg.Thumbnail.Quality != "fast" && cfg.Thumbnail.Quality != "high" {
		cfg.Thumbnail.Quality = def.Thumbnail.Quality
	}
	if cfg.Watch.DebounceMs <= 0 {
		cfg.Watch.DebounceMs = def.Watch.DebounceMs
	}
	if cfg.LookupDirectories == nil {
		cfg.LookupDirectories = []string{}
	}
}

// errUnparsedConfig keeps a config file that failed to parse from being
// overwritten; the user can fix it or regenerate it with -generate-config
var errUnparsedConfig = errors.New("config file has errors, not overwriting it")

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	if m.parseErr != nil {
		return errUnparsedConfig
	}
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg := *m.config
	cfg.LookupDirectories = append([]string(nil), m.config.LookupDirectories...)
	return cfg
}

// Snapshot returns the display settings cells are constructed with
func (m *Manager) Snapshot() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Settings{
		HighlightPicturesWithoutExif: m.config.HighlightPicturesWithoutExif,
		CreationDateAsLabel:          m.config.CreationDateAsLabel,
	}
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// LookupDirectories returns the directories scanned for pictures
func (m *Manager) LookupDirectories() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.config.LookupDirectories...)
}

// SetLookupDirectories replaces the scanned directories.
// Paths are cleaned and de-duplicated; anything that is not an existing
// directory is dropped. Returns false and leaves the config untouched when
// nothing usable remains.
func (m *Manager) SetLookupDirectories(paths []string) bool {
	dirs := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		if seen[p] {
			continue
		}
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			continue
		}
		seen[p] = true
		dirs = append(dirs, p)
	}
	if len(dirs) == 0 {
		return false
	}

	m.mu.Lock()
	m.config.LookupDirectories = dirs
	err := m.saveUnlocked()
	m.mu.Unlock()
	if err != nil {
		// The new directories are still used for this session
		log.Printf("Config: failed to save lookup directories: %v", err)
	}
	return true
}

// SetHighlightPicturesWithoutExif updates the highlight toggle
func (m *Manager) SetHighlightPicturesWithoutExif(on bool) {
	m.mu.Lock()
	m.config.HighlightPicturesWithoutExif = on
	m.mu.Unlock()
	if err := m.Save(); err != nil {
		log.Printf("Config: failed to save highlight setting: %v", err)
	}
}

// SetCreationDateAsLabel updates the label toggle
func (m *Manager) SetCreationDateAsLabel(on bool) {
	m.mu.Lock()
	m.config.CreationDateAsLabel = on
	m.mu.Unlock()
	if err := m.Save(); err != nil {
		log.Printf("Config: failed to save label setting: %v", err)
	}
}

// GenerateConfig backs up the existing config at path and writes a fresh
// default one. Returns the backup path, or "" if there was nothing to back up.
func GenerateConfig(path string) (backupPath string, err error) {
	if _, err := os.Stat(path); err == nil {
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(path), "config.backup."+timestamp+".json")

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return backupPath, fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}
	return backupPath, nil
}
