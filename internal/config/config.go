package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/PixPMusic/gopher-piano/internal/audio"
	"github.com/google/uuid"
)

// Defaults for a fresh install
const (
	DefaultOctaves     = 2
	DefaultOctaveStart = 3
	DefaultSoundsDir   = "sounds"
)

// Config holds application configuration
type Config struct {
	ID                   string `json:"id"`
	FirstLaunchCompleted bool   `json:"first_launch_completed"`
	Octaves              int    `json:"octaves"`
	OctaveStart          int    `json:"octave_start"`
	Volume               int    `json:"volume"`     // percent, 0-100
	SoundsDir            string `json:"sounds_dir"` // relative to the working directory unless absolute
	MIDIInPort           string `json:"midi_in_port"`
	MIDIOutPort          string `json:"midi_out_port"` // MIDI thru, empty to disable
	QwertyEnabled        bool   `json:"qwerty_enabled"`
	Muted                bool   `json:"muted"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		ID:            uuid.New().String(),
		Octaves:       DefaultOctaves,
		OctaveStart:   DefaultOctaveStart,
		Volume:        audio.DefaultVolume,
		SoundsDir:     DefaultSoundsDir,
		QwertyEnabled: true,
	}
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "gopher-piano"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, returning defaults if not found
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the config at path, returning defaults if not found
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Validate()
	return cfg, nil
}

// Validate resets out-of-range values to their defaults
func (c *Config) Validate() {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Octaves < 1 {
		log.Printf("Invalid octave count %d, using %d", c.Octaves, DefaultOctaves)
		c.Octaves = DefaultOctaves
	}
	if c.OctaveStart < 0 {
		log.Printf("Invalid starting octave %d, using %d", c.OctaveStart, DefaultOctaveStart)
		c.OctaveStart = DefaultOctaveStart
	}
	if c.Volume < 0 || c.Volume > 100 {
		log.Printf("Invalid volume %d, using %d", c.Volume, audio.DefaultVolume)
		c.Volume = audio.DefaultVolume
	}
	if c.SoundsDir == "" {
		c.SoundsDir = DefaultSoundsDir
	}
}

// Save writes the config to disk
func (c *Config) Save() error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config to path
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
