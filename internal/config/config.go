package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds application configuration
type Config struct {
	APIKey            string       `json:"api_key"`
	Model             string       `json:"model"`
	SampleRate        int          `json:"sample_rate"`
	Channels          int          `json:"channels"`
	MaxRecordTime     int          `json:"max_record_time"` // seconds
	ShowNotifications bool         `json:"show_notifications"`
	AudioDeviceID     int          `json:"audio_device_id"`
	Hotkey            HotkeyConfig `json:"hotkey"`
}

// HotkeyConfig holds the toggle shortcut configuration
type HotkeyConfig struct {
	Ctrl  bool   `json:"ctrl"`
	Shift bool   `json:"shift"`
	Alt   bool   `json:"alt"`
	Cmd   bool   `json:"cmd"`
	Key   string `json:"key"` // e.g. "Space"
}

// DefaultConfig returns the default configuration. The shortcut default is
// Cmd+Shift+Space on macOS and Ctrl+Shift+Space on Linux. The API key has
// no default; it comes from the file or the OPENAI_API_KEY environment
// variable.
func DefaultConfig() *Config {
	return &Config{
		Model:             "whisper-1",
		SampleRate:        16000, // Whisper works best with 16kHz
		Channels:          1,     // mono
		MaxRecordTime:     60,
		ShowNotifications: true,
		AudioDeviceID:     -1, // -1 means use system default device
		Hotkey:            defaultHotkey(),
	}
}

// defaultHotkey returns the platform default toggle shortcut
func defaultHotkey() HotkeyConfig {
	if runtime.GOOS == "darwin" {
		return HotkeyConfig{Cmd: true, Shift: true, Key: "Space"}
	}
	return HotkeyConfig{Ctrl: true, Shift: true, Key: "Space"}
}

// Load loads configuration from the specified path. A missing file yields
// the defaults; missing fields in an existing file are filled with their
// defaults. OPENAI_API_KEY in the environment overrides the file in both
// cases.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		config.fillDefaults()
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.APIKey = key
	}

	return config, nil
}

// fillDefaults completes zero-valued fields after parsing a partial file
func (c *Config) fillDefaults() {
	if c.Model == "" {
		c.Model = "whisper-1"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 16000
	}
	if c.Channels == 0 {
		c.Channels = 1
	}
	if c.MaxRecordTime == 0 {
		c.MaxRecordTime = 60
	}
	if c.Hotkey.Key == "" {
		c.Hotkey.Key = "Space"
	}
}

// Save saves configuration to the specified path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file may hold the API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "whisper-app", "config.json")
}

// Validate checks the configuration fields. It does not require an API key;
// that check happens at startup before the hotkey is armed.
func (c *Config) Validate() error {
	if c.SampleRate < 8000 || c.SampleRate > 48000 {
		return fmt.Errorf("invalid sample_rate: %d (must be between 8000 and 48000)", c.SampleRate)
	}
	if c.Channels != 1 && c.Channels != 2 {
		return fmt.Errorf("invalid channels: %d (must be 1 or 2)", c.Channels)
	}
	if c.MaxRecordTime <= 0 || c.MaxRecordTime > 300 {
		return fmt.Errorf("invalid max_record_time: %d (must be between 1 and 300 seconds)", c.MaxRecordTime)
	}
	if c.Hotkey.Key == "" {
		return fmt.Errorf("hotkey key cannot be empty")
	}
	return nil
}
