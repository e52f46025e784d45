package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigDir  = ".feed-scraper/"
	minDownloadTimeout = 5
	maxWorkers        = 32
)

//go:embed config/settings.yaml
var defaultSettings string

// DownloadSettings configures the asset downloader
type DownloadSettings struct {
	Enabled        bool   `yaml:"enabled"`
	Workers        int    `yaml:"workers"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Overwrite      bool   `yaml:"overwrite"`
	UserAgent      string `yaml:"user_agent"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	OutputDirectory string           `yaml:"output_directory"`
	WatchBaseURL    string           `yaml:"watch_base_url"`
	CaptionFormat   string           `yaml:"caption_format"`
	Download        DownloadSettings `yaml:"download"`
}

// ConfigOverrides holds command line values that take precedence over settings
type ConfigOverrides struct {
	SettingsPath    *string
	OutputDirectory *string
	CaptionFormat   *string
	Workers         *int
	TimeoutSeconds  *int
	NoDownload      bool
	Overwrite       bool
}

// LoadSettings resolves settings from the settings file, the embedded
// defaults and the overrides, in increasing order of precedence
func LoadSettings(overrides *ConfigOverrides) (*Settings, error) {
	var (
		settings *Settings
		err      error
	)

	if overrides != nil && overrides.SettingsPath != nil {
		// Explicit settings file must exist
		settings, err = loadSettingsRequired(*overrides.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("loading settings %s: %w", *overrides.SettingsPath, err)
		}
	} else {
		settings, err = loadSettings(GetConfigPath("settings.yaml"))
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
	}

	settings.applyOverrides(overrides)
	if err := settings.validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// GetConfigPath returns the full path to a config file
func GetConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// embeddedSettings parses the built-in defaults
func embeddedSettings() (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal([]byte(defaultSettings), &settings); err != nil {
		return nil, fmt.Errorf("parsing embedded settings: %w", err)
	}
	return &settings, nil
}

// loadSettings loads settings from YAML file with fallback to defaults
func loadSettings(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		debugLog("settings file %s not readable, using defaults: %v", settingsPath, err)
		return embeddedSettings()
	}
	return parseSettings(data)
}

// loadSettingsRequired loads settings from YAML file, failing if file doesn't exist
func loadSettingsRequired(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, err
	}
	return parseSettings(data)
}

// parseSettings decodes data on top of the embedded defaults so missing keys
// keep their default values
func parseSettings(data []byte) (*Settings, error) {
	settings, err := embeddedSettings()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}
	return settings, nil
}

func (s *Settings) applyOverrides(o *ConfigOverrides) {
	if o == nil {
		return
	}
	if o.OutputDirectory != nil {
		s.OutputDirectory = *o.OutputDirectory
	}
	if o.CaptionFormat != nil {
		s.CaptionFormat = *o.CaptionFormat
	}
	if o.Workers != nil {
		s.Download.Workers = *o.Workers
	}
	if o.TimeoutSeconds != nil {
		s.Download.TimeoutSeconds = *o.TimeoutSeconds
	}
	if o.NoDownload {
		s.Download.Enabled = false
	}
	if o.Overwrite {
		s.Download.Overwrite = true
	}
}

func (s *Settings) validate() error {
	if s.OutputDirectory == "" {
		return fmt.Errorf("output_directory must not be empty")
	}

	switch s.CaptionFormat {
	case "":
		s.CaptionFormat = CaptionFormatText
	case CaptionFormatText, CaptionFormatMarkdown:
	default:
		return fmt.Errorf("caption_format must be %q or %q, got %q", CaptionFormatText, CaptionFormatMarkdown, s.CaptionFormat)
	}

	if s.Download.Workers < 1 {
		log.Printf("Warning: download.workers is %d, defaulting to 1", s.Download.Workers)
		s.Download.Workers = 1
	}
	if s.Download.Workers > maxWorkers {
		log.Printf("Warning: download.workers is %d, limiting to %d", s.Download.Workers, maxWorkers)
		s.Download.Workers = maxWorkers
	}
	if s.Download.TimeoutSeconds < minDownloadTimeout {
		log.Printf("Warning: download.timeout_seconds is %d, defaulting to %d (minimum)", s.Download.TimeoutSeconds, minDownloadTimeout)
		s.Download.TimeoutSeconds = minDownloadTimeout
	}

	return nil
}

// ensureConfigExists creates config directory and writes settings.yaml if needed
func ensureConfigExists() error {
	err := os.MkdirAll(defaultConfigDir, 0755)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write settings.yaml - this should be customized by users
	settingsFile := GetConfigPath("settings.yaml")
	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		err = os.WriteFile(settingsFile, []byte(defaultSettings), 0644)
		if err != nil {
			return fmt.Errorf("writing settings.yaml: %w", err)
		}
	}

	return nil
}
