package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedSettings(t *testing.T) {
	settings, err := embeddedSettings()
	if err != nil {
		t.Fatalf("embeddedSettings() error = %v", err)
	}

	if settings.OutputDirectory != "results" {
		t.Errorf("OutputDirectory = %q, want %q", settings.OutputDirectory, "results")
	}
	if settings.WatchBaseURL != "https://www.facebook.com/watch/?v=" {
		t.Errorf("WatchBaseURL = %q", settings.WatchBaseURL)
	}
	if !settings.Download.Enabled || settings.Download.Workers != 4 || settings.Download.TimeoutSeconds != 60 {
		t.Errorf("Download = %+v", settings.Download)
	}
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `output_directory: out
caption_format: markdown
download:
  workers: 8
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettings(&ConfigOverrides{SettingsPath: &path})
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if settings.OutputDirectory != "out" {
		t.Errorf("OutputDirectory = %q, want %q", settings.OutputDirectory, "out")
	}
	if settings.CaptionFormat != CaptionFormatMarkdown {
		t.Errorf("CaptionFormat = %q", settings.CaptionFormat)
	}
	if settings.Download.Workers != 8 {
		t.Errorf("Workers = %d, want 8", settings.Download.Workers)
	}
	// Keys absent from the file keep their defaults
	if settings.Download.TimeoutSeconds != 60 || !settings.Download.Enabled {
		t.Errorf("Download defaults lost: %+v", settings.Download)
	}
	if settings.WatchBaseURL == "" {
		t.Error("WatchBaseURL default lost")
	}
}

func TestLoadSettingsRequiredMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := LoadSettings(&ConfigOverrides{SettingsPath: &path}); err == nil {
		t.Error("LoadSettings() should fail for a missing explicit settings file")
	}
}

func TestLoadSettingsFallback(t *testing.T) {
	settings, err := loadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	if settings.OutputDirectory != "results" {
		t.Errorf("OutputDirectory = %q, want default", settings.OutputDirectory)
	}
}

func TestApplyOverridesAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("download:\n  timeout_seconds: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out := "elsewhere"
	workers := 0
	settings, err := LoadSettings(&ConfigOverrides{
		SettingsPath:    &path,
		OutputDirectory: &out,
		Workers:         &workers,
		NoDownload:      true,
		Overwrite:       true,
	})
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if settings.OutputDirectory != "elsewhere" {
		t.Errorf("OutputDirectory = %q", settings.OutputDirectory)
	}
	if settings.Download.Enabled {
		t.Error("NoDownload override ignored")
	}
	if !settings.Download.Overwrite {
		t.Error("Overwrite override ignored")
	}
	if settings.Download.Workers != 1 {
		t.Errorf("Workers = %d, want minimum 1", settings.Download.Workers)
	}
	if settings.Download.TimeoutSeconds != minDownloadTimeout {
		t.Errorf("TimeoutSeconds = %d, want minimum %d", settings.Download.TimeoutSeconds, minDownloadTimeout)
	}
}

func TestValidateCaptionFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("caption_format: html\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSettings(&ConfigOverrides{SettingsPath: &path}); err == nil {
		t.Error("LoadSettings() should reject unknown caption_format")
	}
}
