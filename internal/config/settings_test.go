package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/rollingQP/BitrateViewer/internal/analyze"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestWindowPreset(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if got := settings.GetWindowPreset(); got != analyze.DefaultWindow {
		t.Errorf("Expected default window %v, got %v", analyze.DefaultWindow, got)
	}

	// Test setting each preset
	for _, preset := range analyze.WindowPresets {
		settings.SetWindowPreset(preset)
		if got := settings.GetWindowPreset(); got != preset {
			t.Errorf("Expected window %v, got %v", preset, got)
		}
	}

	// Invalid values snap back to the default
	settings.SetWindowPreset(3.7)
	if got := settings.GetWindowPreset(); got != analyze.DefaultWindow {
		t.Errorf("Expected invalid window to snap to %v, got %v", analyze.DefaultWindow, got)
	}
}

func TestShowPreview(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetShowPreview() {
		t.Error("Frame preview should default to disabled")
	}

	settings.SetShowPreview(true)
	if !settings.GetShowPreview() {
		t.Error("Frame preview should be enabled after SetShowPreview(true)")
	}
}

func TestPowerSave(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if !settings.GetPowerSave() {
		t.Error("Power save should default to enabled")
	}

	settings.SetPowerSave(false)
	if settings.GetPowerSave() {
		t.Error("Power save should be disabled after SetPowerSave(false)")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetLanguage(); got != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, got)
	}

	settings.SetLanguage("zh")
	if got := settings.GetLanguage(); got != "zh" {
		t.Errorf("Expected language zh, got %s", got)
	}

	options := settings.GetLanguageOptions()
	for _, lang := range []string{"system", "en", "zh"} {
		if _, ok := options[lang]; !ok {
			t.Errorf("Language options missing %s", lang)
		}
	}
}

func TestDirectories(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	settings.SetLastOpenDirectory("/videos")
	if got := settings.GetLastOpenDirectory(); got != "/videos" {
		t.Errorf("Expected last open directory /videos, got %s", got)
	}

	settings.SetLastExportDirectory("/reports")
	if got := settings.GetLastExportDirectory(); got != "/reports" {
		t.Errorf("Expected last export directory /reports, got %s", got)
	}
}
