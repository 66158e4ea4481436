package config

import (
	"fyne.io/fyne/v2"

	"github.com/rollingQP/BitrateViewer/internal/analyze"
)

// Settings keys for Fyne preferences
const (
	KeyWindowPreset  = "sampling_window_sec"
	KeyShowPreview   = "show_frame_preview"
	KeyPowerSave     = "background_power_save"
	KeyLanguage      = "app_language"
	KeyLastOpenDir   = "last_open_directory"
	KeyLastExportDir = "last_export_directory"
)

// Default values
const (
	DefaultShowPreview = false
	DefaultPowerSave   = true
	DefaultLanguage    = "system"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetWindowPreset returns the configured sampling window in seconds
func (s *Settings) GetWindowPreset() float64 {
	value := s.app.Preferences().Float(KeyWindowPreset)
	if !isValidPreset(value) {
		s.SetWindowPreset(analyze.DefaultWindow)
		return analyze.DefaultWindow
	}
	return value
}

// SetWindowPreset sets the sampling window, snapping invalid values to the
// default preset
func (s *Settings) SetWindowPreset(window float64) {
	if !isValidPreset(window) {
		window = analyze.DefaultWindow
	}
	s.app.Preferences().SetFloat(KeyWindowPreset, window)
}

// isValidPreset checks the value against the offered presets
func isValidPreset(window float64) bool {
	for _, preset := range analyze.WindowPresets {
		if window == preset {
			return true
		}
	}
	return false
}

// GetShowPreview returns whether hover frame previews are enabled
func (s *Settings) GetShowPreview() bool {
	return s.app.Preferences().BoolWithFallback(KeyShowPreview, DefaultShowPreview)
}

// SetShowPreview sets whether hover frame previews are enabled
func (s *Settings) SetShowPreview(show bool) {
	s.app.Preferences().SetBool(KeyShowPreview, show)
}

// GetPowerSave returns whether analysis moves to efficiency cores while the
// window is in the background
func (s *Settings) GetPowerSave() bool {
	return s.app.Preferences().BoolWithFallback(KeyPowerSave, DefaultPowerSave)
}

// SetPowerSave sets the background power save behavior
func (s *Settings) SetPowerSave(enabled bool) {
	s.app.Preferences().SetBool(KeyPowerSave, enabled)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLastOpenDirectory returns the directory of the last opened video
func (s *Settings) GetLastOpenDirectory() string {
	return s.app.Preferences().String(KeyLastOpenDir)
}

// SetLastOpenDirectory remembers the directory of the last opened video
func (s *Settings) SetLastOpenDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastOpenDir, dir)
}

// GetLastExportDirectory returns the directory of the last export
func (s *Settings) GetLastExportDirectory() string {
	return s.app.Preferences().String(KeyLastExportDir)
}

// SetLastExportDirectory remembers the directory of the last export
func (s *Settings) SetLastExportDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastExportDir, dir)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"zh":     "中文",
	}
}
