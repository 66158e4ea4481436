package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/rollingQP/BitrateViewer/internal/analyze"
	"github.com/rollingQP/BitrateViewer/internal/config"
)

// ShowSettingsDialog opens the settings form. onSaved runs after the values
// are stored so the caller can apply them.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func(windowChanged bool)) {
	currentWindow := settings.GetWindowPreset()

	windowSelect := widget.NewSelect(windowPresetLabels(), nil)
	windowSelect.SetSelected(formatWindowPreset(currentWindow))

	previewCheck := widget.NewCheck(localization.GetText(KeyShowPreview), nil)
	previewCheck.SetChecked(settings.GetShowPreview())

	powerSaveCheck := widget.NewCheck(localization.GetText(KeyPowerSave), nil)
	powerSaveCheck.SetChecked(settings.GetPowerSave())

	languageOptions := settings.GetLanguageOptions()
	languageCodes := []string{"system", "en", "zh"}
	languageLabels := make([]string, len(languageCodes))
	for i, code := range languageCodes {
		languageLabels[i] = languageOptions[code]
	}
	languageSelect := widget.NewSelect(languageLabels, nil)
	languageSelect.SetSelected(languageOptions[settings.GetLanguage()])

	items := []*widget.FormItem{
		widget.NewFormItem(localization.GetText(KeyWindow), windowSelect),
		widget.NewFormItem("", previewCheck),
		widget.NewFormItem("", powerSaveCheck),
		widget.NewFormItem(localization.GetText(KeyLanguage), languageSelect),
	}

	dialog.ShowForm(
		localization.GetText(KeySettings),
		localization.GetText(KeySave),
		localization.GetText(KeyCancel),
		items,
		func(confirmed bool) {
			if !confirmed {
				return
			}

			newWindow := parseWindowPreset(windowSelect.Selected)
			settings.SetWindowPreset(newWindow)
			settings.SetShowPreview(previewCheck.Checked)
			settings.SetPowerSave(powerSaveCheck.Checked)
			for i, label := range languageLabels {
				if label == languageSelect.Selected {
					settings.SetLanguage(languageCodes[i])
					break
				}
			}

			if onSaved != nil {
				onSaved(newWindow != currentWindow)
			}
		},
		window,
	)
}

// windowPresetLabels renders the preset list as "0.1s" style strings.
func windowPresetLabels() []string {
	labels := make([]string, len(analyze.WindowPresets))
	for i, preset := range analyze.WindowPresets {
		labels[i] = formatWindowPreset(preset)
	}
	return labels
}

func formatWindowPreset(window float64) string {
	return fmt.Sprintf("%gs", window)
}

// parseWindowPreset reads a "0.1s" label back into seconds.
func parseWindowPreset(label string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(label, "s"), 64)
	if err != nil {
		return analyze.DefaultWindow
	}
	return v
}
