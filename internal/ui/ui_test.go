package ui

import (
	"testing"
)

func TestLocalization_FallbackToEnglish(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("zh")
	if l.GetCurrentLanguage() != "zh" {
		t.Errorf("language = %s, expected zh", l.GetCurrentLanguage())
	}
	if got := l.GetText(KeyAppTitle); got == "" || got == KeyAppTitle {
		t.Errorf("GetText(app_title) in zh = %q", got)
	}

	// Unknown languages keep the previous one
	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "zh" {
		t.Errorf("unknown language changed current to %s", l.GetCurrentLanguage())
	}

	// Unknown keys fall back to the key itself
	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("GetText(no_such_key) = %q", got)
	}
}

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/videos/clip.mp4", true},
		{"/videos/CLIP.MKV", true},
		{"/videos/movie.webm", true},
		{"/videos/notes.txt", false},
		{"/videos/archive.zip", false},
		{"clip", false},
	}

	for _, test := range tests {
		if got := IsVideoFile(test.path); got != test.expected {
			t.Errorf("IsVideoFile(%q) = %v, expected %v", test.path, got, test.expected)
		}
	}
}

func TestFormatZoomPercent(t *testing.T) {
	tests := []struct {
		span     float64
		expected string
	}{
		{1, "100%"},
		{0.5, "50%"},
		{0.031, "3%"},
		{0.005, "0.5%"},
	}

	for _, test := range tests {
		if got := formatZoomPercent(test.span); got != test.expected {
			t.Errorf("formatZoomPercent(%v) = %q, expected %q", test.span, got, test.expected)
		}
	}
}

func TestWindowPresetLabels(t *testing.T) {
	labels := windowPresetLabels()
	if len(labels) != 6 {
		t.Fatalf("expected 6 preset labels, got %d", len(labels))
	}
	if labels[0] != "0.1s" || labels[len(labels)-1] != "5s" {
		t.Errorf("unexpected preset labels: %v", labels)
	}

	for _, label := range labels {
		if parseWindowPreset(label) <= 0 {
			t.Errorf("parseWindowPreset(%q) did not round-trip", label)
		}
	}

	if got := parseWindowPreset("garbage"); got != 1.0 {
		t.Errorf("parseWindowPreset(garbage) = %v, expected the default", got)
	}
}
