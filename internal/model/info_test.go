package model

import (
	"strings"
	"testing"
)

func TestFormatTimecode(t *testing.T) {
	tests := []struct {
		seconds  float64
		fps      float64
		expected string
	}{
		{0, 25, "0:00:00"},
		{1.5, 30, "0:01:15"},
		{65, 25, "1:05:00"},
		{3661.0, 25, "1:01:01:00"},
		{-1, 25, "0:00:00"},
		{2.5, 0, "0:02:12"}, // zero fps falls back to DefaultFPS
	}

	for _, test := range tests {
		if got := FormatTimecode(test.seconds, test.fps); got != test.expected {
			t.Errorf("FormatTimecode(%v, %v) = %q, expected %q",
				test.seconds, test.fps, got, test.expected)
		}
	}
}

func TestFormatTimeShort(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "0:00"},
		{59.9, "0:59"},
		{61, "1:01"},
		{3725, "1:02:05"},
		{-5, "0:00"},
	}

	for _, test := range tests {
		if got := FormatTimeShort(test.seconds); got != test.expected {
			t.Errorf("FormatTimeShort(%v) = %q, expected %q", test.seconds, got, test.expected)
		}
	}
}

func TestVideoInfo_SummaryLine(t *testing.T) {
	vi := VideoInfo{
		Path:     "/videos/clip.mp4",
		Codec:    "h264",
		Width:    1920,
		Height:   1080,
		FPS:      29.97,
		Duration: 125,
		Size:     50 * 1024 * 1024,
	}

	line := vi.SummaryLine()
	for _, want := range []string{"h264", "1920", "1080", "29.97 fps", "2:05", "50.0 MB"} {
		if !strings.Contains(line, want) {
			t.Errorf("SummaryLine() = %q, missing %q", line, want)
		}
	}

	if vi.FileName() != "clip.mp4" {
		t.Errorf("FileName() = %q, expected %q", vi.FileName(), "clip.mp4")
	}
}
