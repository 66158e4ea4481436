package model

import (
	"fmt"
	"math"
	"path/filepath"
)

// DefaultFPS is assumed when the container reports no usable frame rate.
const DefaultFPS = 25.0

// VideoInfo holds the metadata probed from a media file.
type VideoInfo struct {
	Path     string  `json:"path" yaml:"path"`
	Codec    string  `json:"codec" yaml:"codec"`
	Width    int     `json:"width" yaml:"width"`
	Height   int     `json:"height" yaml:"height"`
	FPS      float64 `json:"fps" yaml:"fps"`
	Duration float64 `json:"duration_sec" yaml:"duration_sec"`
	Size     int64   `json:"size_bytes" yaml:"size_bytes"`
	BitRate  int64   `json:"bit_rate" yaml:"bit_rate"`
}

// FileName returns the base name of the probed file.
func (vi VideoInfo) FileName() string {
	return filepath.Base(vi.Path)
}

// SummaryLine renders the bottom info row: codec, resolution, fps, duration
// and file size separated by pipes.
func (vi VideoInfo) SummaryLine() string {
	sizeMB := float64(vi.Size) / 1024 / 1024
	return fmt.Sprintf("%s  |  %d×%d  |  %.2f fps  |  %s  |  %.1f MB",
		vi.Codec, vi.Width, vi.Height, vi.FPS, FormatTimeShort(vi.Duration), sizeMB)
}

// FormatTimecode formats seconds as M:SS:FF (or H:MM:SS:FF), where FF is the
// frame index within the current second at the given frame rate.
func FormatTimecode(seconds, fps float64) string {
	if seconds < 0 {
		return "0:00:00"
	}
	if fps <= 0 {
		fps = DefaultFPS
	}

	frame := int(math.Mod(seconds*fps, fps))
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d:%02d", hours, minutes, secs, frame)
	}
	return fmt.Sprintf("%d:%02d:%02d", minutes, secs, frame)
}

// FormatTimeShort formats seconds as M:SS or H:MM:SS for axis labels.
func FormatTimeShort(seconds float64) string {
	if seconds < 0 {
		return "0:00"
	}

	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
