package probe

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Tool executable names
const (
	FFprobeName = "ffprobe"
	FFmpegName  = "ffmpeg"
)

// Bundled tool directory next to the executable
const (
	LibDirName = "lib"
)

// DownloadHint is shown to the user when neither bundled nor system tools are
// found.
const DownloadHint = "ffprobe/ffmpeg not found. Install FFmpeg from https://ffmpeg.org/download.html or place the executables in a 'lib' folder next to the application."

// Tools holds the resolved paths of the external executables.
type Tools struct {
	FFprobe string
	FFmpeg  string
}

// Locate resolves ffprobe and ffmpeg, preferring a bundled lib directory next
// to the running executable over the system PATH.
func Locate() (Tools, error) {
	ffprobe, err := locateTool(FFprobeName)
	if err != nil {
		return Tools{}, err
	}
	ffmpeg, err := locateTool(FFmpegName)
	if err != nil {
		return Tools{}, err
	}
	return Tools{FFprobe: ffprobe, FFmpeg: ffmpeg}, nil
}

// locateTool finds a single tool by name
func locateTool(name string) (string, error) {
	exeName := name
	if runtime.GOOS == "windows" {
		exeName += ".exe"
	}

	// Bundled copy next to the executable wins over PATH
	if exePath, err := os.Executable(); err == nil {
		bundled := filepath.Join(filepath.Dir(exePath), LibDirName, exeName)
		if isRunnable(bundled) {
			return bundled, nil
		}
	}

	if path, err := exec.LookPath(exeName); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%s: %s", name, DownloadHint)
}

// isRunnable checks that the path exists and responds to -version
func isRunnable(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	return exec.Command(path, "-version").Run() == nil
}
