package preview

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rollingQP/BitrateViewer/internal/probe"
)

// Thumbnail geometry and request shaping constants
const (
	// ThumbWidth and ThumbHeight are the popup frame size; the source is
	// letterboxed into it.
	ThumbWidth  = 320
	ThumbHeight = 180

	// RoundStep snaps requested times so nearby hovers share a cache entry.
	RoundStep = 0.5

	// SkipDelta drops a request this close to the one already shown.
	SkipDelta = 0.3

	// Debounce delays extraction until the cursor settles.
	Debounce = 100 * time.Millisecond

	// ExtractTimeout bounds a single ffmpeg run.
	ExtractTimeout = 5 * time.Second
)

// Service extracts and caches preview frames for one video at a time.
type Service struct {
	ffmpeg string
	fs     afero.Fs

	mu        sync.Mutex
	videoPath string
	cacheDir  string
	cache     map[float64]string // rounded time -> png path
	lastShown float64
	timer     *time.Timer
	onReady   func(timeSec float64, imagePath string) // callback for UI updates
}

// NewService creates a preview service using the given ffmpeg executable.
func NewService(ffmpegPath string) *Service {
	return &Service{
		ffmpeg: ffmpegPath,
		fs:     afero.NewOsFs(),
		cache:  make(map[float64]string),
	}
}

// SetReadyCallback sets the callback invoked when a frame becomes available.
func (s *Service) SetReadyCallback(callback func(timeSec float64, imagePath string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReady = callback
}

// SetVideo switches the service to a new file and drops the old cache.
func (s *Service) SetVideo(videoPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropCacheLocked()
	s.videoPath = videoPath
	s.lastShown = -1
}

// Request asks for a frame near the given time. The time is snapped to
// RoundStep, requests landing within SkipDelta of the frame already shown are
// dropped, and extraction waits out Debounce so only the settled position
// runs ffmpeg.
func (s *Service) Request(timeSec float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.videoPath == "" {
		return
	}

	rounded := roundToStep(timeSec)
	if s.lastShown >= 0 && absFloat(rounded-s.lastShown) < SkipDelta {
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(Debounce, func() {
		s.extract(rounded)
	})
}

// Close removes the cache directory.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.dropCacheLocked()
}

// extract produces the frame, serving from cache when possible.
func (s *Service) extract(timeSec float64) {
	s.mu.Lock()
	videoPath := s.videoPath
	if videoPath == "" {
		s.mu.Unlock()
		return
	}
	if cached, ok := s.cache[timeSec]; ok {
		s.lastShown = timeSec
		ready := s.onReady
		s.mu.Unlock()
		if ready != nil {
			ready(timeSec, cached)
		}
		return
	}
	dir, err := s.cacheDirLocked()
	s.mu.Unlock()
	if err != nil {
		log.WithError(err).Warn("failed to create preview cache dir")
		return
	}

	outPath := filepath.Join(dir, fmt.Sprintf("frame_%.1f.png", timeSec))

	ctx, cancel := context.WithTimeout(context.Background(), ExtractTimeout)
	defer cancel()

	filter := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black",
		ThumbWidth, ThumbHeight, ThumbWidth, ThumbHeight)

	cmd := exec.CommandContext(ctx, s.ffmpeg,
		"-ss", fmt.Sprintf("%.3f", timeSec),
		"-i", videoPath,
		"-vframes", "1",
		"-vf", filter,
		"-y", outPath,
	)
	probe.HideWindow(cmd)

	if err := cmd.Run(); err != nil {
		// A failed or timed out run can leave a partial frame behind
		_ = s.fs.Remove(outPath)
		log.WithError(err).WithField("time", timeSec).Debug("preview extraction failed")
		return
	}

	s.mu.Lock()
	// The video may have changed while ffmpeg ran
	if s.videoPath != videoPath {
		s.mu.Unlock()
		_ = s.fs.Remove(outPath)
		return
	}
	s.cache[timeSec] = outPath
	s.lastShown = timeSec
	ready := s.onReady
	s.mu.Unlock()

	if ready != nil {
		ready(timeSec, outPath)
	}
}

// cacheDirLocked lazily creates the temp directory for cached frames.
func (s *Service) cacheDirLocked() (string, error) {
	if s.cacheDir != "" {
		return s.cacheDir, nil
	}
	dir, err := afero.TempDir(s.fs, "", "bitrateviewer-preview")
	if err != nil {
		return "", err
	}
	s.cacheDir = dir
	return dir, nil
}

func (s *Service) dropCacheLocked() {
	if s.cacheDir != "" {
		_ = s.fs.RemoveAll(s.cacheDir)
		s.cacheDir = ""
	}
	s.cache = make(map[float64]string)
}

func roundToStep(t float64) float64 {
	if t < 0 {
		return 0
	}
	steps := int(t/RoundStep + 0.5)
	return float64(steps) * RoundStep
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
