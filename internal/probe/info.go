package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/rollingQP/BitrateViewer/internal/model"
)

// ffprobe JSON payload shapes. Numeric fields arrive as strings.
type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
	BitRate  string `json:"bit_rate"`
}

type probeStream struct {
	Index        int               `json:"index"`
	CodecType    string            `json:"codec_type"`
	CodecName    string            `json:"codec_name"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	RFrameRate   string            `json:"r_frame_rate"`
	AvgFrameRate string            `json:"avg_frame_rate"`
	Duration     string            `json:"duration"`
	Disposition  map[string]int    `json:"disposition"`
	Tags         map[string]string `json:"tags"`
}

// durationPattern extracts the duration from ffmpeg stderr when the container
// metadata reports none.
var durationPattern = regexp.MustCompile(`Duration:\s*(\d+):(\d+):(\d+\.?\d*)`)

// Inspect probes a video file and returns its metadata together with the index
// of the selected video stream. Streams flagged attached_pic (embedded cover
// art) are skipped.
func (t Tools) Inspect(ctx context.Context, videoPath string) (model.VideoInfo, int, error) {
	cmd := exec.CommandContext(ctx, t.FFprobe,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	)
	HideWindow(cmd)

	out, err := cmd.Output()
	if err != nil {
		return model.VideoInfo{}, 0, fmt.Errorf("ffprobe failed for %s: %w", videoPath, err)
	}

	var parsed probeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return model.VideoInfo{}, 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	stream, streamIndex, err := selectVideoStream(parsed.Streams)
	if err != nil {
		return model.VideoInfo{}, 0, err
	}

	info := model.VideoInfo{
		Path:   videoPath,
		Codec:  stream.CodecName,
		Width:  stream.Width,
		Height: stream.Height,
		FPS:    parseFrameRate(stream),
	}

	info.Duration = parseFloatField(parsed.Format.Duration)
	if info.Duration <= 0 {
		info.Duration = parseFloatField(stream.Duration)
	}
	if info.Duration <= 0 {
		// Some containers carry no duration metadata; ask ffmpeg instead
		info.Duration = t.durationFromFFmpeg(ctx, videoPath)
	}
	if info.Duration <= 0 {
		return model.VideoInfo{}, 0, fmt.Errorf("could not determine duration of %s", videoPath)
	}

	if size, err := strconv.ParseInt(parsed.Format.Size, 10, 64); err == nil {
		info.Size = size
	} else if st, err := os.Stat(videoPath); err == nil {
		info.Size = st.Size()
	}

	if rate, err := strconv.ParseInt(parsed.Format.BitRate, 10, 64); err == nil {
		info.BitRate = rate
	}

	return info, streamIndex, nil
}

// selectVideoStream picks the first real video stream, counting only video
// streams for the v:N selector index used by packet reads.
func selectVideoStream(streams []probeStream) (probeStream, int, error) {
	videoIndex := -1
	for _, s := range streams {
		if s.CodecType != "video" {
			continue
		}
		videoIndex++
		if s.Disposition["attached_pic"] != 0 {
			continue
		}
		return s, videoIndex, nil
	}
	return probeStream{}, 0, fmt.Errorf("no video stream found")
}

// parseFrameRate reads r_frame_rate, falling back to avg_frame_rate and then
// to the default rate. Rates are fractions like "30000/1001".
func parseFrameRate(s probeStream) float64 {
	for _, raw := range []string{s.RFrameRate, s.AvgFrameRate} {
		if fps := parseFraction(raw); fps > 0 {
			return fps
		}
	}
	return model.DefaultFPS
}

func parseFraction(raw string) float64 {
	if raw == "" || raw == "0/0" {
		return 0
	}
	parts := strings.SplitN(raw, "/", 2)
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	if len(parts) == 1 {
		return num
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0
	}
	return num / den
}

func parseFloatField(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// durationFromFFmpeg runs a zero-length decode and scrapes the duration from
// stderr.
func (t Tools) durationFromFFmpeg(ctx context.Context, videoPath string) float64 {
	cmd := exec.CommandContext(ctx, t.FFmpeg,
		"-i", videoPath,
		"-f", "null",
		"-t", "0",
		"-",
	)
	HideWindow(cmd)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	// ffmpeg exits non-zero here; the stderr banner is all we want
	_ = cmd.Run()

	return ParseDurationBanner(stderr.String())
}

// ParseDurationBanner extracts "Duration: HH:MM:SS.ss" from ffmpeg stderr
// output. Returns 0 when absent.
func ParseDurationBanner(stderr string) float64 {
	m := durationPattern.FindStringSubmatch(stderr)
	if m == nil {
		return 0
	}
	hours, _ := strconv.ParseFloat(m[1], 64)
	minutes, _ := strconv.ParseFloat(m[2], 64)
	seconds, _ := strconv.ParseFloat(m[3], 64)
	return hours*3600 + minutes*60 + seconds
}
