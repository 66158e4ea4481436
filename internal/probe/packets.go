package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strconv"
	"strings"
)

// Packet read estimation constants. Output size is guessed from the duration
// so the streaming read can report progress before ffprobe finishes.
const (
	estimatedPacketsPerSecond = 30
	estimatedBytesPerPacket   = 50
	minEstimatedBytes         = 10000
)

// Packet is one video packet: presentation timestamp in seconds, payload size
// in bytes, and whether it starts a keyframe.
type Packet struct {
	PTS      float64
	Size     int64
	Keyframe bool
}

// rawPacket mirrors one entry of ffprobe's packets array. All fields arrive
// as strings.
type rawPacket struct {
	PTSTime string `json:"pts_time"`
	DTSTime string `json:"dts_time"`
	Size    string `json:"size"`
	Flags   string `json:"flags"`
}

// countingReader tracks bytes consumed so progress can be estimated while the
// JSON stream is still being produced.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// ReadPackets streams per-packet timestamps and sizes for one video stream.
// onProgress receives a 0..1 estimate while reading; onStarted receives the
// child PID once the process is running so the caller can pin its CPU
// affinity. The returned packets are sorted by timestamp.
func (t Tools) ReadPackets(ctx context.Context, videoPath string, streamIndex int, duration float64, onProgress func(float64), onStarted func(pid int)) ([]Packet, error) {
	cmd := exec.CommandContext(ctx, t.FFprobe,
		"-v", "error",
		"-select_streams", fmt.Sprintf("v:%d", streamIndex),
		"-show_entries", "packet=pts_time,dts_time,size,flags",
		"-print_format", "json",
		videoPath,
	)
	HideWindow(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open ffprobe pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffprobe: %w", err)
	}
	if onStarted != nil {
		onStarted(cmd.Process.Pid)
	}

	counter := &countingReader{r: stdout}
	estimate := estimateOutputBytes(duration)

	packets, decodeErr := decodePackets(counter, func() {
		if onProgress == nil {
			return
		}
		frac := float64(counter.n) / float64(estimate)
		if frac > 1 {
			frac = 1
		}
		onProgress(frac)
	})

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("ffprobe packet read failed: %w", err)
	}
	if decodeErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, decodeErr
	}
	if len(packets) == 0 {
		return nil, fmt.Errorf("no packets found in %s", videoPath)
	}

	sort.Slice(packets, func(i, j int) bool { return packets[i].PTS < packets[j].PTS })
	return packets, nil
}

// decodePackets walks the JSON token stream until it reaches the packets
// array, then decodes entries one at a time so memory stays proportional to
// the packet count, not the raw JSON size.
func decodePackets(r io.Reader, tick func()) ([]Packet, error) {
	dec := json.NewDecoder(r)

	// Seek the "packets" key inside the top level object
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse packet stream: %w", err)
		}
		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
			continue
		}
		if key, ok := tok.(string); ok && key == "packets" && depth == 1 {
			break
		}
	}

	// Opening bracket of the array
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse packet stream: %w", err)
	}

	var packets []Packet
	for dec.More() {
		var raw rawPacket
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode packet: %w", err)
		}
		if p, ok := raw.toPacket(); ok {
			packets = append(packets, p)
		}
		if len(packets)%1000 == 0 {
			tick()
		}
	}
	tick()

	// Drain the closing tokens so the pipe empties before Wait
	_, _ = io.Copy(io.Discard, r)
	return packets, nil
}

// toPacket converts a decoded entry, preferring pts_time and falling back to
// dts_time. Entries with neither timestamp are dropped.
func (raw rawPacket) toPacket() (Packet, bool) {
	ts := raw.PTSTime
	if ts == "" || ts == "N/A" {
		ts = raw.DTSTime
	}
	pts, err := strconv.ParseFloat(ts, 64)
	if err != nil || pts < 0 {
		return Packet{}, false
	}

	size, err := strconv.ParseInt(raw.Size, 10, 64)
	if err != nil || size <= 0 {
		return Packet{}, false
	}

	return Packet{
		PTS:      pts,
		Size:     size,
		Keyframe: strings.HasPrefix(raw.Flags, "K"),
	}, true
}

func estimateOutputBytes(duration float64) int64 {
	est := int64(duration * estimatedPacketsPerSecond * estimatedBytesPerPacket)
	if est < minEstimatedBytes {
		est = minEstimatedBytes
	}
	return est
}
