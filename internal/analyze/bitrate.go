package analyze

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/rollingQP/BitrateViewer/internal/model"
	"github.com/rollingQP/BitrateViewer/internal/probe"
)

// Compute tuning constants
const (
	// MinPointsForParallel keeps short videos on a single goroutine where
	// fan-out costs more than it saves.
	MinPointsForParallel = 50

	// RepinInterval is how many points a worker computes between re-applying
	// its thread affinity, so a mode switch mid-run takes hold quickly.
	RepinInterval = 200
)

// Window presets offered in the UI, in seconds.
var WindowPresets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0}

// DefaultWindow is the preset selected on startup.
const DefaultWindow = 1.0

// buildTimePoints lays out window start times every half window across the
// video, end inclusive, so the window starting exactly at the covered span
// is kept. The span is the longer of the container duration and the last
// packet timestamp, so trailing packets are never cut off.
func buildTimePoints(duration, lastPTS, window float64) []float64 {
	end := duration
	if lastPTS > end {
		end = lastPTS
	}

	step := window / 2
	if step <= 0 {
		return nil
	}

	// Multiply instead of accumulating so float drift cannot drop the last
	// point; the epsilon absorbs inexact duration values.
	points := make([]float64, 0, int(end/step)+2)
	for i := 0; ; i++ {
		t := float64(i) * step
		if t > end+step*1e-9 {
			break
		}
		points = append(points, t)
	}
	if len(points) == 0 {
		points = append(points, 0)
	}
	return points
}

// ComputeSeries computes the mean bitrate of a sliding window at every time
// point. Each sample is centered on its window. Packets must be sorted by
// timestamp. pin is called on each worker thread before computing and again
// every RepinInterval points; onProgress receives a 0..1 fraction.
func ComputeSeries(ctx context.Context, packets []probe.Packet, duration, window float64, workers int, pin func(), onProgress func(float64)) (model.Series, error) {
	if len(packets) == 0 {
		return nil, nil
	}

	points := buildTimePoints(duration, packets[len(packets)-1].PTS, window)
	if len(points) == 0 {
		return nil, nil
	}

	// Prefix sums turn each window into two binary searches
	prefix := make([]int64, len(packets)+1)
	for i, p := range packets {
		prefix[i+1] = prefix[i] + p.Size
	}

	out := make(model.Series, len(points))
	sampleAt := func(i int) {
		t := points[i]
		lo := sort.Search(len(packets), func(k int) bool { return packets[k].PTS >= t })
		hi := sort.Search(len(packets), func(k int) bool { return packets[k].PTS >= t+window })
		bits := float64(prefix[hi]-prefix[lo]) * 8
		out[i] = model.Sample{
			Time: t + window/2,
			Kbps: bits / window / 1000,
		}
	}

	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if len(points) < MinPointsForParallel || workers == 1 {
		for i := range points {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			sampleAt(i)
		}
		if onProgress != nil {
			onProgress(1)
		}
		return out, nil
	}

	var done int64
	var doneMu sync.Mutex
	reportDone := func(n int) {
		if onProgress == nil {
			return
		}
		doneMu.Lock()
		done += int64(n)
		onProgress(float64(done) / float64(len(points)))
		doneMu.Unlock()
	}

	chunk := (len(points) + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(points) {
			break
		}
		end := start + chunk
		if end > len(points) {
			end = len(points)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			if pin != nil {
				pin()
			}

			sinceReport := 0
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return
				}
				sampleAt(i)
				sinceReport++
				if sinceReport == RepinInterval {
					if pin != nil {
						pin()
					}
					reportDone(sinceReport)
					sinceReport = 0
				}
			}
			reportDone(sinceReport)
		}(start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
