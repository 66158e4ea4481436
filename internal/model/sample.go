package model

import (
	"fmt"
	"math"
	"sort"
)

// Sampling and downsampling limits
const (
	// MaxTimelinePoints caps the number of points kept for the timeline
	// navigator curve.
	MaxTimelinePoints = 400

	// DefaultNiceTicks is the tick count requested from NiceScale for the
	// bitrate axis.
	DefaultNiceTicks = 6

	// ScaleHeadroom pads the data maximum before computing axis bounds so the
	// curve never touches the top of the plot.
	ScaleHeadroom = 1.1
)

// Sample is a single point of the bitrate curve: the window-centered time in
// seconds and the mean bitrate of that window in kilobits per second.
type Sample struct {
	Time float64 `json:"time" yaml:"time"`
	Kbps float64 `json:"kbps" yaml:"kbps"`
}

// Series is a bitrate curve ordered by time.
type Series []Sample

// MaxTime returns the time of the last sample, or 0 for an empty series.
func (s Series) MaxTime() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Time
}

// VisibleSlice returns the samples within [from, to], widened by one sample on
// each side so the drawn curve reaches the plot edges. When the result exceeds
// maxPoints it is downsampled with Downsample.
func (s Series) VisibleSlice(from, to float64, maxPoints int) Series {
	if len(s) == 0 {
		return nil
	}

	start := sort.Search(len(s), func(i int) bool { return s[i].Time >= from })
	end := sort.Search(len(s), func(i int) bool { return s[i].Time > to })

	if start > 0 {
		start--
	}
	if end < len(s) {
		end++
	}

	visible := s[start:end]
	if maxPoints > 0 && len(visible) > maxPoints {
		return visible.Downsample(maxPoints)
	}
	return visible
}

// Downsample reduces the series to at most maxPoints samples using
// peak-preserving bucketing: both endpoints are kept and every interior bucket
// contributes its maximum, so bitrate spikes survive the reduction.
func (s Series) Downsample(maxPoints int) Series {
	if maxPoints < 3 || len(s) <= maxPoints {
		out := make(Series, len(s))
		copy(out, s)
		return out
	}

	step := float64(len(s)) / float64(maxPoints)
	out := make(Series, 0, maxPoints)
	out = append(out, s[0])

	for i := 1; i < maxPoints-1; i++ {
		lo := int(float64(i) * step)
		hi := int(float64(i+1) * step)
		if hi > len(s) {
			hi = len(s)
		}
		if lo >= hi {
			continue
		}
		peak := s[lo]
		for _, p := range s[lo+1 : hi] {
			if p.Kbps > peak.Kbps {
				peak = p
			}
		}
		out = append(out, peak)
	}

	out = append(out, s[len(s)-1])
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// SeriesStats summarizes the visible part of a curve.
type SeriesStats struct {
	Min float64 `json:"min_kbps" yaml:"min_kbps"`
	Max float64 `json:"max_kbps" yaml:"max_kbps"`
	Avg float64 `json:"avg_kbps" yaml:"avg_kbps"`
}

// Stats computes min/max/average bitrate over the series. An empty series
// yields the zero value.
func (s Series) Stats() SeriesStats {
	if len(s) == 0 {
		return SeriesStats{}
	}

	st := SeriesStats{Min: s[0].Kbps, Max: s[0].Kbps}
	sum := 0.0
	for _, p := range s {
		if p.Kbps < st.Min {
			st.Min = p.Kbps
		}
		if p.Kbps > st.Max {
			st.Max = p.Kbps
		}
		sum += p.Kbps
	}
	st.Avg = sum / float64(len(s))
	return st
}

// NiceScale holds rounded axis bounds and the tick positions between them.
type NiceScale struct {
	Min   float64
	Max   float64
	Step  float64
	Ticks []float64
}

// ComputeNiceScale picks axis bounds and a step from the 1/2/2.5/5 ladder so
// roughly numTicks gridlines land on round bitrate values. The data maximum is
// padded by ScaleHeadroom and the minimum is floored at zero.
func ComputeNiceScale(dataMin, dataMax float64, numTicks int) NiceScale {
	if numTicks < 2 {
		numTicks = DefaultNiceTicks
	}
	if dataMax <= dataMin {
		dataMax = dataMin + 1
	}

	padded := dataMax * ScaleHeadroom
	rough := (padded - dataMin) / float64(numTicks-1)
	if rough <= 0 {
		rough = 1
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(rough)))
	residual := rough / magnitude

	var step float64
	switch {
	case residual <= 1:
		step = magnitude
	case residual <= 2:
		step = 2 * magnitude
	case residual <= 2.5:
		step = 2.5 * magnitude
	case residual <= 5:
		step = 5 * magnitude
	default:
		step = 10 * magnitude
	}

	niceMin := math.Floor(dataMin/step) * step
	if niceMin < 0 {
		niceMin = 0
	}
	niceMax := math.Ceil(padded/step) * step

	var ticks []float64
	for v := niceMin; v <= niceMax+step*0.001; v += step {
		ticks = append(ticks, v)
	}

	return NiceScale{Min: niceMin, Max: niceMax, Step: step, Ticks: ticks}
}

// FormatBitrate renders a kbps value the way the chart labels it: whole Kbps
// below 1 Mbps, otherwise Mbps with two decimals.
func FormatBitrate(kbps float64) string {
	if kbps >= 1000 {
		return fmt.Sprintf("%.2f Mbps", kbps/1000)
	}
	return fmt.Sprintf("%.0f Kbps", kbps)
}

// FormatAxisBitrate renders an axis tick label: Mbps ticks drop the decimals
// when the value is a whole number of Mbps.
func FormatAxisBitrate(kbps float64) string {
	if kbps >= 1000 {
		if math.Mod(kbps, 1000) == 0 {
			return fmt.Sprintf("%.0f Mbps", kbps/1000)
		}
		return fmt.Sprintf("%.1f Mbps", kbps/1000)
	}
	return fmt.Sprintf("%.0f Kbps", kbps)
}
