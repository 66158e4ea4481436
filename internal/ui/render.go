package ui

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/rollingQP/BitrateViewer/internal/model"
)

// ChartColors is the palette used by the raster chart and timeline.
type ChartColors struct {
	Background color.RGBA
	Grid       color.RGBA
	Fill       color.RGBA
	Line       color.RGBA
	Average    color.RGBA
	Text       color.RGBA
	Dimmed     color.RGBA
}

// DarkChartColors is the palette for the dark theme variant.
func DarkChartColors() ChartColors {
	return ChartColors{
		Background: color.RGBA{R: 24, G: 26, B: 30, A: 255},
		Grid:       color.RGBA{R: 52, G: 56, B: 62, A: 255},
		Fill:       color.RGBA{R: 38, G: 90, B: 140, A: 255},
		Line:       color.RGBA{R: 96, G: 170, B: 235, A: 255},
		Average:    color.RGBA{R: 235, G: 180, B: 60, A: 255},
		Text:       color.RGBA{R: 170, G: 175, B: 182, A: 255},
		Dimmed:     color.RGBA{R: 0, G: 0, B: 0, A: 120},
	}
}

// LightChartColors is the palette for the light theme variant.
func LightChartColors() ChartColors {
	return ChartColors{
		Background: color.RGBA{R: 250, G: 250, B: 250, A: 255},
		Grid:       color.RGBA{R: 220, G: 222, B: 226, A: 255},
		Fill:       color.RGBA{R: 150, G: 196, B: 235, A: 255},
		Line:       color.RGBA{R: 25, G: 118, B: 210, A: 255},
		Average:    color.RGBA{R: 225, G: 140, B: 20, A: 255},
		Text:       color.RGBA{R: 95, G: 99, B: 106, A: 255},
		Dimmed:     color.RGBA{R: 255, G: 255, B: 255, A: 140},
	}
}

// renderCurve draws the bitrate curve for [fromTime, toTime] into img: the
// background, gridlines at the scale ticks and time ticks, and the filled
// curve. Samples must be sorted by time.
func renderCurve(img *image.RGBA, samples model.Series, fromTime, toTime float64, scale model.NiceScale, colors ChartColors) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	fillRect(img, 0, 0, w, h, colors.Background)

	valueSpan := scale.Max - scale.Min
	if valueSpan <= 0 {
		valueSpan = 1
	}

	// Horizontal gridlines at bitrate ticks
	for _, tick := range scale.Ticks {
		y := h - 1 - int((tick-scale.Min)/valueSpan*float64(h-1))
		drawHLine(img, y, 0, w, colors.Grid)
	}

	// Vertical gridlines at round time values
	timeSpan := toTime - fromTime
	if timeSpan > 0 {
		step := NiceTimeStep(timeSpan, TimeAxisTicks)
		for t := math.Ceil(fromTime/step) * step; t <= toTime; t += step {
			x := int((t - fromTime) / timeSpan * float64(w-1))
			drawVLine(img, x, 0, h, colors.Grid)
		}
	}

	if len(samples) == 0 || timeSpan <= 0 {
		return
	}

	// Column fill: one interpolated value per pixel column
	prevY := -1
	for x := 0; x < w; x++ {
		t := fromTime + float64(x)/float64(maxInt(w-1, 1))*timeSpan
		kbps := interpolateKbps(samples, t)
		y := h - 1 - int((kbps-scale.Min)/valueSpan*float64(h-1))
		if y < 0 {
			y = 0
		}
		if y > h-1 {
			y = h - 1
		}

		for yy := y; yy < h; yy++ {
			img.SetRGBA(b.Min.X+x, b.Min.Y+yy, colors.Fill)
		}

		// Connect steep segments so the outline has no gaps
		if prevY >= 0 {
			lo, hi := minInt(prevY, y), maxInt(prevY, y)
			for yy := lo; yy <= hi; yy++ {
				img.SetRGBA(b.Min.X+x, b.Min.Y+yy, colors.Line)
			}
		} else {
			img.SetRGBA(b.Min.X+x, b.Min.Y+y, colors.Line)
		}
		prevY = y
	}
}

// renderTimeline draws the full-video curve with everything outside the
// selected fraction range dimmed.
func renderTimeline(img *image.RGBA, samples model.Series, selStart, selEnd float64, colors ChartColors) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	maxTime := samples.MaxTime()
	stats := samples.Stats()
	scale := model.NiceScale{Min: 0, Max: stats.Max * model.ScaleHeadroom}
	if scale.Max <= 0 {
		scale.Max = 1
	}
	renderCurve(img, samples, 0, maxTime, scale, colors)

	// Dim the parts outside the selection
	startX := int(selStart * float64(w))
	endX := int(selEnd * float64(w))
	dimColumns(img, 0, startX, colors.Dimmed)
	dimColumns(img, endX, w, colors.Dimmed)
}

// interpolateKbps returns the linearly interpolated bitrate at time t.
func interpolateKbps(samples model.Series, t float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	if t <= samples[0].Time {
		return samples[0].Kbps
	}
	if t >= samples[n-1].Time {
		return samples[n-1].Kbps
	}

	i := sort.Search(n, func(k int) bool { return samples[k].Time >= t })
	a, b := samples[i-1], samples[i]
	if b.Time == a.Time {
		return b.Kbps
	}
	frac := (t - a.Time) / (b.Time - a.Time)
	return a.Kbps + frac*(b.Kbps-a.Kbps)
}

// NiceTimeStep picks a round gridline step in seconds from the 1/2/5 ladder.
func NiceTimeStep(span float64, targetTicks int) float64 {
	if span <= 0 || targetTicks < 1 {
		return 1
	}
	rough := span / float64(targetTicks)
	magnitude := math.Pow(10, math.Floor(math.Log10(rough)))
	residual := rough / magnitude

	switch {
	case residual <= 1:
		return magnitude
	case residual <= 2:
		return 2 * magnitude
	case residual <= 5:
		return 5 * magnitude
	default:
		return 10 * magnitude
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	b := img.Bounds()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(b.Min.X+x, b.Min.Y+y, c)
		}
	}
}

func drawHLine(img *image.RGBA, y, x0, x1 int, c color.RGBA) {
	b := img.Bounds()
	if y < 0 || y >= b.Dy() {
		return
	}
	for x := x0; x < x1; x++ {
		img.SetRGBA(b.Min.X+x, b.Min.Y+y, c)
	}
}

// drawDashedHLine draws a horizontal line with a 6-on 4-off dash pattern.
func drawDashedHLine(img *image.RGBA, y, x0, x1 int, c color.RGBA) {
	b := img.Bounds()
	if y < 0 || y >= b.Dy() {
		return
	}
	for x := x0; x < x1; x++ {
		if x%10 < 6 {
			img.SetRGBA(b.Min.X+x, b.Min.Y+y, c)
		}
	}
}

func drawVLine(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	b := img.Bounds()
	if x < 0 || x >= b.Dx() {
		return
	}
	for y := y0; y < y1; y++ {
		img.SetRGBA(b.Min.X+x, b.Min.Y+y, c)
	}
}

// dimColumns multiplies a translucent layer over the columns [x0, x1).
func dimColumns(img *image.RGBA, x0, x1 int, dim color.RGBA) {
	b := img.Bounds()
	if x0 < 0 {
		x0 = 0
	}
	if x1 > b.Dx() {
		x1 = b.Dx()
	}
	alpha := int(dim.A)
	for x := x0; x < x1; x++ {
		for y := 0; y < b.Dy(); y++ {
			px := img.RGBAAt(b.Min.X+x, b.Min.Y+y)
			px.R = uint8((int(px.R)*(255-alpha) + int(dim.R)*alpha) / 255)
			px.G = uint8((int(px.G)*(255-alpha) + int(dim.G)*alpha) / 255)
			px.B = uint8((int(px.B)*(255-alpha) + int(dim.B)*alpha) / 255)
			img.SetRGBA(b.Min.X+x, b.Min.Y+y, px)
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
