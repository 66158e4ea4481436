package ui

import (
	"image"
	"testing"

	"github.com/rollingQP/BitrateViewer/internal/model"
)

func TestInterpolateKbps(t *testing.T) {
	samples := model.Series{
		{Time: 0, Kbps: 100},
		{Time: 1, Kbps: 300},
		{Time: 2, Kbps: 200},
	}

	tests := []struct {
		t        float64
		expected float64
	}{
		{-1, 100},  // before the first sample
		{0, 100},   // exactly on a sample
		{0.5, 200}, // midway between samples
		{1.5, 250},
		{5, 200}, // past the last sample
	}

	for _, test := range tests {
		if got := interpolateKbps(samples, test.t); got != test.expected {
			t.Errorf("interpolateKbps(%v) = %v, expected %v", test.t, got, test.expected)
		}
	}
}

func TestNiceTimeStep(t *testing.T) {
	tests := []struct {
		span     float64
		expected float64
	}{
		{60, 10},
		{600, 100},
		{10, 2},
		{3, 0.5},
	}

	for _, test := range tests {
		if got := NiceTimeStep(test.span, TimeAxisTicks); got != test.expected {
			t.Errorf("NiceTimeStep(%v) = %v, expected %v", test.span, got, test.expected)
		}
	}
}

func TestRenderCurve(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	samples := model.Series{
		{Time: 0, Kbps: 500},
		{Time: 10, Kbps: 500},
	}
	scale := model.ComputeNiceScale(0, 1000, model.DefaultNiceTicks)
	colors := DarkChartColors()

	renderCurve(img, samples, 0, 10, scale, colors)

	// Area below the constant curve is filled, area above is background
	bottom := img.RGBAAt(50, 49)
	if bottom != colors.Fill && bottom != colors.Line {
		t.Errorf("pixel under the curve = %v, expected fill color", bottom)
	}

	top := img.RGBAAt(50, 0)
	if top == colors.Fill {
		t.Error("pixel above the curve should not be filled")
	}
}

func TestRenderCurve_EmptySeries(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	scale := model.ComputeNiceScale(0, 100, model.DefaultNiceTicks)
	colors := LightChartColors()

	// Must not panic and must still paint the background
	renderCurve(img, nil, 0, 10, scale, colors)

	if img.RGBAAt(20, 5) == (DarkChartColors().Fill) {
		t.Error("empty series should not draw a curve")
	}
}

func TestDrawDashedHLine(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 10))
	colors := DarkChartColors()

	drawDashedHLine(img, 5, 0, 40, colors.Average)

	// Dash pattern: pixels 0-5 on, 6-9 off
	if img.RGBAAt(2, 5) != colors.Average {
		t.Error("expected a drawn pixel inside a dash")
	}
	if img.RGBAAt(8, 5) == colors.Average {
		t.Error("expected a gap between dashes")
	}

	// Out of range rows are ignored
	drawDashedHLine(img, -1, 0, 40, colors.Average)
	drawDashedHLine(img, 10, 0, 40, colors.Average)
}

func TestRenderTimeline_DimsOutsideSelection(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 20))
	samples := model.Series{
		{Time: 0, Kbps: 800},
		{Time: 10, Kbps: 800},
	}
	colors := DarkChartColors()

	renderTimeline(img, samples, 0.4, 0.6, colors)

	inside := img.RGBAAt(50, 19)
	outside := img.RGBAAt(10, 19)
	if inside == outside {
		t.Error("selection should look different from the dimmed outside")
	}
}
