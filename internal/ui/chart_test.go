package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"

	"github.com/rollingQP/BitrateViewer/internal/model"
)

func TestChartWidget_AxisAndAverageLabels(t *testing.T) {
	test.NewApp()
	chart := NewChartWidget(DarkChartColors())
	chart.Resize(fyne.NewSize(400, 200))

	chart.SetSeries(model.Series{
		{Time: 0.5, Kbps: 300},
		{Time: 1.5, Kbps: 900},
		{Time: 2.5, Kbps: 600},
	})

	renderer, ok := test.WidgetRenderer(chart).(*chartRenderer)
	if !ok {
		t.Fatal("chart renderer has an unexpected type")
	}
	renderer.Refresh()

	scale := chart.Scale()
	if len(scale.Ticks) == 0 {
		t.Fatal("expected axis ticks for a non-empty series")
	}

	shown := make(map[string]bool)
	for _, obj := range renderer.Objects() {
		if text, isText := obj.(*canvas.Text); isText && text.Visible() && text.Text != "" {
			shown[text.Text] = true
		}
	}

	for _, tick := range scale.Ticks {
		if !shown[model.FormatAxisBitrate(tick)] {
			t.Errorf("axis label for tick %v not shown; labels: %v", tick, shown)
		}
	}

	avg := chart.VisibleStats().Avg
	if avg <= 0 {
		t.Fatal("expected a positive visible average")
	}
	if !shown[model.FormatBitrate(avg)] {
		t.Errorf("average label %q not shown; labels: %v", model.FormatBitrate(avg), shown)
	}
}

func TestChartWidget_NoLabelsWithoutSeries(t *testing.T) {
	test.NewApp()
	chart := NewChartWidget(DarkChartColors())
	chart.Resize(fyne.NewSize(400, 200))

	renderer := test.WidgetRenderer(chart).(*chartRenderer)
	renderer.Refresh()

	for _, obj := range renderer.Objects() {
		if text, isText := obj.(*canvas.Text); isText && text.Visible() && text.Text != "" {
			t.Errorf("empty chart shows label %q", text.Text)
		}
	}
}
