package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/rollingQP/BitrateViewer/internal/model"
)

func TestTimelineWidget_WheelZoom(t *testing.T) {
	test.NewApp()
	tl := NewTimelineWidget(DarkChartColors())
	tl.Resize(fyne.NewSize(400, 56))
	tl.SetSeries(model.Series{{Time: 0, Kbps: 100}, {Time: 10, Kbps: 300}})

	var got Viewport
	calls := 0
	tl.SetSelectionCallback(func(v Viewport) {
		got = v
		calls++
	})

	// Wheel up over the middle zooms in around it
	tl.Scrolled(&fyne.ScrollEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(200, 20)},
		Scrolled:   fyne.Delta{DY: 1},
	})

	if calls != 1 {
		t.Fatalf("selection callback fired %d times, expected 1", calls)
	}
	if got.Span() >= 1 {
		t.Errorf("wheel up did not zoom in, span = %v", got.Span())
	}
	mid := (got.Start + got.End) / 2
	if mid < 0.49 || mid > 0.51 {
		t.Errorf("zoom not anchored at the cursor, center = %v", mid)
	}

	// Wheel down zooms back out
	tl.Scrolled(&fyne.ScrollEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(200, 20)},
		Scrolled:   fyne.Delta{DY: -1},
	})
	if got.Span() < 0.99 {
		t.Errorf("wheel down did not zoom out, span = %v", got.Span())
	}
}
