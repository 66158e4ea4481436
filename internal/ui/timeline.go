package ui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/rollingQP/BitrateViewer/internal/model"
)

// timeline drag modes
type timelineDrag int

const (
	dragNone timelineDrag = iota
	dragMove
	dragLeft
	dragRight
)

// TimelineWidget is the navigator strip under the chart: the whole curve with
// the visible range highlighted. The selection can be dragged as a whole,
// resized at its edges, re-centered with a tap, and reset with a double tap.
type TimelineWidget struct {
	widget.BaseWidget

	mu        sync.Mutex
	series    model.Series
	selection Viewport
	colors    ChartColors

	raster   *canvas.Raster
	dragMode timelineDrag

	onSelectionChanged func(Viewport)
}

// NewTimelineWidget creates an empty timeline.
func NewTimelineWidget(colors ChartColors) *TimelineWidget {
	t := &TimelineWidget{
		selection: NewViewport(),
		colors:    colors,
	}
	t.raster = canvas.NewRaster(t.draw)
	t.ExtendBaseWidget(t)
	return t
}

// SetSelectionCallback sets the callback fired when the user changes the
// selected range.
func (t *TimelineWidget) SetSelectionCallback(callback func(Viewport)) {
	t.onSelectionChanged = callback
}

// SetSeries replaces the navigator curve. Callers pass the downsampled
// timeline series, not the full one.
func (t *TimelineWidget) SetSeries(series model.Series) {
	t.mu.Lock()
	t.series = series
	t.selection.Reset()
	t.mu.Unlock()
	t.Refresh()
}

// SetSelection mirrors an externally changed viewport, e.g. chart zooming.
func (t *TimelineWidget) SetSelection(view Viewport) {
	t.mu.Lock()
	t.selection = view
	t.mu.Unlock()
	t.Refresh()
}

func (t *TimelineWidget) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	t.mu.Lock()
	series := t.series
	sel := t.selection
	t.mu.Unlock()

	if len(series) == 0 {
		fillRect(img, 0, 0, w, h, t.colors.Background)
		return img
	}

	renderTimeline(img, series, sel.Start, sel.End, t.colors)
	return img
}

// fracAt converts an x position to a fraction of the video.
func (t *TimelineWidget) fracAt(x float32) float64 {
	width := t.Size().Width
	if width <= 0 {
		return 0
	}
	frac := float64(x / width)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return frac
}

// Scrolled zooms the selection anchored at the cursor, mirroring the chart's
// wheel behavior.
func (t *TimelineWidget) Scrolled(ev *fyne.ScrollEvent) {
	factor := WheelZoomOut
	if ev.Scrolled.DY > 0 {
		factor = WheelZoomIn
	}
	frac := t.fracAt(ev.Position.X)

	t.mu.Lock()
	anchor := 0.5
	if span := t.selection.Span(); span > 0 {
		anchor = (frac - t.selection.Start) / span
	}
	t.selection.ZoomAt(anchor, factor)
	sel := t.selection
	t.mu.Unlock()

	t.Refresh()
	t.notifySelection(sel)
}

// Dragged moves or resizes the selection depending on where the drag started.
func (t *TimelineWidget) Dragged(ev *fyne.DragEvent) {
	width := t.Size().Width
	if width <= 0 {
		return
	}

	t.mu.Lock()
	if t.dragMode == dragNone {
		startX := float32(t.selection.Start) * width
		endX := float32(t.selection.End) * width
		x := ev.Position.X - ev.Dragged.DX
		switch {
		case absFloat32(x-startX) <= TimelineEdgeGrab:
			t.dragMode = dragLeft
		case absFloat32(x-endX) <= TimelineEdgeGrab:
			t.dragMode = dragRight
		default:
			t.dragMode = dragMove
		}
	}

	frac := t.fracAt(ev.Position.X)
	switch t.dragMode {
	case dragLeft:
		t.selection.SetRange(frac, t.selection.End)
	case dragRight:
		t.selection.SetRange(t.selection.Start, frac)
	case dragMove:
		t.selection.Pan(float64(ev.Dragged.DX / width))
	}
	sel := t.selection
	t.mu.Unlock()

	t.Refresh()
	t.notifySelection(sel)
}

// DragEnd implements fyne.Draggable
func (t *TimelineWidget) DragEnd() {
	t.mu.Lock()
	t.dragMode = dragNone
	t.mu.Unlock()
}

// Tapped centers the selection on the tapped position.
func (t *TimelineWidget) Tapped(ev *fyne.PointEvent) {
	frac := t.fracAt(ev.Position.X)

	t.mu.Lock()
	t.selection.CenterOn(frac)
	sel := t.selection
	t.mu.Unlock()

	t.Refresh()
	t.notifySelection(sel)
}

// DoubleTapped resets the selection to the whole video.
func (t *TimelineWidget) DoubleTapped(_ *fyne.PointEvent) {
	t.mu.Lock()
	t.selection.Reset()
	sel := t.selection
	t.mu.Unlock()

	t.Refresh()
	t.notifySelection(sel)
}

func (t *TimelineWidget) notifySelection(sel Viewport) {
	if t.onSelectionChanged != nil {
		t.onSelectionChanged(sel)
	}
}

// MinSize implements fyne.Widget
func (t *TimelineWidget) MinSize() fyne.Size {
	return fyne.NewSize(WindowMinWidth/2, TimelineHeight)
}

// CreateRenderer implements fyne.Widget
func (t *TimelineWidget) CreateRenderer() fyne.WidgetRenderer {
	return &timelineRenderer{timeline: t}
}

type timelineRenderer struct {
	timeline *TimelineWidget
}

func (r *timelineRenderer) Layout(size fyne.Size) {
	r.timeline.raster.Resize(size)
}

func (r *timelineRenderer) MinSize() fyne.Size {
	return r.timeline.MinSize()
}

func (r *timelineRenderer) Refresh() {
	r.timeline.raster.Refresh()
}

func (r *timelineRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.timeline.raster}
}

func (r *timelineRenderer) Destroy() {}

func absFloat32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
