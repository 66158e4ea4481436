package ui

import (
	"image"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/rollingQP/BitrateViewer/internal/model"
)

// ChartWidget draws the bitrate curve for the current viewport and handles
// zooming (wheel and double tap), panning (drag) and hovering (crosshair
// plus callbacks for the preview popup).
type ChartWidget struct {
	widget.BaseWidget

	mu     sync.Mutex
	series model.Series
	view   Viewport
	scale  model.NiceScale
	colors ChartColors

	raster *canvas.Raster
	crossV *canvas.Line
	crossH *canvas.Line

	lastHover time.Time

	// Callbacks
	onHover       func(timeSec, kbps float64, pos fyne.Position)
	onHoverEnd    func()
	onViewChanged func(Viewport)
}

// NewChartWidget creates an empty chart.
func NewChartWidget(colors ChartColors) *ChartWidget {
	c := &ChartWidget{
		view:   NewViewport(),
		colors: colors,
	}
	c.raster = canvas.NewRaster(c.draw)
	c.crossV = canvas.NewLine(colors.Line)
	c.crossH = canvas.NewLine(colors.Line)
	c.crossV.Hide()
	c.crossH.Hide()
	c.ExtendBaseWidget(c)
	return c
}

// SetCallbacks sets the hover and viewport callbacks.
func (c *ChartWidget) SetCallbacks(
	onHover func(timeSec, kbps float64, pos fyne.Position),
	onHoverEnd func(),
	onViewChanged func(Viewport),
) {
	c.onHover = onHover
	c.onHoverEnd = onHoverEnd
	c.onViewChanged = onViewChanged
}

// SetSeries replaces the curve and resets the viewport.
func (c *ChartWidget) SetSeries(series model.Series) {
	c.mu.Lock()
	c.series = series
	c.view.Reset()
	c.updateScaleLocked()
	c.mu.Unlock()
	c.Refresh()
}

// Viewport returns the current view.
func (c *ChartWidget) Viewport() Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// SetViewport applies an externally chosen view, e.g. from the timeline.
func (c *ChartWidget) SetViewport(view Viewport) {
	c.mu.Lock()
	c.view = view
	c.updateScaleLocked()
	c.mu.Unlock()
	c.Refresh()
}

// Scale returns the axis scale of the visible range.
func (c *ChartWidget) Scale() model.NiceScale {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

// VisibleStats returns min/max/avg over the visible samples.
func (c *ChartWidget) VisibleStats() model.SeriesStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibleLocked(0).Stats()
}

// Zoom applies a zoom factor anchored at the view center, for toolbar
// buttons.
func (c *ChartWidget) Zoom(factor float64) {
	c.mu.Lock()
	c.view.ZoomAt(0.5, factor)
	c.updateScaleLocked()
	view := c.view
	c.mu.Unlock()
	c.Refresh()
	c.notifyView(view)
}

// ResetZoom shows the whole video.
func (c *ChartWidget) ResetZoom() {
	c.mu.Lock()
	c.view.Reset()
	c.updateScaleLocked()
	view := c.view
	c.mu.Unlock()
	c.Refresh()
	c.notifyView(view)
}

// draw renders the visible slice of the curve into the raster image.
func (c *ChartWidget) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	c.mu.Lock()
	series := c.series
	view := c.view
	scale := c.scale
	visible := c.visibleLocked(view.PointBudget())
	c.mu.Unlock()

	if len(series) == 0 {
		fillRect(img, 0, 0, w, h, c.colors.Background)
		return img
	}

	from, to := view.TimeRange(series.MaxTime())
	renderCurve(img, visible, from, to, scale, c.colors)

	// Dashed mean line over the visible samples
	if stats := visible.Stats(); stats.Avg > 0 {
		span := scale.Max - scale.Min
		if span <= 0 {
			span = 1
		}
		y := h - 1 - int((stats.Avg-scale.Min)/span*float64(h-1))
		drawDashedHLine(img, y, 0, w, c.colors.Average)
	}
	return img
}

// valueToY maps a bitrate value to a vertical position within height h.
func valueToY(v float64, scale model.NiceScale, h float32) float32 {
	span := scale.Max - scale.Min
	if span <= 0 {
		span = 1
	}
	return h - float32((v-scale.Min)/span)*h
}

// visibleLocked returns the samples of the current view, downsampled to the
// given budget. Zero budget keeps every sample.
func (c *ChartWidget) visibleLocked(budget int) model.Series {
	if len(c.series) == 0 {
		return nil
	}
	from, to := c.view.TimeRange(c.series.MaxTime())
	return c.series.VisibleSlice(from, to, budget)
}

// updateScaleLocked recomputes the axis bounds for the visible range.
func (c *ChartWidget) updateScaleLocked() {
	visible := c.visibleLocked(0)
	if len(visible) == 0 {
		c.scale = model.NiceScale{Max: 1}
		return
	}
	stats := visible.Stats()
	c.scale = model.ComputeNiceScale(0, stats.Max, model.DefaultNiceTicks)
}

// timeAt converts an x position to video time.
func (c *ChartWidget) timeAt(x float32) float64 {
	width := c.Size().Width
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

	c.mu.Lock()
	defer c.mu.Unlock()
	from, to := c.view.TimeRange(c.series.MaxTime())
	return from + frac*(to-from)
}

// Scrolled zooms anchored at the cursor.
func (c *ChartWidget) Scrolled(ev *fyne.ScrollEvent) {
	width := c.Size().Width
	if width <= 0 {
		return
	}
	factor := WheelZoomOut
	if ev.Scrolled.DY > 0 {
		factor = WheelZoomIn
	}

	c.mu.Lock()
	c.view.ZoomAt(float64(ev.Position.X/width), factor)
	c.updateScaleLocked()
	view := c.view
	c.mu.Unlock()
	c.Refresh()
	c.notifyView(view)
}

// Dragged pans the view horizontally.
func (c *ChartWidget) Dragged(ev *fyne.DragEvent) {
	width := c.Size().Width
	if width <= 0 {
		return
	}

	c.mu.Lock()
	delta := -float64(ev.Dragged.DX/width) * c.view.Span()
	c.view.Pan(delta)
	c.updateScaleLocked()
	view := c.view
	c.mu.Unlock()
	c.Refresh()
	c.notifyView(view)
}

// DragEnd implements fyne.Draggable
func (c *ChartWidget) DragEnd() {}

// DoubleTapped resets the zoom.
func (c *ChartWidget) DoubleTapped(_ *fyne.PointEvent) {
	c.ResetZoom()
}

// MouseIn implements desktop.Hoverable
func (c *ChartWidget) MouseIn(ev *desktop.MouseEvent) {
	c.MouseMoved(ev)
}

// MouseMoved updates the crosshair and reports the hovered sample, throttled
// so fast movement does not flood the UI.
func (c *ChartWidget) MouseMoved(ev *desktop.MouseEvent) {
	now := time.Now()
	if now.Sub(c.lastHover) < HoverThrottle {
		return
	}
	c.lastHover = now

	c.mu.Lock()
	empty := len(c.series) == 0
	c.mu.Unlock()
	if empty {
		return
	}

	t := c.timeAt(ev.Position.X)
	kbps := c.kbpsAt(t)

	size := c.Size()
	c.crossV.Position1 = fyne.NewPos(ev.Position.X, 0)
	c.crossV.Position2 = fyne.NewPos(ev.Position.X, size.Height)
	c.crossH.Position1 = fyne.NewPos(0, ev.Position.Y)
	c.crossH.Position2 = fyne.NewPos(size.Width, ev.Position.Y)
	c.crossV.Show()
	c.crossH.Show()
	c.crossV.Refresh()
	c.crossH.Refresh()

	if c.onHover != nil {
		c.onHover(t, kbps, ev.AbsolutePosition)
	}
}

// MouseOut hides the crosshair.
func (c *ChartWidget) MouseOut() {
	c.crossV.Hide()
	c.crossH.Hide()
	if c.onHoverEnd != nil {
		c.onHoverEnd()
	}
}

// kbpsAt returns the interpolated bitrate at a time.
func (c *ChartWidget) kbpsAt(t float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return interpolateKbps(c.series, t)
}

func (c *ChartWidget) notifyView(view Viewport) {
	if c.onViewChanged != nil {
		c.onViewChanged(view)
	}
}

// MinSize implements fyne.Widget
func (c *ChartWidget) MinSize() fyne.Size {
	return fyne.NewSize(WindowMinWidth/2, ChartMinHeight)
}

// CreateRenderer implements fyne.Widget
func (c *ChartWidget) CreateRenderer() fyne.WidgetRenderer {
	avgLabel := canvas.NewText("", c.colors.Average)
	avgLabel.TextSize = AxisLabelTextSize
	avgLabel.Hide()
	return &chartRenderer{chart: c, avgLabel: avgLabel}
}

// chartRenderer lays out the raster, the crosshair lines, and the text
// overlays for axis ticks and the average line.
type chartRenderer struct {
	chart      *ChartWidget
	tickLabels []*canvas.Text
	avgLabel   *canvas.Text
}

func (r *chartRenderer) Layout(size fyne.Size) {
	r.chart.raster.Resize(size)
	r.rebuildLabels()
}

func (r *chartRenderer) MinSize() fyne.Size {
	return r.chart.MinSize()
}

func (r *chartRenderer) Refresh() {
	r.rebuildLabels()
	r.chart.raster.Refresh()
}

// rebuildLabels syncs the overlay texts with the current axis scale and
// visible stats.
func (r *chartRenderer) rebuildLabels() {
	size := r.chart.Size()
	scale := r.chart.Scale()
	stats := r.chart.VisibleStats()
	colors := r.chart.colors

	for len(r.tickLabels) < len(scale.Ticks) {
		label := canvas.NewText("", colors.Text)
		label.TextSize = AxisLabelTextSize
		r.tickLabels = append(r.tickLabels, label)
	}

	for i, label := range r.tickLabels {
		if i >= len(scale.Ticks) || stats == (model.SeriesStats{}) {
			label.Hide()
			continue
		}
		tick := scale.Ticks[i]
		label.Text = model.FormatAxisBitrate(tick)

		y := valueToY(tick, scale, size.Height) - label.MinSize().Height
		if y < 0 {
			y = 0
		}
		label.Move(fyne.NewPos(4, y))
		label.Show()
		label.Refresh()
	}

	if stats.Avg > 0 {
		r.avgLabel.Text = model.FormatBitrate(stats.Avg)
		labelSize := r.avgLabel.MinSize()
		y := valueToY(stats.Avg, scale, size.Height) - labelSize.Height - 2
		if y < 0 {
			y = 0
		}
		r.avgLabel.Move(fyne.NewPos(size.Width-labelSize.Width-6, y))
		r.avgLabel.Show()
	} else {
		r.avgLabel.Hide()
	}
	r.avgLabel.Refresh()
}

func (r *chartRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.chart.raster}
	for _, label := range r.tickLabels {
		objects = append(objects, label)
	}
	return append(objects, r.avgLabel, r.chart.crossV, r.chart.crossH)
}

func (r *chartRenderer) Destroy() {}
