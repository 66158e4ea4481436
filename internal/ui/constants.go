package ui

import "time"

// Window sizing
const (
	WindowMinWidth  float32 = 900
	WindowMinHeight float32 = 600

	ChartMinHeight    float32 = 320
	TimelineHeight    float32 = 56
	AxisLabelWidth    float32 = 64
	AxisLabelTextSize float32 = 11
	TimeAxisHeight    float32 = 20
	PreviewPopupPad   float32 = 12
	PreviewFrameWidth float32 = 320
)

// Zoom and pan behavior
const (
	// WheelZoomIn is applied per scroll step; its inverse zooms out.
	WheelZoomIn  = 1.0 / 1.3
	WheelZoomOut = 1.3

	// Button zoom is coarser than the wheel.
	ButtonZoomIn  = 1.0 / 1.5
	ButtonZoomOut = 1.5
)

// Chart point budgets per zoom level. Wide views get fewer points since the
// pixels cannot show them anyway.
const (
	PointsWideView   = 800
	PointsMediumView = 1200
	PointsCloseView  = 1500

	WideViewSpan   = 0.8
	MediumViewSpan = 0.5
)

// Interaction timing
const (
	// RedrawDebounce coalesces viewport changes into one redraw.
	RedrawDebounce = 100 * time.Millisecond

	// HoverThrottle limits crosshair updates while the mouse moves.
	HoverThrottle = 25 * time.Millisecond
)

// Timeline drag edge grab distance in pixels
const (
	TimelineEdgeGrab float32 = 6
)

// Time axis target gridline count
const (
	TimeAxisTicks = 6
)

// Text fragments
const (
	DashPlaceholder = "—"
)
