package ui

// MinViewSpan is the smallest visible fraction of the video; zooming stops
// there.
const MinViewSpan = 0.005

// Viewport is the visible part of the curve as fractions of the full
// duration. The zero value is invalid; use NewViewport.
type Viewport struct {
	Start float64
	End   float64
}

// NewViewport returns a viewport showing the whole video.
func NewViewport() Viewport {
	return Viewport{Start: 0, End: 1}
}

// Reset shows the whole video again.
func (v *Viewport) Reset() {
	v.Start, v.End = 0, 1
}

// Span returns the visible fraction.
func (v Viewport) Span() float64 {
	return v.End - v.Start
}

// IsFull reports whether the whole video is visible.
func (v Viewport) IsFull() bool {
	return v.Start <= 0 && v.End >= 1
}

// ZoomAt scales the span by factor, keeping the point at anchorFrac (0..1
// within the current view) at the same position. Factors below 1 zoom in.
func (v *Viewport) ZoomAt(anchorFrac, factor float64) {
	if anchorFrac < 0 {
		anchorFrac = 0
	}
	if anchorFrac > 1 {
		anchorFrac = 1
	}

	span := v.Span()
	anchor := v.Start + anchorFrac*span

	newSpan := span * factor
	if newSpan < MinViewSpan {
		newSpan = MinViewSpan
	}
	if newSpan > 1 {
		newSpan = 1
	}

	v.Start = anchor - anchorFrac*newSpan
	v.End = v.Start + newSpan
	v.clamp()
}

// Pan shifts the view by a fraction of the full duration.
func (v *Viewport) Pan(delta float64) {
	span := v.Span()
	v.Start += delta
	v.End = v.Start + span
	v.clamp()
}

// SetRange selects an explicit range, enforcing order and the minimum span.
func (v *Viewport) SetRange(start, end float64) {
	if end < start {
		start, end = end, start
	}
	if end-start < MinViewSpan {
		mid := (start + end) / 2
		start = mid - MinViewSpan/2
		end = mid + MinViewSpan/2
	}
	v.Start, v.End = start, end
	v.clamp()
}

// CenterOn moves the view so the given fraction of the video sits in the
// middle, keeping the span.
func (v *Viewport) CenterOn(frac float64) {
	span := v.Span()
	v.Start = frac - span/2
	v.End = v.Start + span
	v.clamp()
}

// TimeRange converts the fractional view to seconds.
func (v Viewport) TimeRange(maxTime float64) (from, to float64) {
	return v.Start * maxTime, v.End * maxTime
}

// PointBudget returns how many chart points the current zoom level deserves.
func (v Viewport) PointBudget() int {
	span := v.Span()
	switch {
	case span > WideViewSpan:
		return PointsWideView
	case span > MediumViewSpan:
		return PointsMediumView
	default:
		return PointsCloseView
	}
}

// clamp keeps the view inside [0,1] preserving the span where possible.
func (v *Viewport) clamp() {
	span := v.Span()
	if span > 1 {
		span = 1
	}
	if v.Start < 0 {
		v.Start = 0
		v.End = span
	}
	if v.End > 1 {
		v.End = 1
		v.Start = 1 - span
	}
	if v.Start < 0 {
		v.Start = 0
	}
}
