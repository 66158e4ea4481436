package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/rollingQP/BitrateViewer/internal/model"
	"github.com/rollingQP/BitrateViewer/internal/preview"
)

// PreviewPopup shows the extracted frame next to the cursor with its
// timecode underneath.
type PreviewPopup struct {
	popup     *widget.PopUp
	image     *canvas.Image
	timeLabel *widget.Label
	canvas    fyne.Canvas
}

// NewPreviewPopup creates the popup on the given canvas.
func NewPreviewPopup(cv fyne.Canvas) *PreviewPopup {
	p := &PreviewPopup{
		image:     canvas.NewImageFromResource(nil),
		timeLabel: widget.NewLabel(""),
		canvas:    cv,
	}
	p.image.FillMode = canvas.ImageFillContain
	p.image.SetMinSize(fyne.NewSize(float32(preview.ThumbWidth), float32(preview.ThumbHeight)))
	p.timeLabel.Alignment = fyne.TextAlignCenter

	content := container.NewVBox(p.image, p.timeLabel)
	p.popup = widget.NewPopUp(content, cv)
	p.popup.Hide()
	return p
}

// ShowAt displays a frame near the given canvas position, clamped so the
// popup stays fully on screen.
func (p *PreviewPopup) ShowAt(imagePath string, timeSec, fps float64, pos fyne.Position) {
	p.image.File = imagePath
	p.image.Refresh()
	p.timeLabel.SetText(model.FormatTimecode(timeSec, fps))

	size := p.popup.MinSize()
	canvasSize := p.canvas.Size()

	x := pos.X + PreviewPopupPad
	y := pos.Y - size.Height - PreviewPopupPad
	if x+size.Width > canvasSize.Width {
		x = pos.X - size.Width - PreviewPopupPad
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = pos.Y + PreviewPopupPad
	}
	if y+size.Height > canvasSize.Height {
		y = canvasSize.Height - size.Height
	}

	p.popup.ShowAtPosition(fyne.NewPos(x, y))
}

// Hide hides the popup.
func (p *PreviewPopup) Hide() {
	p.popup.Hide()
}
