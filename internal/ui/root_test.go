package ui

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/rollingQP/BitrateViewer/internal/analyze"
	"github.com/rollingQP/BitrateViewer/internal/cpu"
	"github.com/rollingQP/BitrateViewer/internal/preview"
	"github.com/rollingQP/BitrateViewer/internal/probe"
)

func TestRootUI_RefusesAnalysisWithoutTools(t *testing.T) {
	app := test.NewApp()
	window := app.NewWindow("test")

	cpus := cpu.NewManager()
	analysisSvc := analyze.NewService(probe.Tools{}, cpus)
	previewSvc := preview.NewService("")

	ui := NewRootUI(window, app, analysisSvc, previewSvc, cpus, errors.New("ffprobe not found"))

	if !ui.openBtn.Disabled() {
		t.Error("open button should be disabled while media tools are missing")
	}

	ui.startAnalysis("/videos/clip.mp4")
	if analysisSvc.CurrentJob() != nil {
		t.Error("analysis must not start while media tools are missing")
	}
}

func TestRootUI_OpenEnabledWithTools(t *testing.T) {
	app := test.NewApp()
	window := app.NewWindow("test")

	cpus := cpu.NewManager()
	analysisSvc := analyze.NewService(probe.Tools{FFprobe: "ffprobe", FFmpeg: "ffmpeg"}, cpus)
	previewSvc := preview.NewService("ffmpeg")

	ui := NewRootUI(window, app, analysisSvc, previewSvc, cpus, nil)

	if ui.openBtn.Disabled() {
		t.Error("open button should be enabled when media tools are present")
	}
}
