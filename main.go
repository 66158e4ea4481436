package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	log "github.com/sirupsen/logrus"

	"github.com/rollingQP/BitrateViewer/internal/analyze"
	"github.com/rollingQP/BitrateViewer/internal/cpu"
	"github.com/rollingQP/BitrateViewer/internal/preview"
	"github.com/rollingQP/BitrateViewer/internal/probe"
	"github.com/rollingQP/BitrateViewer/internal/ui"
	"github.com/rollingQP/BitrateViewer/internal/version"
)

func main() {
	log.Infof("%s v%s starting...", version.AppName, version.Version)

	myApp := app.NewWithID(version.AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(version.AppName + " v" + version.Version)
	myWindow.Resize(fyne.NewSize(ui.WindowMinWidth, ui.WindowMinHeight))

	// Initialize services
	tools, toolsErr := probe.Locate()
	if toolsErr != nil {
		log.WithError(toolsErr).Error("media tools not found")
		dialog.ShowError(toolsErr, myWindow)
	}

	cpus := cpu.NewManager()
	analysisSvc := analyze.NewService(tools, cpus)
	previewSvc := preview.NewService(tools.FFmpeg)
	defer previewSvc.Close()

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, analysisSvc, previewSvc, cpus, toolsErr)

	// Show and run
	myWindow.ShowAndRun()
}
