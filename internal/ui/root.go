package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rollingQP/BitrateViewer/internal/analyze"
	"github.com/rollingQP/BitrateViewer/internal/config"
	"github.com/rollingQP/BitrateViewer/internal/cpu"
	"github.com/rollingQP/BitrateViewer/internal/export"
	"github.com/rollingQP/BitrateViewer/internal/model"
	"github.com/rollingQP/BitrateViewer/internal/preview"
)

// VideoExtensions are the file types offered by the open dialog and accepted
// on drop.
var VideoExtensions = []string{
	".mp4", ".mkv", ".avi", ".mov", ".webm", ".ts", ".m2ts", ".flv", ".wmv", ".m4v",
}

// ExportExtensions are the report formats offered by the save dialog.
var ExportExtensions = []string{".json", ".csv", ".yaml", ".yml"}

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window
	app    fyne.App

	analysisSvc *analyze.Service
	previewSvc  *preview.Service
	cpus        *cpu.Manager

	settings     *config.Settings
	localization *Localization

	chart        *ChartWidget
	timeline     *TimelineWidget
	previewPopup *PreviewPopup

	openBtn      *widget.Button
	cancelBtn    *widget.Button
	exportBtn    *widget.Button
	windowSelect *widget.Select

	infoLabel   *widget.Label
	statsLabel  *widget.Label
	statusLabel *widget.Label
	zoomLabel   *widget.Label
	progressBar *widget.ProgressBar

	// Redraw debouncing for timeline drags
	redrawMu    sync.Mutex
	redrawTimer *time.Timer

	lastHoverFPS float64
	lastHoverPos fyne.Position

	toolsMissing bool
}

// NewRootUI creates and initializes the main UI. A non-nil toolsErr marks
// ffmpeg/ffprobe as unavailable and keeps analysis disabled.
func NewRootUI(window fyne.Window, app fyne.App, analysisSvc *analyze.Service, previewSvc *preview.Service, cpus *cpu.Manager, toolsErr error) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		analysisSvc:  analysisSvc,
		previewSvc:   previewSvc,
		cpus:         cpus,
		settings:     settings,
		localization: localization,
		toolsMissing: toolsErr != nil,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.analysisSvc.SetUpdateCallback(ui.onJobUpdate)
	ui.previewSvc.SetReadyCallback(ui.onPreviewReady)

	ui.setupUI()
	ui.setupLifecycle()
	ui.setupDrop()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	colors := DarkChartColors()
	ui.chart = NewChartWidget(colors)
	ui.timeline = NewTimelineWidget(colors)
	ui.previewPopup = NewPreviewPopup(ui.window.Canvas())

	ui.chart.SetCallbacks(ui.onChartHover, ui.onChartHoverEnd, ui.onChartViewChanged)
	ui.timeline.SetSelectionCallback(ui.onTimelineSelection)

	ui.openBtn = widget.NewButton(ui.localization.GetText(KeyOpenVideo), ui.onOpenClick)
	ui.cancelBtn = widget.NewButton(ui.localization.GetText(KeyCancel), ui.onCancelClick)
	ui.cancelBtn.Disable()
	ui.exportBtn = widget.NewButton(ui.localization.GetText(KeyExport), ui.onExportClick)
	ui.exportBtn.Disable()

	ui.windowSelect = widget.NewSelect(windowPresetLabels(), ui.onWindowSelected)
	ui.windowSelect.SetSelected(formatWindowPreset(ui.settings.GetWindowPreset()))

	zoomInBtn := widget.NewButton("+", func() { ui.chart.Zoom(ButtonZoomIn) })
	zoomOutBtn := widget.NewButton("-", func() { ui.chart.Zoom(ButtonZoomOut) })
	resetZoomBtn := widget.NewButton(ui.localization.GetText(KeyResetZoom), ui.chart.ResetZoom)
	ui.zoomLabel = widget.NewLabel(formatZoomPercent(1))
	settingsBtn := widget.NewButton(ui.localization.GetText(KeySettings), ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	toolbar := container.NewHBox(
		ui.openBtn,
		ui.cancelBtn,
		widget.NewSeparator(),
		widget.NewLabel(ui.localization.GetText(KeyWindow)),
		ui.windowSelect,
		widget.NewSeparator(),
		zoomInBtn,
		zoomOutBtn,
		resetZoomBtn,
		ui.zoomLabel,
		widget.NewSeparator(),
		ui.exportBtn,
		settingsBtn,
	)

	if ui.toolsMissing {
		ui.openBtn.Disable()
	}

	ui.infoLabel = widget.NewLabel(ui.localization.GetText(KeyDropHint))
	if ui.toolsMissing {
		ui.infoLabel.SetText(ui.localization.GetText(KeyToolsMissing))
	}
	ui.statsLabel = widget.NewLabel(DashPlaceholder)
	ui.statusLabel = widget.NewLabel("")
	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Hide()

	statusRow := container.NewBorder(nil, nil, ui.statusLabel, ui.statsLabel, ui.progressBar)
	bottom := container.NewVBox(ui.timeline, ui.infoLabel, statusRow)

	content := container.NewBorder(toolbar, bottom, nil, nil, ui.chart)
	ui.window.SetContent(content)
	ui.window.Resize(fyne.NewSize(WindowMinWidth, WindowMinHeight))
}

// setupLifecycle moves active analysis to efficiency cores while the window
// is in the background, and back when it returns.
func (ui *RootUI) setupLifecycle() {
	lifecycle := ui.app.Lifecycle()

	lifecycle.SetOnExitedForeground(func() {
		if !ui.settings.GetPowerSave() {
			return
		}
		job := ui.analysisSvc.CurrentJob()
		if job != nil && job.Status.IsActive() {
			ui.cpus.SetMode(cpu.ModeEfficiency)
		}
	})

	lifecycle.SetOnEnteredForeground(func() {
		ui.cpus.SetMode(cpu.ModeAllCores)
	})
}

// setupDrop accepts video files dropped onto the window.
func (ui *RootUI) setupDrop() {
	ui.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		for _, uri := range uris {
			path := uri.Path()
			if IsVideoFile(path) {
				ui.startAnalysis(path)
				return
			}
		}
		ui.statusLabel.SetText(ui.localization.GetText(KeyNotVideoFile))
	})
}

// IsVideoFile checks the extension against the accepted video types.
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range VideoExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// onOpenClick shows the file open dialog.
func (ui *RootUI) onOpenClick() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		ui.settings.SetLastOpenDirectory(filepath.Dir(path))
		ui.startAnalysis(path)
	}, ui.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(VideoExtensions))
	if dir := ui.settings.GetLastOpenDirectory(); dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			fileDialog.SetLocation(lister)
		}
	}
	fileDialog.Show()
}

// startAnalysis kicks off a new job for the given file. Dropped files land
// here too, so the missing-tools guard covers both entry points.
func (ui *RootUI) startAnalysis(path string) {
	if ui.toolsMissing {
		ui.statusLabel.SetText(ui.localization.GetText(KeyToolsMissing))
		return
	}

	ui.previewPopup.Hide()
	ui.previewSvc.SetVideo(path)

	if _, err := ui.analysisSvc.Start(path, ui.settings.GetWindowPreset()); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

// onCancelClick stops the running job.
func (ui *RootUI) onCancelClick() {
	ui.analysisSvc.Cancel()
}

// onWindowSelected re-analyzes with the newly picked sampling window.
func (ui *RootUI) onWindowSelected(label string) {
	window := parseWindowPreset(label)
	if window == ui.settings.GetWindowPreset() {
		return
	}
	ui.settings.SetWindowPreset(window)

	if job := ui.analysisSvc.CurrentJob(); job != nil {
		if _, err := ui.analysisSvc.Restart(window); err != nil {
			log.WithError(err).Warn("failed to restart analysis")
		}
	}
}

// onExportClick saves the current result as JSON, CSV or YAML.
func (ui *RootUI) onExportClick() {
	job := ui.analysisSvc.CurrentJob()
	if job == nil || job.Status != model.JobStatusCompleted {
		return
	}

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()

		ui.settings.SetLastExportDirectory(filepath.Dir(path))
		if err := export.NewReport(job).Write(afero.NewOsFs(), path); err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		ui.statusLabel.SetText(ui.localization.GetText(KeyExportDone))
	}, ui.window)

	saveDialog.SetFilter(storage.NewExtensionFileFilter(ExportExtensions))
	saveDialog.SetFileName(strings.TrimSuffix(job.Info.FileName(), filepath.Ext(job.Info.FileName())) + ".json")
	saveDialog.Show()
}

// onShowSettings opens the settings dialog and applies the outcome.
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func(windowChanged bool) {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.windowSelect.SetSelected(formatWindowPreset(ui.settings.GetWindowPreset()))

		if windowChanged {
			if job := ui.analysisSvc.CurrentJob(); job != nil {
				if _, err := ui.analysisSvc.Restart(ui.settings.GetWindowPreset()); err != nil {
					log.WithError(err).Warn("failed to restart analysis")
				}
			}
		}
	})
}

// onJobUpdate reflects job progress in the UI. Called from service
// goroutines.
func (ui *RootUI) onJobUpdate(job *model.AnalysisJob) {
	fyne.Do(func() {
		ui.progressBar.SetValue(job.Progress)

		switch job.Status {
		case model.JobStatusProbing:
			ui.beginActiveState()
			ui.statusLabel.SetText(ui.localization.GetText(KeyProbing))
		case model.JobStatusReading:
			ui.statusLabel.SetText(ui.localization.GetText(KeyReading))
		case model.JobStatusComputing:
			ui.statusLabel.SetText(ui.localization.GetText(KeyComputing))
		case model.JobStatusCompleted:
			ui.endActiveState()
			ui.statusLabel.SetText(ui.localization.GetText(KeyDone))
			ui.showResult(job)
		case model.JobStatusCancelled:
			ui.endActiveState()
			ui.statusLabel.SetText(ui.localization.GetText(KeyCancelled))
		case model.JobStatusError:
			ui.endActiveState()
			ui.statusLabel.SetText(ui.localization.GetText(KeyAnalysisError) + ": " + job.LastError)
		}
	})
}

func (ui *RootUI) beginActiveState() {
	ui.progressBar.Show()
	ui.cancelBtn.Enable()
	ui.exportBtn.Disable()
	ui.statsLabel.SetText(DashPlaceholder)
}

func (ui *RootUI) endActiveState() {
	ui.progressBar.Hide()
	ui.cancelBtn.Disable()
	// A background finish must not stay pinned to efficiency cores
	ui.cpus.SetMode(cpu.ModeAllCores)
}

// showResult feeds the finished curve into the chart and timeline.
func (ui *RootUI) showResult(job *model.AnalysisJob) {
	ui.lastHoverFPS = job.Info.FPS
	ui.chart.SetSeries(job.Series)
	ui.timeline.SetSeries(job.Timeline)
	ui.infoLabel.SetText(job.Info.SummaryLine())
	ui.exportBtn.Enable()
	ui.updateStats()
}

// formatZoomPercent renders the visible fraction of the full range. Deep
// zooms keep one decimal so the label never collapses to zero.
func formatZoomPercent(span float64) string {
	pct := span * 100
	if pct < 1 {
		return fmt.Sprintf("%.1f%%", pct)
	}
	return fmt.Sprintf("%.0f%%", pct)
}

// updateStats renders min/avg/max and the zoom percentage of the visible
// range.
func (ui *RootUI) updateStats() {
	ui.zoomLabel.SetText(formatZoomPercent(ui.chart.Viewport().Span()))

	stats := ui.chart.VisibleStats()
	if stats == (model.SeriesStats{}) {
		ui.statsLabel.SetText(DashPlaceholder)
		return
	}
	ui.statsLabel.SetText(
		ui.localization.GetText(KeyMin) + ": " + model.FormatBitrate(stats.Min) + "  " +
			ui.localization.GetText(KeyAvg) + ": " + model.FormatBitrate(stats.Avg) + "  " +
			ui.localization.GetText(KeyMax) + ": " + model.FormatBitrate(stats.Max))
}

// onChartHover shows the hovered position and requests a frame preview.
func (ui *RootUI) onChartHover(timeSec, kbps float64, pos fyne.Position) {
	ui.lastHoverPos = pos
	ui.statusLabel.SetText(
		model.FormatTimecode(timeSec, ui.lastHoverFPS) + "  " + model.FormatBitrate(kbps))

	if ui.settings.GetShowPreview() {
		ui.previewSvc.Request(timeSec)
	}
}

func (ui *RootUI) onChartHoverEnd() {
	ui.previewPopup.Hide()
}

// onPreviewReady shows the extracted frame. Called from the preview
// goroutine.
func (ui *RootUI) onPreviewReady(timeSec float64, imagePath string) {
	fyne.Do(func() {
		ui.previewPopup.ShowAt(imagePath, timeSec, ui.lastHoverFPS, ui.lastHoverPos)
	})
}

// onChartViewChanged mirrors chart zooming onto the timeline.
func (ui *RootUI) onChartViewChanged(view Viewport) {
	ui.timeline.SetSelection(view)
	ui.updateStats()
}

// onTimelineSelection applies a timeline selection to the chart, debounced so
// dragging does not redraw per pixel.
func (ui *RootUI) onTimelineSelection(view Viewport) {
	ui.redrawMu.Lock()
	defer ui.redrawMu.Unlock()

	if ui.redrawTimer != nil {
		ui.redrawTimer.Stop()
	}
	ui.redrawTimer = time.AfterFunc(RedrawDebounce, func() {
		fyne.Do(func() {
			ui.chart.SetViewport(view)
			ui.updateStats()
		})
	})
}
