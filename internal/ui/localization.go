package ui

import (
	"strings"

	"github.com/cloudfoundry/jibber_jabber"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle      = "app_title"
	KeyOpenVideo     = "open_video"
	KeyCancel        = "cancel"
	KeyExport        = "export"
	KeySettings      = "settings"
	KeyWindow        = "window"
	KeyLanguage      = "language"
	KeyShowPreview   = "show_preview"
	KeyPowerSave     = "power_save"
	KeySave          = "save"
	KeyClose         = "close"
	KeyZoomIn        = "zoom_in"
	KeyZoomOut       = "zoom_out"
	KeyResetZoom     = "reset_zoom"
	KeyDropHint      = "drop_hint"
	KeyProbing       = "probing"
	KeyReading       = "reading"
	KeyComputing     = "computing"
	KeyDone          = "done"
	KeyCancelled     = "cancelled"
	KeyAnalysisError = "analysis_error"
	KeyExportDone    = "export_done"
	KeyExportError   = "export_error"
	KeyMin           = "min"
	KeyAvg           = "avg"
	KeyMax           = "max"
	KeyNotVideoFile  = "not_video_file"
	KeyToolsMissing  = "tools_missing"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" resolves the OS locale.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		detected, err := jibber_jabber.DetectLanguage()
		if err != nil {
			detected = "en"
		}
		lang = strings.ToLower(detected)
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:      "Bitrate Viewer",
		KeyOpenVideo:     "Open Video",
		KeyCancel:        "Cancel",
		KeyExport:        "Export",
		KeySettings:      "Settings",
		KeyWindow:        "Window",
		KeyLanguage:      "Language",
		KeyShowPreview:   "Show frame preview on hover",
		KeyPowerSave:     "Use efficiency cores in background",
		KeySave:          "Save",
		KeyClose:         "Close",
		KeyZoomIn:        "Zoom In",
		KeyZoomOut:       "Zoom Out",
		KeyResetZoom:     "Reset Zoom",
		KeyDropHint:      "Open a video file or drop it here",
		KeyProbing:       "Probing video metadata...",
		KeyReading:       "Reading packets...",
		KeyComputing:     "Computing bitrate...",
		KeyDone:          "Done",
		KeyCancelled:     "Cancelled",
		KeyAnalysisError: "Analysis failed",
		KeyExportDone:    "Report exported",
		KeyExportError:   "Export failed",
		KeyMin:           "Min",
		KeyAvg:           "Avg",
		KeyMax:           "Max",
		KeyNotVideoFile:  "Not a video file",
		KeyToolsMissing:  "FFmpeg/FFprobe not found, analysis is unavailable",
	}

	// Chinese texts
	l.texts["zh"] = map[string]string{
		KeyAppTitle:      "码率查看器",
		KeyOpenVideo:     "打开视频",
		KeyCancel:        "取消",
		KeyExport:        "导出",
		KeySettings:      "设置",
		KeyWindow:        "采样窗口",
		KeyLanguage:      "语言",
		KeyShowPreview:   "悬停时显示帧预览",
		KeyPowerSave:     "后台使用能效核心",
		KeySave:          "保存",
		KeyClose:         "关闭",
		KeyZoomIn:        "放大",
		KeyZoomOut:       "缩小",
		KeyResetZoom:     "重置缩放",
		KeyDropHint:      "打开视频文件或拖放到此处",
		KeyProbing:       "正在读取视频信息...",
		KeyReading:       "正在读取数据包...",
		KeyComputing:     "正在计算码率...",
		KeyDone:          "完成",
		KeyCancelled:     "已取消",
		KeyAnalysisError: "分析失败",
		KeyExportDone:    "报告已导出",
		KeyExportError:   "导出失败",
		KeyMin:           "最小",
		KeyAvg:           "平均",
		KeyMax:           "最大",
		KeyNotVideoFile:  "不是视频文件",
		KeyToolsMissing:  "未找到 FFmpeg/FFprobe，无法分析",
	}
}
