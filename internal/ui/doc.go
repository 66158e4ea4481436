package ui

// Package ui implements the Fyne interface: the bitrate chart with zoom and
// pan, the timeline navigator, the frame preview popup, the settings dialog
// and the window assembly around the analysis services.
