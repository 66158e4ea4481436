// Package version holds the application version shared by the GUI and CLI.
package version

// Version is the application version
const Version = "1.1.0"

// AppName is the user visible application name
const AppName = "BitrateViewer"

// AppID is the Fyne application identifier
const AppID = "com.rollingqp.bitrateviewer"
