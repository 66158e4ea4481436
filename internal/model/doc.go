package model

// Package model defines domain data structures used across the app: bitrate
// samples and series math, analysis jobs, and probed video metadata.
// Structures are designed for direct use by the UI and explicit state
// transitions.
