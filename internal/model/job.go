package model

import (
	"time"
)

// JobStatus represents the status of an analysis job
type JobStatus string

const (
	// JobStatusPending means the job is created but not started
	JobStatusPending JobStatus = "Pending"

	// JobStatusProbing means video metadata is being read
	JobStatusProbing JobStatus = "Probing"

	// JobStatusReading means packet data is streaming in from ffprobe
	JobStatusReading JobStatus = "Reading"

	// JobStatusComputing means the bitrate curve is being calculated
	JobStatusComputing JobStatus = "Computing"

	// JobStatusCompleted means the job finished successfully
	JobStatusCompleted JobStatus = "Completed"

	// JobStatusCancelled means the job was cancelled by the user
	JobStatusCancelled JobStatus = "Cancelled"

	// JobStatusError means the job failed with an error
	JobStatusError JobStatus = "Error"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsActive returns true if the job is in an active state
func (js JobStatus) IsActive() bool {
	return js == JobStatusProbing || js == JobStatusReading || js == JobStatusComputing
}

// IsFinished returns true if the job reached a terminal state
func (js JobStatus) IsFinished() bool {
	return js == JobStatusCompleted || js == JobStatusCancelled || js == JobStatusError
}

// AnalysisJob represents a single bitrate analysis run over one video file.
type AnalysisJob struct {
	ID         string
	VideoPath  string
	Window     float64 // sampling window in seconds
	Status     JobStatus
	Progress   float64 // 0.0 to 1.0
	Stage      string  // human readable stage text for the status line
	LastError  string  // last error message if any
	Info       VideoInfo
	Series     Series
	Timeline   Series // downsampled curve for the navigator
	Workers    int    // worker goroutines used for the compute stage
	StartedAt  time.Time
	FinishedAt time.Time
}

// Percent returns the job progress as 0-100 for progress bars.
func (j *AnalysisJob) Percent() int {
	p := int(j.Progress * 100)
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p
}
