package analyze

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/rollingQP/BitrateViewer/internal/cpu"
	"github.com/rollingQP/BitrateViewer/internal/model"
	"github.com/rollingQP/BitrateViewer/internal/probe"
)

// Progress stage boundaries, as fractions of the whole job
const (
	progressProbeDone   = 0.08
	progressReadDone    = 0.75
	progressComputeFrom = 0.82
	progressComputeSpan = 0.15
)

// Service runs analysis jobs. One job is active at a time; starting a new one
// cancels the previous.
type Service struct {
	tools probe.Tools
	cpus  *cpu.Manager

	mu       sync.RWMutex
	job      *model.AnalysisJob
	cancel   context.CancelFunc
	onUpdate func(*model.AnalysisJob) // callback for UI updates
}

// NewService creates a new analysis service
func NewService(tools probe.Tools, cpus *cpu.Manager) *Service {
	return &Service{tools: tools, cpus: cpus}
}

// SetUpdateCallback sets the callback function for job updates
func (s *Service) SetUpdateCallback(callback func(*model.AnalysisJob)) {
	s.onUpdate = callback
}

// CurrentJob returns a copy of the active or most recent job, so callers can
// read it without racing against stage updates.
func (s *Service) CurrentJob() *model.AnalysisJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.job == nil {
		return nil
	}
	job := *s.job
	return &job
}

// Start begins analyzing a video with the given sampling window. Any running
// job is cancelled first.
func (s *Service) Start(videoPath string, window float64) (*model.AnalysisJob, error) {
	if window <= 0 {
		return nil, fmt.Errorf("invalid sampling window: %v", window)
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := &model.AnalysisJob{
		ID:        uuid.Must(uuid.NewV7()).String(),
		VideoPath: videoPath,
		Window:    window,
		Status:    model.JobStatusPending,
		StartedAt: time.Now(),
	}
	s.job = job
	s.cancel = cancel
	snapshot := *job
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"job":    job.ID,
		"video":  videoPath,
		"window": window,
	}).Info("starting analysis")

	go s.run(ctx, job)
	return &snapshot, nil
}

// Cancel stops the active job if any.
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// Restart reruns the current video with a new window, keeping everything else.
func (s *Service) Restart(window float64) (*model.AnalysisJob, error) {
	s.mu.RLock()
	job := s.job
	s.mu.RUnlock()

	if job == nil {
		return nil, fmt.Errorf("no video to analyze")
	}
	return s.Start(job.VideoPath, window)
}

// run executes the job stages: probe, packet read, compute.
func (s *Service) run(ctx context.Context, job *model.AnalysisJob) {
	s.setStage(job, model.JobStatusProbing, 0, "probing video metadata")

	info, streamIndex, err := s.tools.Inspect(ctx, job.VideoPath)
	if err != nil {
		s.finish(ctx, job, err)
		return
	}

	s.mu.Lock()
	job.Info = info
	s.mu.Unlock()
	s.setStage(job, model.JobStatusReading, progressProbeDone, "reading packets")

	packets, err := s.tools.ReadPackets(ctx, job.VideoPath, streamIndex, info.Duration,
		func(frac float64) {
			s.setProgress(job, progressProbeDone+frac*(progressReadDone-progressProbeDone))
		},
		s.cpus.PinProcess,
	)
	if err != nil {
		s.finish(ctx, job, err)
		return
	}

	workers := len(s.cpus.TargetCores())
	s.mu.Lock()
	job.Workers = workers
	s.mu.Unlock()
	s.setStage(job, model.JobStatusComputing, progressComputeFrom, "computing bitrate")

	series, err := ComputeSeries(ctx, packets, info.Duration, job.Window, workers,
		s.cpus.PinCurrentThread,
		func(frac float64) {
			s.setProgress(job, progressComputeFrom+frac*progressComputeSpan)
		},
	)
	if err != nil {
		s.finish(ctx, job, err)
		return
	}

	s.mu.Lock()
	job.Series = series
	job.Timeline = series.Downsample(model.MaxTimelinePoints)
	s.mu.Unlock()
	s.finish(ctx, job, nil)
}

// setStage updates status, progress and stage text together.
func (s *Service) setStage(job *model.AnalysisJob, status model.JobStatus, progress float64, stage string) {
	s.mu.Lock()
	job.Status = status
	job.Progress = progress
	job.Stage = stage
	snapshot := *job
	s.mu.Unlock()
	s.notifyUpdate(snapshot)
}

func (s *Service) setProgress(job *model.AnalysisJob, progress float64) {
	s.mu.Lock()
	if progress > job.Progress {
		job.Progress = progress
	}
	snapshot := *job
	s.mu.Unlock()
	s.notifyUpdate(snapshot)
}

// finish records the terminal state of the job.
func (s *Service) finish(ctx context.Context, job *model.AnalysisJob, err error) {
	s.mu.Lock()
	job.FinishedAt = time.Now()
	switch {
	case err == nil:
		job.Status = model.JobStatusCompleted
		job.Progress = 1.0
		job.Stage = "done"
	case ctx.Err() != nil:
		job.Status = model.JobStatusCancelled
		job.Stage = "cancelled"
	default:
		job.Status = model.JobStatusError
		job.LastError = err.Error()
		job.Stage = "error"
	}
	snapshot := *job
	s.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		log.WithError(err).WithField("job", snapshot.ID).Error("analysis failed")
	} else if err == nil {
		log.WithFields(log.Fields{
			"job":     snapshot.ID,
			"samples": len(snapshot.Series),
			"took":    time.Since(snapshot.StartedAt).Round(time.Millisecond),
		}).Info("analysis completed")
	}

	s.notifyUpdate(snapshot)
}

// notifyUpdate delivers a copy of the job so the callback can read it without
// holding the service lock.
func (s *Service) notifyUpdate(job model.AnalysisJob) {
	if s.onUpdate != nil {
		s.onUpdate(&job)
	}
}
