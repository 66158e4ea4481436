package tree

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rollingQP/BitrateViewer/internal/analyze"
	"github.com/rollingQP/BitrateViewer/internal/cpu"
	"github.com/rollingQP/BitrateViewer/internal/export"
	"github.com/rollingQP/BitrateViewer/internal/model"
	"github.com/rollingQP/BitrateViewer/internal/probe"
)

var (
	analyzeWindow float64
	analyzeOutput string

	AnalyzeCmd = &cobra.Command{
		Use:   "analyze <video>",
		Short: "Compute the windowed bitrate curve of a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0])
		},
	}
)

func init() {
	AnalyzeCmd.Flags().Float64VarP(&analyzeWindow, "window", "w", analyze.DefaultWindow,
		"sampling window in seconds (0.1, 0.25, 0.5, 1, 2 or 5)")
	AnalyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "",
		"write the result to a .json, .csv or .yaml file")
}

func runAnalyze(cmd *cobra.Command, videoPath string) error {
	tools, err := probe.Locate()
	if err != nil {
		return err
	}

	service := analyze.NewService(tools, cpu.NewManager())

	done := make(chan *model.AnalysisJob, 1)
	var lastStatus model.JobStatus
	service.SetUpdateCallback(func(job *model.AnalysisJob) {
		if job.Status != lastStatus && job.Status.IsActive() {
			lastStatus = job.Status
			cmd.Printf("%s...\n", job.Stage)
		}
		if job.Status.IsFinished() {
			select {
			case done <- job:
			default:
			}
		}
	})

	if _, err := service.Start(videoPath, analyzeWindow); err != nil {
		return err
	}
	job := <-done

	if job.Status != model.JobStatusCompleted {
		return fmt.Errorf("analysis failed: %s", job.LastError)
	}

	stats := job.Series.Stats()
	cmd.Printf("%s\n", job.Info.SummaryLine())
	cmd.Printf("samples: %d (window %.2gs)\n", len(job.Series), job.Window)
	cmd.Printf("min: %s  avg: %s  max: %s\n",
		model.FormatBitrate(stats.Min),
		model.FormatBitrate(stats.Avg),
		model.FormatBitrate(stats.Max))

	if analyzeOutput != "" {
		if err := export.NewReport(job).Write(afero.NewOsFs(), analyzeOutput); err != nil {
			return err
		}
		cmd.Printf("report written to %s\n", analyzeOutput)
	}
	return nil
}
