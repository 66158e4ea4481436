package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"github.com/rollingQP/BitrateViewer/internal/model"
)

// Export file permissions
const (
	reportFilePerm = 0644
)

// Report is the exportable result of one analysis run.
type Report struct {
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Video       model.VideoInfo   `json:"video" yaml:"video"`
	WindowSec   float64           `json:"window_sec" yaml:"window_sec"`
	Stats       model.SeriesStats `json:"stats" yaml:"stats"`
	Samples     model.Series      `json:"samples" yaml:"samples"`
}

// NewReport assembles a report from a completed job.
func NewReport(job *model.AnalysisJob) *Report {
	return &Report{
		GeneratedAt: time.Now(),
		Video:       job.Info,
		WindowSec:   job.Window,
		Stats:       job.Series.Stats(),
		Samples:     job.Series,
	}
}

// Write picks the format from the file extension: .json, .csv or .yaml/.yml.
func (r *Report) Write(fs afero.Fs, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return r.WriteJSON(fs, path)
	case ".csv":
		return r.WriteCSV(fs, path)
	case ".yaml", ".yml":
		return r.WriteYAML(fs, path)
	default:
		return fmt.Errorf("unsupported export format: %s", filepath.Ext(path))
	}
}

// WriteJSON writes the full report as indented JSON.
func (r *Report) WriteJSON(fs afero.Fs, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return afero.WriteFile(fs, path, data, reportFilePerm)
}

// WriteYAML writes the full report as YAML.
func (r *Report) WriteYAML(fs afero.Fs, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return afero.WriteFile(fs, path, data, reportFilePerm)
}

// WriteCSV writes only the samples, one time/kbps row per line, for
// spreadsheet use.
func (r *Report) WriteCSV(fs afero.Fs, path string) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time_sec", "kbps"}); err != nil {
		return err
	}
	for _, sample := range r.Samples {
		row := []string{
			strconv.FormatFloat(sample.Time, 'f', 3, 64),
			strconv.FormatFloat(sample.Kbps, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
