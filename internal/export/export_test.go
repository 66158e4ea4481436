package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/rollingQP/BitrateViewer/internal/model"
)

func testJob() *model.AnalysisJob {
	return &model.AnalysisJob{
		VideoPath: "/videos/clip.mp4",
		Window:    1.0,
		Info: model.VideoInfo{
			Path:     "/videos/clip.mp4",
			Codec:    "h264",
			Width:    1280,
			Height:   720,
			FPS:      25,
			Duration: 2.0,
		},
		Series: model.Series{
			{Time: 0.5, Kbps: 3000},
			{Time: 1.0, Kbps: 4500},
			{Time: 1.5, Kbps: 2000},
		},
	}
}

func TestReport_WriteJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	report := NewReport(testJob())

	require.NoError(t, report.Write(fs, "/out/report.json"))

	data, err := afero.ReadFile(fs, "/out/report.json")
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "h264", decoded.Video.Codec)
	assert.Len(t, decoded.Samples, 3)
	assert.Equal(t, 4500.0, decoded.Stats.Max)
}

func TestReport_WriteYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	report := NewReport(testJob())

	require.NoError(t, report.Write(fs, "/out/report.yaml"))

	data, err := afero.ReadFile(fs, "/out/report.yaml")
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, 1.0, decoded.WindowSec)
	assert.Equal(t, 2000.0, decoded.Stats.Min)
}

func TestReport_WriteCSV(t *testing.T) {
	fs := afero.NewMemMapFs()
	report := NewReport(testJob())

	require.NoError(t, report.Write(fs, "/out/report.csv"))

	data, err := afero.ReadFile(fs, "/out/report.csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "time_sec,kbps", lines[0])
	assert.Equal(t, "0.500,3000.00", lines[1])
}

func TestReport_WriteUnknownFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := NewReport(testJob()).Write(fs, "/out/report.xml")
	assert.Error(t, err)
}
