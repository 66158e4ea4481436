package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollingQP/BitrateViewer/internal/probe"
)

func TestBuildTimePoints(t *testing.T) {
	points := buildTimePoints(2.0, 0, 1.0)
	// Half-window steps, end inclusive: 0, 0.5, 1.0, 1.5, 2.0
	require.Len(t, points, 5)
	assert.Equal(t, 0.0, points[0])
	assert.Equal(t, 0.5, points[1])
	assert.Equal(t, 2.0, points[4])
}

func TestBuildTimePoints_EndInclusive(t *testing.T) {
	// A span that is not a whole multiple of the step must still cover the
	// end, and accumulated float error must not drop the last point.
	points := buildTimePoints(10.0, 0, 0.2)
	require.NotEmpty(t, points)
	assert.InDelta(t, 10.0, points[len(points)-1], 1e-9)
	require.Len(t, points, 101)

	points = buildTimePoints(2.3, 0, 1.0)
	assert.InDelta(t, 2.0, points[len(points)-1], 1e-9)
}

func TestBuildTimePoints_TrailingPackets(t *testing.T) {
	// Packets past the reported duration extend the covered span
	short := buildTimePoints(2.0, 0, 1.0)
	long := buildTimePoints(2.0, 3.4, 1.0)
	assert.Greater(t, len(long), len(short))
}

func TestBuildTimePoints_TinyVideo(t *testing.T) {
	points := buildTimePoints(0, 0, 1.0)
	require.Len(t, points, 1)
	assert.Equal(t, 0.0, points[0])
}

func TestComputeSeries(t *testing.T) {
	// One 1000-byte packet every 0.25s: constant 32 kbps at a 1s window
	var packets []probe.Packet
	for i := 0; i < 40; i++ {
		packets = append(packets, probe.Packet{PTS: float64(i) * 0.25, Size: 1000})
	}

	series, err := ComputeSeries(context.Background(), packets, 10, 1.0, 1, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, series)

	// First sample is centered on its window
	assert.InDelta(t, 0.5, series[0].Time, 1e-9)

	// Full windows hold 4 packets: 4 * 1000 * 8 bits over 1s = 32 kbps
	assert.InDelta(t, 32.0, series[0].Kbps, 1e-9)
	mid := series[len(series)/2]
	assert.InDelta(t, 32.0, mid.Kbps, 1e-9)
}

func TestComputeSeries_WindowBoundaries(t *testing.T) {
	// A packet exactly at the window end belongs to the next window
	packets := []probe.Packet{
		{PTS: 0.0, Size: 1000},
		{PTS: 1.0, Size: 8000},
	}

	series, err := ComputeSeries(context.Background(), packets, 2, 1.0, 1, nil, nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(series), 3)

	// Window [0,1) sees only the first packet
	assert.InDelta(t, 8.0, series[0].Kbps, 1e-9)
	// Window [1,2) sees only the second
	assert.InDelta(t, 64.0, series[2].Kbps, 1e-9)
}

func TestComputeSeries_ParallelMatchesSerial(t *testing.T) {
	var packets []probe.Packet
	for i := 0; i < 5000; i++ {
		packets = append(packets, probe.Packet{PTS: float64(i) * 0.02, Size: int64(500 + i%700)})
	}
	duration := packets[len(packets)-1].PTS

	serial, err := ComputeSeries(context.Background(), packets, duration, 0.5, 1, nil, nil)
	require.NoError(t, err)

	var lastFrac float64
	parallel, err := ComputeSeries(context.Background(), packets, duration, 0.5, 4, nil, func(f float64) {
		lastFrac = f
	})
	require.NoError(t, err)

	require.Equal(t, len(serial), len(parallel))
	for i := range serial {
		assert.InDelta(t, serial[i].Kbps, parallel[i].Kbps, 1e-9)
	}
	assert.InDelta(t, 1.0, lastFrac, 1e-9)
}

func TestComputeSeries_Cancelled(t *testing.T) {
	var packets []probe.Packet
	for i := 0; i < 1000; i++ {
		packets = append(packets, probe.Packet{PTS: float64(i) * 0.1, Size: 1000})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ComputeSeries(ctx, packets, 100, 1.0, 4, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComputeSeries_Empty(t *testing.T) {
	series, err := ComputeSeries(context.Background(), nil, 10, 1.0, 1, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, series)
}
