package probe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationBanner(t *testing.T) {
	stderr := `Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'clip.mp4':
  Duration: 00:02:05.48, start: 0.000000, bitrate: 3245 kb/s`

	assert.InDelta(t, 125.48, ParseDurationBanner(stderr), 0.001)
	assert.Zero(t, ParseDurationBanner("no duration here"))
}

func TestParseFraction(t *testing.T) {
	assert.InDelta(t, 29.97, parseFraction("30000/1001"), 0.01)
	assert.Equal(t, 25.0, parseFraction("25/1"))
	assert.Equal(t, 25.0, parseFraction("25"))
	assert.Zero(t, parseFraction("0/0"))
	assert.Zero(t, parseFraction(""))
	assert.Zero(t, parseFraction("abc/def"))
}

func TestSelectVideoStream_SkipsCoverArt(t *testing.T) {
	streams := []probeStream{
		{Index: 0, CodecType: "audio", CodecName: "aac"},
		{Index: 1, CodecType: "video", CodecName: "mjpeg", Disposition: map[string]int{"attached_pic": 1}},
		{Index: 2, CodecType: "video", CodecName: "h264"},
	}

	s, videoIndex, err := selectVideoStream(streams)
	require.NoError(t, err)
	assert.Equal(t, "h264", s.CodecName)
	// v:N selector counts video streams only, cover art included
	assert.Equal(t, 1, videoIndex)
}

func TestSelectVideoStream_NoVideo(t *testing.T) {
	_, _, err := selectVideoStream([]probeStream{{CodecType: "audio"}})
	assert.Error(t, err)
}

func TestDecodePackets(t *testing.T) {
	payload := `{
  "packets": [
    {"pts_time": "0.000000", "dts_time": "0.000000", "size": "4000", "flags": "K__"},
    {"pts_time": "0.040000", "dts_time": "0.040000", "size": "1200", "flags": "___"},
    {"pts_time": "N/A", "dts_time": "0.080000", "size": "900", "flags": "___"},
    {"pts_time": "0.120000", "size": "0", "flags": "___"},
    {"size": "500", "flags": "___"}
  ]
}`

	ticks := 0
	packets, err := decodePackets(strings.NewReader(payload), func() { ticks++ })
	require.NoError(t, err)

	// Zero-size and timestampless entries are dropped, dts fallback kept
	require.Len(t, packets, 3)
	assert.True(t, packets[0].Keyframe)
	assert.False(t, packets[1].Keyframe)
	assert.InDelta(t, 0.08, packets[2].PTS, 1e-9)
	assert.Equal(t, int64(900), packets[2].Size)
	assert.Greater(t, ticks, 0)
}

func TestDecodePackets_Malformed(t *testing.T) {
	_, err := decodePackets(strings.NewReader("not json"), func() {})
	assert.Error(t, err)
}

func TestEstimateOutputBytes(t *testing.T) {
	assert.Equal(t, int64(minEstimatedBytes), estimateOutputBytes(0))
	assert.Equal(t, int64(100*30*50), estimateOutputBytes(100))
}
