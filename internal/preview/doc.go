package preview

// Package preview extracts single-frame thumbnails with ffmpeg for the chart
// hover popup. Requests are rounded, debounced and cached so scrubbing across
// the chart does not spawn an ffmpeg per pixel.
