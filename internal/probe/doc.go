package probe

// Package probe wraps the ffprobe and ffmpeg executables: locating them,
// reading container and stream metadata, and streaming per-packet sizes for
// bitrate analysis.
