package analyze

// Package analyze turns per-packet sizes into a windowed bitrate curve and
// runs the full analysis pipeline (probe, packet read, compute) as a
// cancellable background job.
