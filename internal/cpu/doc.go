package cpu

// Package cpu detects hybrid core topologies (performance and efficiency
// cores) and pins the process, its worker threads, and child processes to a
// chosen core set. Used to keep background analysis on efficiency cores while
// the window is hidden.
