//go:build linux

package cpu

import "golang.org/x/sys/unix"

func buildCPUSet(cpus []int) unix.CPUSet {
	var set unix.CPUSet
	for _, c := range cpus {
		set.Set(c)
	}
	return set
}

// setThreadAffinity pins the calling thread. Callers hold runtime.LockOSThread
// so the pin sticks to the goroutine.
func setThreadAffinity(cpus []int) error {
	set := buildCPUSet(cpus)
	return unix.SchedSetaffinity(0, &set)
}

// setProcessAffinity pins another process by PID, used for ffprobe/ffmpeg
// children.
func setProcessAffinity(pid int, cpus []int) error {
	set := buildCPUSet(cpus)
	return unix.SchedSetaffinity(pid, &set)
}
