//go:build !linux && !windows

package cpu

import "errors"

// ErrAffinityUnsupported is returned where the OS offers no affinity control.
var ErrAffinityUnsupported = errors.New("cpu affinity is not supported on this platform")

func setThreadAffinity(_ []int) error {
	return ErrAffinityUnsupported
}

func setProcessAffinity(_ int, _ []int) error {
	return ErrAffinityUnsupported
}
