//go:build !windows

package probe

import "os/exec"

// HideWindow keeps child processes from flashing a console window. Only
// Windows needs it.
func HideWindow(_ *exec.Cmd) {}
