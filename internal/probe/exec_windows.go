//go:build windows

package probe

import (
	"os/exec"
	"syscall"
)

// HideWindow keeps child processes from flashing a console window.
func HideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
