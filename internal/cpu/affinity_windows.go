//go:build windows

package cpu

import (
	"golang.org/x/sys/windows"
)

var (
	procSetProcessAffinityMask = kernel32.NewProc("SetProcessAffinityMask")
	procSetThreadAffinityMask  = kernel32.NewProc("SetThreadAffinityMask")
)

func buildMask(cpus []int) uintptr {
	var mask uintptr
	for _, c := range cpus {
		if c >= 0 && c < 64 {
			mask |= 1 << uint(c)
		}
	}
	return mask
}

func setThreadAffinity(cpus []int) error {
	ret, _, err := procSetThreadAffinityMask.Call(uintptr(windows.CurrentThread()), buildMask(cpus))
	if ret == 0 {
		return err
	}
	return nil
}

func setProcessAffinity(pid int, cpus []int) error {
	handle := windows.CurrentProcess()
	if pid != 0 {
		h, err := windows.OpenProcess(windows.PROCESS_SET_INFORMATION|windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
		if err != nil {
			return err
		}
		defer windows.CloseHandle(h)
		handle = h
	}

	ret, _, err := procSetProcessAffinityMask.Call(uintptr(handle), buildMask(cpus))
	if ret == 0 {
		return err
	}
	return nil
}
