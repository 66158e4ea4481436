//go:build windows

package cpu

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"sort"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                       = windows.NewLazySystemDLL("kernel32.dll")
	procGetSystemCpuSetInformation = kernel32.NewProc("GetSystemCpuSetInformation")

	ntdll                      = windows.NewLazySystemDLL("ntdll.dll")
	procCallNtPowerInformation = ntdll.NewProc("CallNtPowerInformation")
)

// SYSTEM_CPU_SET_INFORMATION field offsets within one entry
const (
	cpuSetOffsetSize            = 0
	cpuSetOffsetType            = 4
	cpuSetOffsetLogicalIndex    = 14
	cpuSetOffsetEfficiencyClass = 18
)

// powerLevelProcessorInformation is the POWER_INFORMATION_LEVEL that fills a
// PROCESSOR_POWER_INFORMATION array.
const powerLevelProcessorInformation = 11

// DetectTopology classifies logical CPUs by their efficiency class from the
// system CPU set information. When CPU sets are unavailable or report a
// single class, it falls back to grouping cores by MaxMhz from the power
// information, where E cores show up as the slower group.
func DetectTopology() Topology {
	if t, ok := detectFromCPUSets(); ok {
		return t
	}
	if t, ok := detectFromPowerInfo(); ok {
		return t
	}
	return flatTopology()
}

// detectFromCPUSets reads efficiency classes; on hybrid parts E cores report
// the lowest class.
func detectFromCPUSets() (Topology, bool) {
	entries, err := readCPUSets()
	if err != nil || len(entries) == 0 {
		return Topology{}, false
	}

	classes := make(map[uint8][]int)
	for _, e := range entries {
		classes[e.efficiencyClass] = append(classes[e.efficiencyClass], e.logicalIndex)
	}
	if len(classes) < 2 {
		return Topology{}, false
	}

	var lowest uint8 = 255
	for class := range classes {
		if class < lowest {
			lowest = class
		}
	}

	t := Topology{Total: len(entries)}
	for class, cpus := range classes {
		if class == lowest {
			t.ECores = append(t.ECores, cpus...)
		} else {
			t.PCores = append(t.PCores, cpus...)
		}
	}
	sort.Ints(t.ECores)
	sort.Ints(t.PCores)
	t.Hybrid = len(t.ECores) > 0 && len(t.PCores) > 0
	return t, t.Hybrid
}

// detectFromPowerInfo groups cores by MaxMhz; the frequency ratio test decides
// whether the slower group is an efficiency set.
func detectFromPowerInfo() (Topology, bool) {
	buf := make([]byte, runtime.NumCPU()*processorPowerInfoSize)

	status, _, _ := procCallNtPowerInformation.Call(
		powerLevelProcessorInformation,
		0,
		0,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	// NTSTATUS: zero is success
	if status != 0 {
		return Topology{}, false
	}

	freqs := parseProcessorPowerInfo(buf)
	if len(freqs) < 2 {
		return Topology{}, false
	}
	t := classifyByFrequency(freqs)
	return t, t.Hybrid
}

type cpuSetEntry struct {
	logicalIndex    int
	efficiencyClass uint8
}

func readCPUSets() ([]cpuSetEntry, error) {
	var needed uint32
	self := windows.CurrentProcess()

	// First call reports the required buffer size
	procGetSystemCpuSetInformation.Call(0, 0, uintptr(unsafe.Pointer(&needed)), uintptr(self), 0)
	if needed == 0 {
		return nil, fmt.Errorf("GetSystemCpuSetInformation reported no data")
	}

	buf := make([]byte, needed)
	ret, _, err := procGetSystemCpuSetInformation.Call(
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(needed),
		uintptr(unsafe.Pointer(&needed)),
		uintptr(self),
		0,
	)
	if ret == 0 {
		return nil, err
	}

	var entries []cpuSetEntry
	for off := uint32(0); off+cpuSetOffsetEfficiencyClass < needed; {
		size := binary.LittleEndian.Uint32(buf[off+cpuSetOffsetSize:])
		if size == 0 {
			break
		}
		// Type 0 is CpuSetInformation
		if binary.LittleEndian.Uint32(buf[off+cpuSetOffsetType:]) == 0 {
			entries = append(entries, cpuSetEntry{
				logicalIndex:    int(buf[off+cpuSetOffsetLogicalIndex]),
				efficiencyClass: buf[off+cpuSetOffsetEfficiencyClass],
			})
		}
		off += size
	}
	return entries, nil
}
