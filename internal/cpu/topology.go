package cpu

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Frequency classification constants
const (
	// FrequencyRatioThreshold marks a machine hybrid when the slowest core
	// group runs below this fraction of the fastest group's max frequency.
	FrequencyRatioThreshold = 0.85

	sysfsCPUPattern = "/sys/devices/system/cpu/cpu[0-9]*"
	maxFreqFile     = "cpufreq/cpuinfo_max_freq"
)

// Topology describes the logical CPUs of the machine, split into performance
// and efficiency cores when the machine is hybrid.
type Topology struct {
	Total  int
	PCores []int
	ECores []int
	Hybrid bool
}

// AllCores returns every logical CPU index.
func (t Topology) AllCores() []int {
	cores := make([]int, t.Total)
	for i := range cores {
		cores[i] = i
	}
	return cores
}

// flatTopology is the fallback for uniform or undetectable machines.
func flatTopology() Topology {
	t := Topology{Total: runtime.NumCPU()}
	t.PCores = t.AllCores()
	return t
}

// classifyByFrequency splits CPUs into groups by max frequency. The machine
// counts as hybrid when the slowest group runs measurably below the fastest
// and both groups are non-trivial.
func classifyByFrequency(maxFreq map[int]int64) Topology {
	if len(maxFreq) == 0 {
		return flatTopology()
	}

	var lowest, highest int64
	for _, f := range maxFreq {
		if lowest == 0 || f < lowest {
			lowest = f
		}
		if f > highest {
			highest = f
		}
	}

	t := Topology{Total: len(maxFreq)}
	if highest == 0 || float64(lowest)/float64(highest) >= FrequencyRatioThreshold {
		t.PCores = t.AllCores()
		return t
	}

	for cpuID, f := range maxFreq {
		if f == lowest {
			t.ECores = append(t.ECores, cpuID)
		} else {
			t.PCores = append(t.PCores, cpuID)
		}
	}
	sort.Ints(t.ECores)
	sort.Ints(t.PCores)
	t.Hybrid = len(t.ECores) > 0 && len(t.PCores) > 0
	return t
}

// readSysfsFrequencies collects cpuinfo_max_freq per logical CPU from sysfs.
func readSysfsFrequencies(fs afero.Fs) (map[int]int64, error) {
	dirs, err := afero.Glob(fs, sysfsCPUPattern)
	if err != nil || len(dirs) == 0 {
		return nil, fmt.Errorf("no cpu entries in sysfs")
	}

	freqs := make(map[int]int64, len(dirs))
	for _, dir := range dirs {
		idStr := strings.TrimPrefix(filepath.Base(dir), "cpu")
		cpuID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}

		raw, err := afero.ReadFile(fs, filepath.Join(dir, maxFreqFile))
		if err != nil {
			continue
		}
		freq, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
		if err != nil {
			continue
		}
		freqs[cpuID] = freq
	}

	if len(freqs) == 0 {
		return nil, fmt.Errorf("no readable cpuinfo_max_freq entries")
	}
	return freqs, nil
}

// processorPowerInfoSize is the byte size of one PROCESSOR_POWER_INFORMATION
// entry: six 32-bit fields (Number, MaxMhz, CurrentMhz, MhzLimit,
// MaxIdleState, CurrentIdleState).
const processorPowerInfoSize = 24

// parseProcessorPowerInfo reads the max frequency per logical CPU from a
// PROCESSOR_POWER_INFORMATION array as filled by CallNtPowerInformation.
// Entries reporting no frequency are skipped.
func parseProcessorPowerInfo(buf []byte) map[int]int64 {
	freqs := make(map[int]int64)
	for off := 0; off+processorPowerInfoSize <= len(buf); off += processorPowerInfoSize {
		number := binary.LittleEndian.Uint32(buf[off:])
		maxMhz := binary.LittleEndian.Uint32(buf[off+4:])
		if maxMhz == 0 {
			continue
		}
		freqs[int(number)] = int64(maxMhz)
	}
	return freqs
}

func detectFromSysfs(fs afero.Fs) Topology {
	freqs, err := readSysfsFrequencies(fs)
	if err != nil {
		return flatTopology()
	}
	return classifyByFrequency(freqs)
}
