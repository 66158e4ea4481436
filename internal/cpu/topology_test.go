package cpu

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyByFrequency_Hybrid(t *testing.T) {
	// 12th gen style layout: 8 fast cores, 4 slow cores
	freqs := make(map[int]int64)
	for i := 0; i < 8; i++ {
		freqs[i] = 5000000
	}
	for i := 8; i < 12; i++ {
		freqs[i] = 3800000
	}

	topo := classifyByFrequency(freqs)
	assert.True(t, topo.Hybrid)
	assert.Equal(t, 12, topo.Total)
	assert.Equal(t, []int{8, 9, 10, 11}, topo.ECores)
	assert.Len(t, topo.PCores, 8)
}

func TestClassifyByFrequency_Uniform(t *testing.T) {
	freqs := map[int]int64{0: 4200000, 1: 4200000, 2: 4200000, 3: 4200000}

	topo := classifyByFrequency(freqs)
	assert.False(t, topo.Hybrid)
	assert.Empty(t, topo.ECores)
	assert.Len(t, topo.PCores, 4)
}

func TestClassifyByFrequency_SmallSpread(t *testing.T) {
	// Turbo bin differences below the threshold must not split the cores
	freqs := map[int]int64{0: 4200000, 1: 4200000, 2: 4000000, 3: 4000000}

	topo := classifyByFrequency(freqs)
	assert.False(t, topo.Hybrid)
}

// powerInfoBuffer packs PROCESSOR_POWER_INFORMATION entries the way
// CallNtPowerInformation lays them out.
func powerInfoBuffer(maxMhz ...uint32) []byte {
	buf := make([]byte, 0, len(maxMhz)*processorPowerInfoSize)
	for i, mhz := range maxMhz {
		entry := make([]byte, processorPowerInfoSize)
		binary.LittleEndian.PutUint32(entry[0:], uint32(i)) // Number
		binary.LittleEndian.PutUint32(entry[4:], mhz)       // MaxMhz
		binary.LittleEndian.PutUint32(entry[8:], mhz)       // CurrentMhz
		buf = append(buf, entry...)
	}
	return buf
}

func TestParseProcessorPowerInfo(t *testing.T) {
	freqs := parseProcessorPowerInfo(powerInfoBuffer(5000, 5000, 3800, 3800))
	assert.Equal(t, map[int]int64{0: 5000, 1: 5000, 2: 3800, 3: 3800}, freqs)

	// The frequency split carries through the shared classifier
	topo := classifyByFrequency(freqs)
	assert.True(t, topo.Hybrid)
	assert.Equal(t, []int{2, 3}, topo.ECores)
}

func TestParseProcessorPowerInfo_SkipsEmptyEntries(t *testing.T) {
	freqs := parseProcessorPowerInfo(powerInfoBuffer(4200, 0, 4200))
	assert.Equal(t, map[int]int64{0: 4200, 2: 4200}, freqs)

	// Truncated trailing bytes are ignored
	buf := append(powerInfoBuffer(4200), 0x01, 0x02)
	assert.Len(t, parseProcessorPowerInfo(buf), 1)
}

func TestReadSysfsFrequencies(t *testing.T) {
	fs := afero.NewMemMapFs()
	for i, freq := range []int64{5000000, 5000000, 3800000} {
		path := fmt.Sprintf("/sys/devices/system/cpu/cpu%d/cpufreq/cpuinfo_max_freq", i)
		require.NoError(t, afero.WriteFile(fs, path, []byte(fmt.Sprintf("%d\n", freq)), 0644))
	}

	freqs, err := readSysfsFrequencies(fs)
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{0: 5000000, 1: 5000000, 2: 3800000}, freqs)
}

func TestReadSysfsFrequencies_Empty(t *testing.T) {
	_, err := readSysfsFrequencies(afero.NewMemMapFs())
	assert.Error(t, err)
}

func TestDetectFromSysfs_FallsBack(t *testing.T) {
	topo := detectFromSysfs(afero.NewMemMapFs())
	assert.False(t, topo.Hybrid)
	assert.Greater(t, topo.Total, 0)
}

func TestManager_TargetCores(t *testing.T) {
	m := &Manager{topology: Topology{
		Total:  6,
		PCores: []int{0, 1, 2, 3},
		ECores: []int{4, 5},
		Hybrid: true,
	}}

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, m.TargetCores())

	m.mode.Store(int32(ModeEfficiency))
	assert.Equal(t, []int{4, 5}, m.TargetCores())
}

func TestManager_TargetCores_NonHybrid(t *testing.T) {
	m := &Manager{topology: Topology{Total: 4, PCores: []int{0, 1, 2, 3}}}
	m.mode.Store(int32(ModeEfficiency))

	// Without a hybrid layout the efficiency mode is a no-op
	assert.Equal(t, []int{0, 1, 2, 3}, m.TargetCores())
}
