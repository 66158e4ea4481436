//go:build linux

package cpu

import "github.com/spf13/afero"

// DetectTopology classifies cores by their sysfs max frequency. Intel hybrid
// parts expose E cores with a lower cpuinfo_max_freq than P cores.
func DetectTopology() Topology {
	return detectFromSysfs(afero.NewOsFs())
}
