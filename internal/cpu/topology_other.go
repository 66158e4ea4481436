//go:build !linux && !windows

package cpu

// DetectTopology has no hybrid detection on this platform; all cores are
// treated as performance cores.
func DetectTopology() Topology {
	return flatTopology()
}
