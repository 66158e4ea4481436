package cpu

import (
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Mode selects which core set the process runs on.
type Mode int32

const (
	// ModeAllCores runs on every logical CPU
	ModeAllCores Mode = iota

	// ModeEfficiency restricts work to efficiency cores on hybrid machines
	ModeEfficiency
)

// String returns the string representation of Mode
func (m Mode) String() string {
	if m == ModeEfficiency {
		return "efficiency"
	}
	return "all-cores"
}

// Manager applies a core mode to the process, to worker threads, and to child
// processes. Mode reads are lock free so compute workers can re-check it
// between batches.
type Manager struct {
	topology Topology
	mode     atomic.Int32
}

// NewManager detects the machine topology and starts in all-cores mode.
func NewManager() *Manager {
	m := &Manager{topology: DetectTopology()}
	if m.topology.Hybrid {
		log.WithFields(log.Fields{
			"total":   m.topology.Total,
			"p_cores": len(m.topology.PCores),
			"e_cores": len(m.topology.ECores),
		}).Info("hybrid CPU topology detected")
	}
	return m
}

// Topology returns the detected core layout.
func (m *Manager) Topology() Topology {
	return m.topology
}

// Mode returns the currently requested core mode.
func (m *Manager) Mode() Mode {
	return Mode(m.mode.Load())
}

// TargetCores returns the core set for the current mode. Non-hybrid machines
// always get every core.
func (m *Manager) TargetCores() []int {
	if m.Mode() == ModeEfficiency && m.topology.Hybrid {
		return m.topology.ECores
	}
	return m.topology.AllCores()
}

// SetMode switches the core mode and re-pins the process. A failed pin keeps
// the mode so workers and children still honor it.
func (m *Manager) SetMode(mode Mode) {
	if Mode(m.mode.Swap(int32(mode))) == mode {
		return
	}

	if !m.topology.Hybrid {
		return
	}

	if err := setProcessAffinity(0, m.TargetCores()); err != nil {
		log.WithError(err).Warn("failed to set process affinity")
		return
	}
	log.WithField("mode", mode.String()).Debug("process affinity updated")
}

// PinCurrentThread applies the current mode to the calling thread. Workers
// call this under runtime.LockOSThread and repeat it periodically so a mode
// switch mid-analysis takes effect.
func (m *Manager) PinCurrentThread() {
	if !m.topology.Hybrid {
		return
	}
	if err := setThreadAffinity(m.TargetCores()); err != nil {
		log.WithError(err).Debug("failed to pin worker thread")
	}
}

// PinProcess applies the current mode to a child process by PID.
func (m *Manager) PinProcess(pid int) {
	if !m.topology.Hybrid {
		return
	}
	if err := setProcessAffinity(pid, m.TargetCores()); err != nil {
		log.WithError(err).WithField("pid", pid).Debug("failed to pin child process")
	}
}
