package observability

import (
	"fmt"
	"os"
	goruntime "runtime"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats is a snapshot of the resources used by the running program.
type ProcessStats struct {
	RSSMb      uint64
	CPUPercent float64
	Goroutines int
}

func (s ProcessStats) String() string {
	return fmt.Sprintf("RAM: %dMB | CPU: %.1f%% | Goroutines: %d", s.RSSMb, s.CPUPercent, s.Goroutines)
}

// SelfStats reads the memory and CPU usage of the current process.
func SelfStats() (ProcessStats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcessStats{}, err
	}
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return ProcessStats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return ProcessStats{}, err
	}
	return ProcessStats{
		RSSMb:      memInfo.RSS / 1024 / 1024,
		CPUPercent: cpuPercent,
		Goroutines: goruntime.NumGoroutine(),
	}, nil
}
