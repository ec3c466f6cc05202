package renderer

import (
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"
)

var (
	numCPUOnce sync.Once
	numCPU     int
)

// NumCPU returns the number of logical CPUs reported by the host,
// falling back to the Go runtime's count
func NumCPU() int {
	numCPUOnce.Do(func() {
		n, err := cpu.Counts(true)
		if err != nil || n <= 0 {
			n = runtime.NumCPU()
		}
		numCPU = n
	})
	return numCPU
}
