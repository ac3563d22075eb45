package workers

import (
	"os"
	"runtime"
	"strconv"
)

// Count returns a worker count for a task type, derived from the CPUs
// actually available to the process. GOMAXPROCS reflects container CPU
// limits (Go 1.19+), where runtime.NumCPU would report the host.
//
// The multiplier adjusts for task characteristics: 1.0 for CPU-bound
// work, 2.0 for I/O-bound work that mostly waits. limit caps the
// result; 0 means no cap.
//
// The SCAN_WORKERS environment variable overrides the calculation.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv("SCAN_WORKERS"); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			if limit > 0 && count > limit {
				return limit
			}
			return count
		}
	}

	available := runtime.GOMAXPROCS(0)

	count := int(float64(available) * multiplier)
	if count < 1 {
		count = 1
	}
	if limit > 0 && count > limit {
		count = limit
	}
	return count
}

// ForCPU returns a worker count for CPU-bound tasks (1 per CPU).
func ForCPU(limit int) int {
	return Count(1.0, limit)
}

// ForIO returns a worker count for I/O-bound tasks (2 per CPU), where
// workers spend most of their time waiting on the filesystem.
func ForIO(limit int) int {
	return Count(2.0, limit)
}
