package main

import "runtime"

// Worker pool bounds for automatic sizing.
const (
	minAutoWorkers = 1
	maxAutoWorkers = 8
)

// resolvePoolSize determines the number of conversion workers.
// Priority: explicit value > GOMAXPROCS-based calculation.
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for container CPU quotas.
	n := runtime.GOMAXPROCS(0)
	if n < minAutoWorkers {
		return minAutoWorkers
	}
	if n > maxAutoWorkers {
		return maxAutoWorkers
	}
	return n
}
