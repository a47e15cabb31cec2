package config

import "runtime"

// Worker resolution chain (highest priority first):
//   1. CLI flag (--workers)
//   2. Environment variable (PICALC_WORKERS)
//   3. Hardware estimation (this file)

// ApplyAdaptiveDefaults fills in settings left at their zero value with
// estimates for the current machine. Explicit values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	return cfg
}

// EstimateOptimalWorkers returns the worker count for the chunked engine.
// Each worker holds a full-precision partial sum, so the count follows
// the number of logical CPUs.
func EstimateOptimalWorkers() int {
	return max(runtime.NumCPU(), 1)
}
