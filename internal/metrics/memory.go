// Package metrics samples runtime memory statistics for the --details report.
package metrics

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// DefaultSampleInterval is the period between heap samples during a run.
const DefaultSampleInterval = 250 * time.Millisecond

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	TotalAlloc   uint64 // cumulative bytes allocated
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		TotalAlloc:   m.TotalAlloc,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// MemoryReport summarizes memory use over a run.
type MemoryReport struct {
	PeakHeap     uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// Sampler tracks the peak heap while a run is in progress.
type Sampler struct {
	collector *MemoryCollector
	interval  time.Duration

	mu    sync.Mutex
	start MemorySnapshot
	peak  uint64
}

// NewSampler creates a sampler. A non-positive interval selects
// DefaultSampleInterval.
func NewSampler(interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	return &Sampler{collector: NewMemoryCollector(), interval: interval}
}

// Run samples until ctx is done. It records a baseline first.
func (s *Sampler) Run(ctx context.Context) {
	s.mu.Lock()
	s.start = s.collector.Snapshot()
	s.peak = s.start.HeapAlloc
	s.mu.Unlock()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sample()
		}
	}
}

func (s *Sampler) sample() MemorySnapshot {
	snap := s.collector.Snapshot()
	s.mu.Lock()
	s.peak = max(s.peak, snap.HeapAlloc)
	s.mu.Unlock()
	return snap
}

// Report takes a final sample and returns figures relative to the baseline.
func (s *Sampler) Report() MemoryReport {
	end := s.sample()
	s.mu.Lock()
	defer s.mu.Unlock()
	return MemoryReport{
		PeakHeap:     s.peak,
		TotalAlloc:   end.TotalAlloc - s.start.TotalAlloc,
		NumGC:        end.NumGC - s.start.NumGC,
		PauseTotalNs: end.PauseTotalNs - s.start.PauseTotalNs,
	}
}
