package format

import "time"

// RateTracker estimates the number of series terms summed per second,
// smoothing successive samples exponentially so the displayed rate does not
// jump with every snapshot.
type RateTracker struct {
	start         time.Time
	lastTime      time.Time
	lastIteration uint64
	rate          float64
}

// NewRateTracker starts tracking at start.
func NewRateTracker(start time.Time) *RateTracker {
	return &RateTracker{start: start, lastTime: start}
}

// Observe records that iteration terms were complete at now and returns the
// smoothed rate in terms per second.
func (r *RateTracker) Observe(iteration uint64, now time.Time) float64 {
	dt := now.Sub(r.lastTime).Seconds()
	if dt <= 0 || iteration <= r.lastIteration {
		return r.rate
	}
	instant := float64(iteration-r.lastIteration) / dt
	if r.rate > 0 {
		// 70% previous estimate, 30% new sample.
		r.rate = 0.7*r.rate + 0.3*instant
	} else {
		r.rate = instant
	}
	r.lastTime = now
	r.lastIteration = iteration
	return r.rate
}

// Rate returns the current smoothed rate.
func (r *RateTracker) Rate() float64 { return r.rate }

// Elapsed returns the time since tracking started.
func (r *RateTracker) Elapsed(now time.Time) time.Duration { return now.Sub(r.start) }
