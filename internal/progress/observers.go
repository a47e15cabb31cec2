package progress

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ChannelObserver forwards snapshots to a channel without ever blocking the
// engine. When the channel is full the snapshot is dropped.
type ChannelObserver struct {
	channel chan<- Snapshot
}

// NewChannelObserver returns an observer sending to ch. A nil ch discards.
func NewChannelObserver(ch chan<- Snapshot) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// OnSnapshot implements Reporter.
func (o *ChannelObserver) OnSnapshot(s Snapshot) {
	if o.channel == nil {
		return
	}
	select {
	case o.channel <- s:
	default:
	}
}

// LoggingObserver logs snapshots through zerolog, skipping snapshots until
// the precision has grown by at least threshold digits since the last line.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold uint64
	last      uint64
	logged    bool
	mu        sync.Mutex
}

// NewLoggingObserver returns a throttled logging observer. A zero threshold
// logs every snapshot.
func NewLoggingObserver(logger zerolog.Logger, threshold uint64) *LoggingObserver {
	return &LoggingObserver{logger: logger, threshold: threshold}
}

// OnSnapshot implements Reporter.
func (o *LoggingObserver) OnSnapshot(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.logged && s.Precision < o.last+o.threshold {
		return
	}
	o.logger.Debug().
		Uint64("iteration", s.Iteration).
		Uint64("precision", s.Precision).
		Msg("pi snapshot")
	o.last = s.Precision
	o.logged = true
}

var (
	iterationGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "picalc_iterations",
			Help: "Series terms completed at the latest snapshot",
		},
		[]string{"engine"},
	)
	precisionGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "picalc_precision_digits",
			Help: "Working precision in decimal digits at the latest snapshot",
		},
		[]string{"engine"},
	)
	snapshotCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picalc_snapshots_total",
			Help: "Snapshots emitted by engines",
		},
		[]string{"engine"},
	)
)

// MetricsObserver exports snapshot progress to Prometheus.
type MetricsObserver struct {
	engine string
}

// NewMetricsObserver returns an observer labelling its series with engine.
func NewMetricsObserver(engine string) *MetricsObserver {
	return &MetricsObserver{engine: engine}
}

// OnSnapshot implements Reporter.
func (o *MetricsObserver) OnSnapshot(s Snapshot) {
	iterationGauge.WithLabelValues(o.engine).Set(float64(s.Iteration))
	precisionGauge.WithLabelValues(o.engine).Set(float64(s.Precision))
	snapshotCounter.WithLabelValues(o.engine).Inc()
}

// Reset clears the gauges for this observer's engine.
func (o *MetricsObserver) Reset() {
	iterationGauge.DeleteLabelValues(o.engine)
	precisionGauge.DeleteLabelValues(o.engine)
}

// NoOpObserver discards all snapshots.
type NoOpObserver struct{}

// OnSnapshot implements Reporter.
func (NoOpObserver) OnSnapshot(Snapshot) {}
