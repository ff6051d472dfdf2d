// Package metrics records simulation counters in Prometheus form.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-breaker/internal/core"
)

// Recorder owns a private registry, so several recorders (one per test, or
// one per process) never collide on metric names.
type Recorder struct {
	registry *prometheus.Registry

	ticks          prometheus.Counter
	tickDuration   prometheus.Histogram
	bricks         prometheus.Counter
	ballsLost      prometheus.Counter
	cues           *prometheus.CounterVec // label: cue name, bounded by the cue set
	sessions       *prometheus.CounterVec // label: outcome
	score          prometheus.Gauge
	lives          prometheus.Gauge
	activeSessions prometheus.Gauge
}

// New creates a recorder with all collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		registry: reg,
		ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "breaker_ticks_total",
			Help: "Simulation ticks advanced",
		}),
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "breaker_tick_duration_seconds",
			Help:    "Time spent in one simulation tick",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		}),
		bricks: f.NewCounter(prometheus.CounterOpts{
			Name: "breaker_bricks_destroyed_total",
			Help: "Bricks destroyed",
		}),
		ballsLost: f.NewCounter(prometheus.CounterOpts{
			Name: "breaker_balls_lost_total",
			Help: "Balls that fell past the paddle, including the last one",
		}),
		cues: f.NewCounterVec(prometheus.CounterOpts{
			Name: "breaker_cues_total",
			Help: "Sound cues emitted by the simulation",
		}, []string{"cue"}),
		sessions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "breaker_sessions_finished_total",
			Help: "Finished sessions by outcome",
		}, []string{"outcome"}),
		score: f.NewGauge(prometheus.GaugeOpts{
			Name: "breaker_score",
			Help: "Score of the most recently stepped session",
		}),
		lives: f.NewGauge(prometheus.GaugeOpts{
			Name: "breaker_lives",
			Help: "Lives of the most recently stepped session",
		}),
		activeSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "breaker_active_sessions",
			Help: "Sessions currently connected",
		}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveStep records one simulation step and the events it produced.
// A nil recorder ignores everything.
func (r *Recorder) ObserveStep(res core.StepResult, took time.Duration) {
	if r == nil {
		return
	}

	r.ticks.Inc()
	r.tickDuration.Observe(took.Seconds())
	r.score.Set(float64(res.State.Score))
	r.lives.Set(float64(res.State.Lives))

	for _, e := range res.Events {
		if e.Kind != core.EventCue {
			continue
		}
		r.cues.WithLabelValues(e.Name).Inc()

		switch e.Name {
		case core.CueBrickBreak:
			r.bricks.Inc()
		case core.CueBallLost:
			r.ballsLost.Inc()
		case core.CueGameOver:
			r.ballsLost.Inc()
			r.sessions.WithLabelValues("loss").Inc()
		case core.CueWin:
			r.sessions.WithLabelValues("win").Inc()
		}
	}
}

// SessionStarted increments the active session gauge.
func (r *Recorder) SessionStarted() {
	if r != nil {
		r.activeSessions.Inc()
	}
}

// SessionEnded decrements the active session gauge.
func (r *Recorder) SessionEnded() {
	if r != nil {
		r.activeSessions.Dec()
	}
}
