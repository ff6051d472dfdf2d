package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-breaker/internal/core"
)

// value returns the counter or gauge value of a metric, optionally selected by
// a single label value.
func value(t *testing.T, r *Recorder, name, label string) float64 {
	t.Helper()
	families, err := r.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if label != "" && (len(m.GetLabel()) != 1 || m.GetLabel()[0].GetValue() != label) {
				continue
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			return m.GetGauge().GetValue()
		}
	}
	return 0
}

func cue(name string) core.Event {
	return core.Event{Kind: core.EventCue, Name: name}
}

func TestObserveStep(t *testing.T) {
	r := New()

	r.ObserveStep(core.StepResult{
		State:  core.GameState{Score: 20, Lives: 3},
		Events: []core.Event{cue(core.CueBrickBreak), cue(core.CueBounce), cue(core.CueBrickBreak)},
	}, time.Microsecond)
	r.ObserveStep(core.StepResult{
		State:  core.GameState{Score: 20, Lives: 0},
		Events: []core.Event{cue(core.CueGameOver), {Kind: core.EventStopTrack}},
	}, time.Microsecond)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"ticks", value(t, r, "breaker_ticks_total", ""), 2},
		{"bricks", value(t, r, "breaker_bricks_destroyed_total", ""), 2},
		{"balls lost", value(t, r, "breaker_balls_lost_total", ""), 1},
		{"bounce cues", value(t, r, "breaker_cues_total", core.CueBounce), 1},
		{"losses", value(t, r, "breaker_sessions_finished_total", "loss"), 1},
		{"wins", value(t, r, "breaker_sessions_finished_total", "win"), 0},
		{"score", value(t, r, "breaker_score", ""), 20},
		{"lives", value(t, r, "breaker_lives", ""), 0},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %v, expected %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	r.ObserveStep(core.StepResult{Events: []core.Event{cue(core.CueWin)}}, 0)
	r.SessionStarted()
	r.SessionEnded()
}

func TestRecordersAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.SessionStarted()

	if got := value(t, b, "breaker_active_sessions", ""); got != 0 {
		t.Errorf("second recorder active sessions = %v, expected 0", got)
	}
}

func TestHandler(t *testing.T) {
	r := New()
	r.ObserveStep(core.StepResult{State: core.GameState{Score: 10, Lives: 3}}, time.Microsecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{"breaker_ticks_total 1", "breaker_score 10"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %q", name)
		}
	}
}
