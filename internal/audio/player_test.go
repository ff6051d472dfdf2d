package audio

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

type fakeOutput struct {
	played []beep.Streamer
	closed bool
}

func (f *fakeOutput) Play(s beep.Streamer) { f.played = append(f.played, s) }
func (f *fakeOutput) Close()               { f.closed = true }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func testAudioConfig() config.Audio {
	return config.Audio{Enabled: true, Volume: 0.5, CueRate: 1, CueBurst: 2}
}

// drain pulls up to limit samples and returns how many were produced and the peak amplitude.
func drain(s beep.Streamer, limit int) (int, float64) {
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestDisabledPlayerDropsEverything(t *testing.T) {
	p := New(testAudioConfig(), nil, quietLogger())

	if p.Enabled() {
		t.Fatal("Enabled() = true, expected false")
	}
	if p.Cue(core.CueBounce) {
		t.Error("Cue() = true on a disabled player")
	}
	p.PlayTrack(core.TrackPlay, true)
	if p.Track() != "" {
		t.Errorf("Track() = %q, expected empty", p.Track())
	}
	p.StopTrack()
	p.Close()
}

func TestOpenDisabledByConfig(t *testing.T) {
	cfg := testAudioConfig()
	cfg.Enabled = false
	if Open(cfg, quietLogger()).Enabled() {
		t.Error("Open() with audio disabled returned an enabled player")
	}
}

func TestCuePlays(t *testing.T) {
	out := &fakeOutput{}
	p := New(testAudioConfig(), out, quietLogger())

	if !p.Cue(core.CueBrickBreak) {
		t.Fatal("Cue() = false, expected true")
	}
	if len(out.played) != 1 {
		t.Fatalf("played %d streams, expected 1", len(out.played))
	}
	if p.Cue("kazoo") {
		t.Error("Cue() of an unknown name = true")
	}
	if len(out.played) != 1 {
		t.Errorf("unknown cue reached the output")
	}
}

func TestCueRateLimit(t *testing.T) {
	out := &fakeOutput{}
	p := New(testAudioConfig(), out, quietLogger())

	played := 0
	for range 6 {
		if p.Cue(core.CueBounce) {
			played++
		}
	}
	if played != 2 {
		t.Errorf("played %d bounce cues, expected burst of 2", played)
	}

	// Limits are per cue name
	if !p.Cue(core.CueWin) {
		t.Error("win cue throttled by bounce limiter")
	}
}

func TestHandleTracks(t *testing.T) {
	out := &fakeOutput{}
	cfg := testAudioConfig()
	cfg.CueRate = 0 // unlimited
	p := New(cfg, out, quietLogger())

	p.Handle([]core.Event{
		{Kind: core.EventPlayTrack, Name: core.TrackPlay, Loop: true},
		{Kind: core.EventCue, Name: core.CueBounce},
	})
	if p.Track() != core.TrackPlay {
		t.Fatalf("Track() = %q, expected %q", p.Track(), core.TrackPlay)
	}
	ctrl, ok := out.played[0].(*beep.Ctrl)
	if !ok {
		t.Fatalf("track stream is %T, expected *beep.Ctrl", out.played[0])
	}

	p.Handle([]core.Event{
		{Kind: core.EventStopTrack},
		{Kind: core.EventPlayTrack, Name: core.TrackEnd},
	})
	if ctrl.Streamer != nil {
		t.Error("stopped track is still streaming")
	}
	if p.Track() != core.TrackEnd {
		t.Errorf("Track() = %q, expected %q", p.Track(), core.TrackEnd)
	}

	p.Close()
	if !out.closed {
		t.Error("Close() did not close the output")
	}
	if p.Track() != "" {
		t.Errorf("Track() after Close() = %q", p.Track())
	}
}

func TestCueSoundsAreFinite(t *testing.T) {
	limit := SampleRate.N(5 * time.Second)
	for _, name := range []string{core.CueBounce, core.CueBrickBreak, core.CueBallLost, core.CueGameOver, core.CueWin} {
		t.Run(name, func(t *testing.T) {
			s := CueSound(name)
			if s == nil {
				t.Fatal("CueSound() = nil")
			}
			n, peak := drain(s, limit)
			if n == 0 || n >= limit {
				t.Errorf("cue produced %d samples, expected a short sound", n)
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak amplitude = %v, expected within (0, 1]", peak)
			}
		})
	}
}

func TestTrackSound(t *testing.T) {
	if TrackSound("polka", true) != nil {
		t.Error("TrackSound() of an unknown name should be nil")
	}

	limit := SampleRate.N(10 * time.Second)
	if n, _ := drain(TrackSound(core.TrackEnd, false), limit); n == 0 || n >= limit {
		t.Errorf("end track produced %d samples, expected a finite sound", n)
	}
	if n, _ := drain(TrackSound(core.TrackPlay, true), limit); n < limit {
		t.Errorf("looping play track stopped after %d samples", n)
	}
}
