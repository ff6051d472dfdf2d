package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/tui-breaker/internal/core"
)

// SampleRate is the output rate of every synthesised sound.
const SampleRate = beep.SampleRate(44100)

// Wave defines oscillator wave shapes.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// tone is a single oscillator with a linear frequency sweep and fade-out.
type tone struct {
	from, to float64 // Hz at start and end
	wave     Wave
	gain     float64
	total    int
	pos      int
	phase    float64
	noise    uint32
}

// Tone returns a finite streamer sweeping from one frequency to another.
func Tone(from, to float64, d time.Duration, wave Wave, gain float64) beep.Streamer {
	return &tone{
		from:  from,
		to:    to,
		wave:  wave,
		gain:  gain,
		total: SampleRate.N(d),
		noise: 0x2545F491,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		case WaveNoise:
			t.noise ^= t.noise << 13
			t.noise ^= t.noise >> 17
			t.noise ^= t.noise << 5
			v = float64(t.noise)/math.MaxUint32*2 - 1
		}

		// Linear fade-out over the whole note avoids a click at the end
		v *= t.gain * (1 - progress)

		samples[i][0] = v
		samples[i][1] = v

		t.phase += freq / float64(SampleRate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales a streamer by a linear volume in [0, 1].
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CueSound builds the one-shot streamer for a cue name.
// Unknown names return nil.
func CueSound(name string) beep.Streamer {
	switch name {
	case core.CueBounce:
		return Tone(660, 660, 40*time.Millisecond, WaveSquare, 0.25)
	case core.CueBrickBreak:
		return beep.Mix(
			Tone(880, 440, 90*time.Millisecond, WaveTriangle, 0.4),
			Tone(0, 0, 60*time.Millisecond, WaveNoise, 0.15),
		)
	case core.CueBallLost:
		return Tone(330, 110, 350*time.Millisecond, WaveSquare, 0.3)
	case core.CueGameOver:
		return beep.Seq(
			Tone(392, 392, 180*time.Millisecond, WaveTriangle, 0.4),
			Tone(311, 311, 180*time.Millisecond, WaveTriangle, 0.4),
			Tone(262, 196, 450*time.Millisecond, WaveTriangle, 0.4),
		)
	case core.CueWin:
		return beep.Seq(
			Tone(523, 523, 120*time.Millisecond, WaveSquare, 0.3),
			Tone(659, 659, 120*time.Millisecond, WaveSquare, 0.3),
			Tone(784, 784, 120*time.Millisecond, WaveSquare, 0.3),
			Tone(1047, 1047, 400*time.Millisecond, WaveSquare, 0.3),
		)
	default:
		return nil
	}
}

// bass line of the play track, one note per beat
var playNotes = []float64{110, 110, 165, 147, 110, 110, 196, 165}

const beat = 250 * time.Millisecond

// TrackSound builds the streamer for a music track. A looping track never ends
// on its own; it runs until stopped. Unknown names return nil.
func TrackSound(name string, loop bool) beep.Streamer {
	var bar func() beep.Streamer
	switch name {
	case core.TrackPlay:
		bar = playBar
	case core.TrackEnd:
		bar = endBar
	default:
		return nil
	}

	if !loop {
		return bar()
	}
	return beep.Iterate(func() beep.Streamer { return bar() })
}

func playBar() beep.Streamer {
	notes := make([]beep.Streamer, 0, len(playNotes))
	for _, f := range playNotes {
		notes = append(notes, Tone(f, f, beat, WaveTriangle, 0.2))
	}
	return beep.Seq(notes...)
}

func endBar() beep.Streamer {
	pad, err := generators.SineTone(SampleRate, 220)
	if err != nil {
		return Tone(220, 220, 2*time.Second, WaveSine, 0.2)
	}
	return beep.Mix(
		withVolume(beep.Take(SampleRate.N(2*time.Second), pad), 0.15),
		Tone(440, 330, 2*time.Second, WaveSine, 0.2),
	)
}
