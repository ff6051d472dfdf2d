package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Speaker plays streamers on the system audio device through one mixer.
type Speaker struct {
	mixer *beep.Mixer
}

// NewSpeaker initialises the audio device with a 100ms buffer.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	s := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play mixes a streamer into the output.
func (s *Speaker) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Lock runs fn while the speaker is not pulling samples.
func (s *Speaker) Lock(fn func()) {
	speaker.Lock()
	defer speaker.Unlock()
	fn()
}

// Close silences the mixer and shuts the device down.
func (s *Speaker) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// locker is implemented by outputs that stream on another goroutine.
type locker interface {
	Lock(fn func())
}

func withSpeakerLock(out Output, fn func()) {
	if l, ok := out.(locker); ok {
		l.Lock(fn)
		return
	}
	fn()
}
