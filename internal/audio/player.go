// Package audio plays the synthesised sound cues and music tracks requested
// by the simulation. Every request is best effort: a player without an output
// device drops requests silently.
package audio

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// Output is a sink for finished streamers, usually the system speaker.
type Output interface {
	Play(s beep.Streamer)
	Close()
}

// Player turns simulation events into sound.
type Player struct {
	mu       sync.Mutex
	out      Output
	logger   *log.Logger
	volume   float64
	cueRate  rate.Limit
	cueBurst int
	limiters map[string]*rate.Limiter

	track     *beep.Ctrl
	trackName string
}

// New creates a player writing to out. A nil out yields a disabled player.
func New(cfg config.Audio, out Output, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}

	limit := rate.Inf
	if cfg.CueRate > 0 {
		limit = rate.Limit(cfg.CueRate)
	}
	burst := cfg.CueBurst
	if burst <= 0 {
		burst = 1
	}

	return &Player{
		out:      out,
		logger:   logger,
		volume:   cfg.Volume,
		cueRate:  limit,
		cueBurst: burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Open creates a player on the system speaker. When audio is disabled in the
// configuration or the device cannot be opened, the returned player is
// disabled and the game runs silently.
func Open(cfg config.Audio, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	if !cfg.Enabled {
		return New(cfg, nil, logger)
	}

	out, err := NewSpeaker()
	if err != nil {
		logger.Warn("audio unavailable, continuing without sound", "err", err)
		return New(cfg, nil, logger)
	}
	return New(cfg, out, logger)
}

// Enabled reports whether the player has an output.
func (p *Player) Enabled() bool {
	return p != nil && p.out != nil
}

// Handle dispatches simulation events.
func (p *Player) Handle(events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventCue:
			p.Cue(e.Name)
		case core.EventPlayTrack:
			p.PlayTrack(e.Name, e.Loop)
		case core.EventStopTrack:
			p.StopTrack()
		}
	}
}

// Cue plays a one-shot sound. It returns false when the cue was dropped:
// the player is disabled, the name is unknown, or the cue is being
// repeated faster than the configured rate.
func (p *Player) Cue(name string) bool {
	if !p.Enabled() {
		return false
	}

	p.mu.Lock()
	lim, ok := p.limiters[name]
	if !ok {
		lim = rate.NewLimiter(p.cueRate, p.cueBurst)
		p.limiters[name] = lim
	}
	p.mu.Unlock()

	if !lim.Allow() {
		return false
	}

	s := CueSound(name)
	if s == nil {
		p.logger.Debug("unknown sound cue", "cue", name)
		return false
	}
	p.out.Play(withVolume(s, p.volume))
	return true
}

// PlayTrack replaces the current music track.
func (p *Player) PlayTrack(name string, loop bool) {
	if !p.Enabled() {
		return
	}

	s := TrackSound(name, loop)
	if s == nil {
		p.logger.Debug("unknown music track", "track", name)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	p.track = &beep.Ctrl{Streamer: withVolume(s, p.volume)}
	p.trackName = name
	p.out.Play(p.track)
}

// StopTrack stops the current music track, if any.
func (p *Player) StopTrack() {
	if !p.Enabled() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.track == nil {
		return
	}
	withSpeakerLock(p.out, func() {
		p.track.Streamer = nil
	})
	p.track = nil
	p.trackName = ""
}

// Track returns the name of the playing music track, or "".
func (p *Player) Track() string {
	if p == nil {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.trackName
}

// Close stops everything and releases the output.
func (p *Player) Close() {
	if !p.Enabled() {
		return
	}
	p.StopTrack()
	p.out.Close()
}
