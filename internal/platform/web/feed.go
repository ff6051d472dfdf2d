package web

import (
	"slices"
	"sync"

	"github.com/vovakirdan/tui-breaker/internal/games/breakout"
)

// Feed holds the latest snapshot of every running session. Game loops publish
// into it; HTTP handlers and the spectator broadcast read from it.
type Feed struct {
	mu       sync.RWMutex
	sessions map[string]breakout.Snapshot
	last     string
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{sessions: make(map[string]breakout.Snapshot)}
}

// Publish stores the snapshot of a session. Snapshots are not copied; callers
// must not mutate one after publishing it. A nil feed ignores the call.
func (f *Feed) Publish(id string, snap breakout.Snapshot) {
	if f == nil {
		return
	}
	f.mu.Lock()
	f.sessions[id] = snap
	f.last = id
	f.mu.Unlock()
}

// Remove forgets a session.
func (f *Feed) Remove(id string) {
	if f == nil {
		return
	}
	f.mu.Lock()
	delete(f.sessions, id)
	if f.last == id {
		f.last = ""
	}
	f.mu.Unlock()
}

// Snapshot returns the snapshot of a session. An empty id selects the most
// recently published session.
func (f *Feed) Snapshot(id string) (breakout.Snapshot, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if id == "" {
		id = f.last
	}
	snap, ok := f.sessions[id]
	return snap, ok
}

// Sessions returns the ids of all sessions, sorted.
func (f *Feed) Sessions() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids := make([]string, 0, len(f.sessions))
	for id := range f.sessions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
