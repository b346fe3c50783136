// Package player holds the in-process state of the video/subtitle player:
// what is playing and which series and episode it belongs to.
package player

import "sync"

// Snapshot is a copy of the player state. Nil fields are unset.
type Snapshot struct {
	VideoSrc    *string
	SubtitleSrc *string
	Episode     *string
	SeriesName  *string
}

// Listener is notified after every setter call with the new snapshot.
type Listener func(Snapshot)

// State is a mutable record with one setter per field. Setters do not
// validate; listeners run synchronously on the setter's goroutine.
type State struct {
	mu        sync.RWMutex
	current   Snapshot
	listeners map[int]Listener
	nextID    int
}

func NewState() *State {
	return &State{listeners: make(map[int]Listener)}
}

func (s *State) VideoSrc() *string    { return s.get(func(v Snapshot) *string { return v.VideoSrc }) }
func (s *State) SubtitleSrc() *string { return s.get(func(v Snapshot) *string { return v.SubtitleSrc }) }
func (s *State) Episode() *string     { return s.get(func(v Snapshot) *string { return v.Episode }) }
func (s *State) SeriesName() *string  { return s.get(func(v Snapshot) *string { return v.SeriesName }) }

func (s *State) SetVideoSrc(src *string) {
	s.set(func(v *Snapshot) { v.VideoSrc = cloneString(src) })
}

func (s *State) SetSubtitleSrc(src *string) {
	s.set(func(v *Snapshot) { v.SubtitleSrc = cloneString(src) })
}

func (s *State) SetEpisode(episode *string) {
	s.set(func(v *Snapshot) { v.Episode = cloneString(episode) })
}

func (s *State) SetSeriesName(name *string) {
	s.set(func(v *Snapshot) { v.SeriesName = cloneString(name) })
}

// Snapshot returns a copy that later setter calls do not affect.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Subscribe registers fn and returns a function that removes it.
func (s *State) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *State) get(field func(Snapshot) *string) *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneString(field(s.current))
}

func (s *State) set(mutate func(*Snapshot)) {
	s.mu.Lock()
	mutate(&s.current)
	snap := s.current.clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (v Snapshot) clone() Snapshot {
	return Snapshot{
		VideoSrc:    cloneString(v.VideoSrc),
		SubtitleSrc: cloneString(v.SubtitleSrc),
		Episode:     cloneString(v.Episode),
		SeriesName:  cloneString(v.SeriesName),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
