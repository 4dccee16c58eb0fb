package watcher

import "time"

// State is the watch loop's memory of the source file. The zero value has not
// observed anything yet, so the first observation always counts as a change.
type State struct {
	lastSeen time.Time
	observed bool
}

// Changed reports whether mtime differs from the last observed modification time.
func (s *State) Changed(mtime time.Time) bool {
	if !s.observed {
		return true
	}
	return !mtime.Equal(s.lastSeen)
}

// Observe records mtime as handled.
func (s *State) Observe(mtime time.Time) {
	s.lastSeen = mtime
	s.observed = true
}

// LastSeen returns the last handled modification time and whether there is one.
func (s *State) LastSeen() (time.Time, bool) {
	return s.lastSeen, s.observed
}

// Phase is where the loop currently is in its watch/compile/report cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCompiling
	PhaseReporting
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCompiling:
		return "compiling"
	case PhaseReporting:
		return "reporting"
	case PhaseTerminated:
		return "terminated"
	}
	return "unknown"
}
