package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestState_FirstObservationIsAChange(t *testing.T) {
	var s State

	// even the zero time, which a sentinel-based check would miss
	assert.True(t, s.Changed(time.Time{}))
	_, ok := s.LastSeen()
	assert.False(t, ok)

	s.Observe(time.Time{})
	assert.False(t, s.Changed(time.Time{}))
}

func TestState_DetectsAnyDifference(t *testing.T) {
	var s State
	mtime := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	s.Observe(mtime)

	assert.False(t, s.Changed(mtime))
	assert.False(t, s.Changed(mtime.In(time.FixedZone("CEST", 2*60*60))))
	assert.True(t, s.Changed(mtime.Add(time.Nanosecond)))
	assert.True(t, s.Changed(mtime.Add(-time.Second)))
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "compiling", PhaseCompiling.String())
	assert.Equal(t, "reporting", PhaseReporting.String())
	assert.Equal(t, "terminated", PhaseTerminated.String())
}
