package session_stats

import (
	"fmt"
	"io"
	"time"

	"github.com/morler/texwatch/constants/lipgloss"
	"github.com/morler/texwatch/session_stats/contracts"
)

// sessionStats accumulates what happened during one watch session.
type sessionStats struct {
	startedAt        time.Time
	cycles           int
	failedCycles     int
	errors           int
	warnings         int
	snapshots        int
	snapshotFailures int
	compileTime      time.Duration
	lastCompile      time.Duration
}

// NewSessionStats creates a new statistics collector
func NewSessionStats() contracts.ISessionStats {
	return &sessionStats{startedAt: time.Now()}
}

// RecordCycle accumulates the result of one compile cycle.
func (s *sessionStats) RecordCycle(errors int, warnings int, duration time.Duration) {
	s.cycles++
	if errors > 0 {
		s.failedCycles++
	}
	s.errors += errors
	s.warnings += warnings
	s.compileTime += duration
	s.lastCompile = duration
}

func (s *sessionStats) RecordSnapshot() {
	s.snapshots++
}

func (s *sessionStats) RecordSnapshotFailure() {
	s.snapshotFailures++
}

func (s *sessionStats) GetCurrentStats() (cycles int, errors int, warnings int) {
	return s.cycles, s.errors, s.warnings
}

func (s *sessionStats) DisplayStats(w io.Writer) {
	info := fmt.Sprintf("Compiles: %d (%d with errors) - Errors: %d - Warnings: %d\nSnapshots: %d",
		s.cycles, s.failedCycles, s.errors, s.warnings, s.snapshots)
	if s.snapshotFailures > 0 {
		info += fmt.Sprintf(" (%d failed)", s.snapshotFailures)
	}
	if s.cycles > 0 {
		avg := s.compileTime / time.Duration(s.cycles)
		info += fmt.Sprintf("\nAverage compile: %s - Last: %s", avg.Round(time.Millisecond), s.lastCompile.Round(time.Millisecond))
	}
	info += fmt.Sprintf("\nSession: %s", time.Since(s.startedAt).Round(time.Second))

	fmt.Fprintln(w, lipgloss.BoxStyle.Render(info))
}

func (s *sessionStats) ClearStats() {
	*s = sessionStats{startedAt: time.Now()}
}
