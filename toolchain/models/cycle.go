package models

import (
	"fmt"
	"strings"
	"time"

	diag_models "github.com/morler/texwatch/diagnostics/models"
)

// RawOutput is everything captured from one external tool invocation.
type RawOutput struct {
	Tool     string
	Args     []string
	Dir      string
	Stdout   string
	Stderr   string
	ExitCode int
	// Err is set when the process could not be started or was killed.
	Err error
}

// Failed reports whether the invocation did not finish cleanly.
func (o RawOutput) Failed() bool {
	return o.Err != nil || o.ExitCode != 0
}

// Combined returns stdout followed by stderr.
func (o RawOutput) Combined() string {
	if o.Stderr == "" {
		return o.Stdout
	}
	if o.Stdout == "" {
		return o.Stderr
	}
	return strings.TrimRight(o.Stdout, "\n") + "\n" + o.Stderr
}

// Status describes how the invocation ended, for user-facing messages.
func (o RawOutput) Status() string {
	if o.Err != nil {
		return fmt.Sprintf("%s failed: %v", o.Tool, o.Err)
	}
	return fmt.Sprintf("%s exited with status %d", o.Tool, o.ExitCode)
}

// PassKind identifies which step of the toolchain produced a RawOutput.
type PassKind string

const (
	PassCompile      PassKind = "compile"
	PassBibliography PassKind = "bibliography"
)

// Pass is one step of a compile cycle.
type Pass struct {
	Kind   PassKind
	Output RawOutput
}

// CompileCycle is the transient record of one full toolchain run.
type CompileCycle struct {
	Trigger     time.Time
	Passes      []Pass
	Diagnostics []diag_models.Diagnostic
	Duration    time.Duration
}

// Count returns how many passes of the given kind ran.
func (c CompileCycle) Count(kind PassKind) int {
	n := 0
	for _, p := range c.Passes {
		if p.Kind == kind {
			n++
		}
	}
	return n
}
