package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/morler/texwatch/constants/lipgloss"
	"github.com/morler/texwatch/diagnostics"
	"github.com/morler/texwatch/logger"
	stats_contracts "github.com/morler/texwatch/session_stats/contracts"
	"github.com/morler/texwatch/snapshot"
	"github.com/morler/texwatch/toolchain/contracts"
	"github.com/morler/texwatch/toolchain/models"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
)

// DefaultPollInterval bounds how long a tick waits for input before checking the source.
const DefaultPollInterval = time.Second

// snapshotCommand is the interactive input that requests a snapshot.
const snapshotCommand = "s"

// Snapshotter takes snapshots of the watched files.
type Snapshotter interface {
	TakeSnapshot(target models.WatchTarget, historyDir string) (snapshot.Snapshot, error)
}

// Options wires a Loop to its collaborators.
type Options struct {
	Target     models.WatchTarget
	HistoryDir string
	// OutputExt names the derived output in status messages, e.g. "pdf".
	OutputExt    string
	PollInterval time.Duration

	Runner    contracts.IToolchainRunner
	Snapshots Snapshotter
	Stats     stats_contracts.ISessionStats
	Fs        afero.Fs

	// Input carries interactive lines; nil disables interactive commands.
	Input <-chan string
	// Wake carries change hints from a Notifier; nil means poll only.
	Wake <-chan struct{}

	Out     io.Writer
	Spinner bool
	Render  diagnostics.RenderOptions
}

// Loop polls the source file, recompiles it when its modification time changes
// and services snapshot requests between polls. All work happens on the
// goroutine that calls Run or Tick.
type Loop struct {
	opts  Options
	input <-chan string
	watch State
	phase Phase
}

// NewLoop validates opts and returns a loop in the idle phase.
func NewLoop(opts Options) (*Loop, error) {
	if opts.Runner == nil {
		return nil, errors.New("watch loop requires a toolchain runner")
	}
	if opts.Snapshots == nil {
		return nil, errors.New("watch loop requires a snapshot manager")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.OutputExt == "" {
		opts.OutputExt = "pdf"
	}

	return &Loop{
		opts:  opts,
		input: opts.Input,
		phase: PhaseIdle,
	}, nil
}

// Phase returns the loop's current phase.
func (l *Loop) Phase() Phase {
	return l.phase
}

// Run ticks until ctx is cancelled, then prints a stop notice. Cancellation is
// a normal shutdown and returns nil.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := l.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				l.phase = PhaseTerminated
				fmt.Fprintln(l.opts.Out, lipgloss.Yellow.Render("\nStopped."))
				return nil
			}
			return err
		}
	}
}

// Tick runs one poll iteration: wait up to the poll interval for input, a
// change hint or cancellation, handle a snapshot request if one arrived, then
// compile if the source changed since the last observation.
func (l *Loop) Tick(ctx context.Context) error {
	l.phase = PhaseIdle

	timer := time.NewTimer(l.opts.PollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		l.phase = PhaseTerminated
		return ctx.Err()
	case line, ok := <-l.input:
		if !ok {
			// stdin closed; keep watching without interactive commands
			logger.Debugf("input closed")
			l.input = nil
		} else {
			l.handleInput(line)
		}
	case <-l.opts.Wake:
	case <-timer.C:
	}

	return l.checkSource(ctx)
}

func (l *Loop) handleInput(line string) {
	if strings.ToLower(strings.TrimSpace(line)) != snapshotCommand {
		return
	}

	snap, err := l.opts.Snapshots.TakeSnapshot(l.opts.Target, l.opts.HistoryDir)
	if err != nil {
		if l.opts.Stats != nil {
			l.opts.Stats.RecordSnapshotFailure()
		}
		fmt.Fprintln(l.opts.Out, lipgloss.Red.Render(fmt.Sprintf("Snapshot failed: %v", err)))
		return
	}

	if l.opts.Stats != nil {
		l.opts.Stats.RecordSnapshot()
	}
	fmt.Fprintln(l.opts.Out, lipgloss.Green.Render(fmt.Sprintf("Saved snapshot: %s", snap.SourceCopy)))
	if snap.OutputCopy != "" {
		fmt.Fprintln(l.opts.Out, lipgloss.Green.Render(fmt.Sprintf("Saved %s: %s", strings.ToUpper(l.opts.OutputExt), snap.OutputCopy)))
	}
}

func (l *Loop) checkSource(ctx context.Context) error {
	info, err := l.opts.Fs.Stat(l.opts.Target.SourcePath)
	if err != nil {
		// Editors that save by rename leave a short window with no file.
		logger.WithError(err).Warnf("cannot stat %s", l.opts.Target.SourcePath)
		return nil
	}

	mtime := info.ModTime()
	if !l.watch.Changed(mtime) {
		return nil
	}

	return l.compile(ctx, mtime)
}

func (l *Loop) compile(ctx context.Context, mtime time.Time) error {
	l.phase = PhaseCompiling
	logger.WithField("mtime", mtime).Debugf("source changed")

	var spinner *pterm.SpinnerPrinter
	if l.opts.Spinner {
		spinner, _ = pterm.DefaultSpinner.
			WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
			WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
			WithDelay(100 * time.Millisecond).
			WithRemoveWhenDone(true).
			Start("Compiling...")
	} else {
		fmt.Fprintln(l.opts.Out, "Compiling...")
	}

	cycle := l.opts.Runner.RunFullCycle(ctx, l.opts.Target)

	if spinner != nil {
		_ = spinner.Stop()
		fmt.Print("\r")
	}

	if err := ctx.Err(); err != nil {
		l.phase = PhaseTerminated
		return err
	}

	l.phase = PhaseReporting
	l.report(cycle)

	l.watch.Observe(mtime)
	l.phase = PhaseIdle
	return nil
}

func (l *Loop) report(cycle models.CompileCycle) {
	errs, warns := diagnostics.Count(cycle.Diagnostics)
	if l.opts.Stats != nil {
		l.opts.Stats.RecordCycle(errs, warns, cycle.Duration)
	}

	diagnostics.Render(l.opts.Out, cycle.Diagnostics, l.opts.Render)

	if errs == 0 {
		fmt.Fprintln(l.opts.Out, lipgloss.Green.Render(fmt.Sprintf("%s updated in %s (%s)",
			strings.ToUpper(l.opts.OutputExt), l.opts.Target.OutputDirectory, cycle.Duration.Round(time.Millisecond))))
	}
}
