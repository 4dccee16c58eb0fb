package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/morler/texwatch/logger"
	"github.com/morler/texwatch/toolchain/models"
)

// CommandExecutor runs toolchain processes non-interactively and captures their output.
type CommandExecutor struct{}

// NewCommandExecutor creates a new command executor instance
func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{}
}

// Run executes name with args in dir and waits for it to exit. A non-zero exit
// status is reported through ExitCode, not as an error.
func (ce *CommandExecutor) Run(ctx context.Context, dir string, name string, args ...string) models.RawOutput {
	out := models.RawOutput{
		Tool: name,
		Args: args,
		Dir:  dir,
	}

	if name == "" {
		out.Err = fmt.Errorf("empty command provided")
		out.ExitCode = -1
		return out
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// The compiler must never wait on the terminal; our stdin belongs to the watch loop.
	cmd.Stdin = nil

	logger.WithField("dir", dir).Debugf("exec %s %v", name, args)

	err := cmd.Run()
	out.Stdout = stdout.String()
	out.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			out.ExitCode = exitErr.ExitCode()
		} else {
			out.ExitCode = -1
			out.Err = fmt.Errorf("command execution failed: %w", err)
		}
	}

	logger.WithField("tool", name).Debugf("exit status %d", out.ExitCode)
	return out
}
