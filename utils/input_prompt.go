package utils

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/morler/texwatch/logger"
)

// inputBuffer bounds how many typed lines can queue up while a compile is running.
const inputBuffer = 16

// InputLines reads r line by line in the background and forwards each trimmed
// line on the returned channel. The channel is closed on EOF, on a read error,
// or once ctx is done and the next line arrives.
func InputLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string, inputBuffer)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			case lines <- strings.TrimSpace(scanner.Text()):
			}
		}
		if err := scanner.Err(); err != nil {
			logger.WithError(err).Warnf("error reading input")
		}
	}()

	return lines
}
