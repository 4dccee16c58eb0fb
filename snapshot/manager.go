package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/morler/texwatch/logger"
	"github.com/morler/texwatch/toolchain/models"
	"github.com/spf13/afero"
	"github.com/zeebo/xxh3"
)

// TimestampLayout gives snapshot names second resolution, e.g. 20261019_143005.
const TimestampLayout = "20060102_150405"

// Snapshot is a point-in-time copy of the source and, if it existed, its output.
type Snapshot struct {
	Timestamp  time.Time
	SourceCopy string
	// OutputCopy is empty when no derived output existed at snapshot time.
	OutputCopy string
	// Checksum is the xxh3 hash of the copied source, hex encoded.
	Checksum string
}

// Manager copies the watched files into a history directory.
type Manager struct {
	fs        afero.Fs
	outputExt string
	now       func() time.Time
}

// NewManager creates a snapshot manager. outputExt is the derived output
// extension, e.g. "pdf".
func NewManager(fs afero.Fs, outputExt string, now func() time.Time) *Manager {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if now == nil {
		now = time.Now
	}
	return &Manager{
		fs:        fs,
		outputExt: strings.TrimPrefix(outputExt, "."),
		now:       now,
	}
}

// TakeSnapshot copies the source to historyDir/<base>_<ts><ext> and, only if the
// derived output currently exists, copies it to historyDir/<base>_<ts>.<outputExt>.
// The source file is only read.
func (m *Manager) TakeSnapshot(target models.WatchTarget, historyDir string) (Snapshot, error) {
	ts := m.now()
	stamp := ts.Format(TimestampLayout)

	if err := m.fs.MkdirAll(historyDir, 0o755); err != nil {
		return Snapshot{}, fmt.Errorf("failed to create history directory: %w", err)
	}

	snap := Snapshot{
		Timestamp:  ts,
		SourceCopy: filepath.Join(historyDir, fmt.Sprintf("%s_%s%s", target.BaseName(), stamp, target.SourceExt())),
	}

	sum, err := m.copyFile(target.SourcePath, snap.SourceCopy)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to snapshot source: %w", err)
	}
	snap.Checksum = fmt.Sprintf("%016x", sum)

	outputPath := target.OutputPath(m.outputExt)
	exists, err := afero.Exists(m.fs, outputPath)
	if err != nil {
		return snap, fmt.Errorf("failed to check output %s: %w", outputPath, err)
	}
	if exists {
		dst := filepath.Join(historyDir, fmt.Sprintf("%s_%s.%s", target.BaseName(), stamp, m.outputExt))
		if _, err := m.copyFile(outputPath, dst); err != nil {
			return snap, fmt.Errorf("failed to snapshot output: %w", err)
		}
		snap.OutputCopy = dst
	}

	logger.WithField("source", snap.SourceCopy).Debugf("snapshot taken (output: %q)", snap.OutputCopy)
	return snap, nil
}

// copyFile copies src to dst and returns the xxh3 hash of the copied bytes.
func (m *Manager) copyFile(src string, dst string) (uint64, error) {
	in, err := m.fs.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	out, err := m.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	hasher := xxh3.New()
	if _, err := io.Copy(io.MultiWriter(out, hasher), in); err != nil {
		out.Close()
		return 0, err
	}
	if err := out.Close(); err != nil {
		return 0, err
	}
	return hasher.Sum64(), nil
}
