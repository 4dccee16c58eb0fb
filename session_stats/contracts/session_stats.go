package contracts

import (
	"io"
	"time"
)

type ISessionStats interface {
	RecordCycle(errors int, warnings int, duration time.Duration)
	RecordSnapshot()
	RecordSnapshotFailure()
	GetCurrentStats() (cycles int, errors int, warnings int)
	DisplayStats(w io.Writer)
	ClearStats()
}
