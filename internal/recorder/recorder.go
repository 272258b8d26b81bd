package recorder

import (
	"time"

	"github.com/google/uuid"

	"StockSandbox/internal/model"
)

// Trigger names the surface that requested a series.
type Trigger string

const (
	TriggerCLI   Trigger = "CLI"
	TriggerAPI   Trigger = "API"
	TriggerWatch Trigger = "WATCH"
	TriggerChat  Trigger = "CHAT"
)

// SeriesRun is one journal entry describing a generated series.
type SeriesRun struct {
	ID      string
	Trigger Trigger
	Result  *model.SeriesResult
}

// NewSeriesRun stamps a result with a fresh run id.
func NewSeriesRun(trigger Trigger, res *model.SeriesResult) *SeriesRun {
	return &SeriesRun{ID: uuid.NewString(), Trigger: trigger, Result: res}
}

// Recorder journals generated series for later analysis. Entries are never
// read back to serve requests.
type Recorder interface {
	RecordRun(run *SeriesRun) error
	Close() error
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
