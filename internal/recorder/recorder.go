package recorder

import (
	"time"

	"StockCompass/internal/model"
)

// RunRecord holds everything persisted for one recommendation run.
type RunRecord struct {
	At              time.Time
	RiskScore       int
	TimeHorizon     string
	TopK            int
	Realtime        bool
	Recommendations []model.Recommendation
}

// Recorder persists recommendation runs for later analysis.
type Recorder interface {
	RecordRun(run *RunRecord) error
	LatestRun() (*RunRecord, error)
	Close() error
}
