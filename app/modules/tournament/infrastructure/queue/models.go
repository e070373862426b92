package tournamentqueue

import "time"

// RefreshAllJob re-syncs every stored tournament with the provider.
type RefreshAllJob struct {
	// Trigger records who asked for the run: "periodic" or "api".
	Trigger string `json:"trigger"`
}

// Kind returns the job type identifier for River
func (RefreshAllJob) Kind() string { return "refresh_all_tournaments" }

const (
	triggerPeriodic = "periodic"
	triggerManual   = "api"
)

// JobInfo describes one refresh run (for monitoring)
type JobInfo struct {
	ID          int64      `json:"id"`
	State       string     `json:"state"`
	Trigger     string     `json:"trigger"`
	Attempt     int        `json:"attempt"`
	CreatedAt   time.Time  `json:"created_at"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
}
