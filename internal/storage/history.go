package storage

import (
	"time"

	"github.com/google/uuid"
)

// RunRecord is one completed per-URL run as remembered by the history
// store. It carries the launch parameters plus where the report landed, so
// `breakcheck history` can answer "what did we last throw at this URL".
type RunRecord struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	TargetURL  string    `json:"target_url"`
	Users      int       `json:"users"`
	SpawnRate  int       `json:"spawn_rate"`
	RunTime    string    `json:"run_time"`
	ReportPath string    `json:"report_path"`
	OK         bool      `json:"ok"`
}

func NewRunRecord(targetURL string, users, spawnRate int, runTime string) RunRecord {
	return RunRecord{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		TargetURL: targetURL,
		Users:     users,
		SpawnRate: spawnRate,
		RunTime:   runTime,
	}
}
