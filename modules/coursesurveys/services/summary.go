package services

import (
	"time"

	"github.com/google/uuid"
)

// Source says where a table's id mapping came from.
type Source string

const (
	SourceDump    Source = "dump"
	SourceCache   Source = "cache"
	SourceSkipped Source = "skipped"
)

type TableResult struct {
	Table  Table  `json:"table"`
	Source Source `json:"source"`
	Read   int    `json:"read"`
	Saved  int    `json:"saved"`
	Failed int    `json:"failed"`
	Mapped int    `json:"mapped"`
}

type Summary struct {
	RunID      uuid.UUID     `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Tables     []TableResult `json:"tables"`
}

// Table returns the result recorded for t, if the run got that far.
func (s Summary) Table(t Table) (TableResult, bool) {
	for _, r := range s.Tables {
		if r.Table == t {
			return r, true
		}
	}
	return TableResult{}, false
}
