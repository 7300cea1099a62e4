package models

import "time"

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusPartial   RunStatus = "partial"
	RunStatusBlocked   RunStatus = "blocked"
	RunStatusFailed    RunStatus = "failed"
)

// Batch summarizes one (region, property type, trade type) step of a run.
type Batch struct {
	Region       string `json:"region"`
	RegionCode   string `json:"regionCode,omitempty"`
	PropertyType string `json:"propertyType"`
	TradeType    string `json:"tradeType"`
	Listings     int    `json:"listings"`
	Error        string `json:"error,omitempty"`
}

type CollectionRun struct {
	ID         string     `json:"id"`
	Strategy   string     `json:"strategy"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Status     RunStatus  `json:"status"`
	Listings   []Listing  `json:"listings"`
	Batches    []Batch    `json:"batches"`
	Logs       []string   `json:"logs"`
	ErrorCount int        `json:"errorCount"`
	Blocked    bool       `json:"blocked"`
	Message    string     `json:"message,omitempty"`
}

// Success is true for runs that produced their listings without a block.
func (r *CollectionRun) Success() bool {
	return r.Status == RunStatusCompleted || r.Status == RunStatusPartial
}
