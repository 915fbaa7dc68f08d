package model

import (
	"time"

	"gorm.io/datatypes"
)

// RefreshRun records one data refresh and its report.
type RefreshRun struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TraceID    string         `gorm:"size:36;index" json:"trace_id"`
	DataPath   string         `gorm:"size:255" json:"data_path"`
	Report     datatypes.JSON `json:"report"`
	Error      string         `gorm:"type:text" json:"error"`
	DurationMs int64          `json:"duration_ms"`
	CreatedAt  time.Time      `gorm:"index:idx_refresh_created;autoCreateTime:milli" json:"created_at"`
}

// RefreshSkip is one record or link the refresh left out, and why.
type RefreshSkip struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TraceID   string    `gorm:"size:36;index:idx_skip_trace" json:"trace_id"`
	Stage     string    `gorm:"size:32;not null" json:"stage"`
	Reason    string    `gorm:"size:64;index:idx_skip_reason;not null" json:"reason"`
	Subject   string    `gorm:"size:191" json:"subject"`
	Target    string    `gorm:"size:191" json:"target"`
	CreatedAt time.Time `gorm:"autoCreateTime:milli" json:"created_at"`
}
