package ratelimit

import "time"

// RequestLog is one audit row per inbound API request. The limiter counts
// these rows within the trailing window; the same table doubles as the usage
// log for reporting.
type RequestLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CredentialID string    `gorm:"size:128;index:idx_credential_created,priority:1" json:"credential_id"`
	Method       string    `gorm:"size:8" json:"method"`
	Path         string    `gorm:"size:255" json:"path"`
	StatusCode   int       `json:"status_code"`
	CreatedAt    time.Time `gorm:"index:idx_credential_created,priority:2" json:"created_at"`
}

// TableName overrides the default table name.
func (RequestLog) TableName() string {
	return "request_logs"
}
