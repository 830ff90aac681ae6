package entity

import "time"

type DispatchStatus string

const (
	DispatchStatusSent   DispatchStatus = "sent"
	DispatchStatusFailed DispatchStatus = "failed"
)

// DispatchRecord is the audit entry of one alert. Key is unique for the store's lifetime.
type DispatchRecord struct {
	ID           string         `json:"id"`
	Key          string         `json:"key"`
	Target       string         `json:"target"`
	SignalLabel  string         `json:"signal_label"`
	Detail       string         `json:"detail"`
	Recipient    string         `json:"recipient"`
	Content      string         `json:"content"`
	Status       DispatchStatus `json:"status"`
	DispatchedAt time.Time      `json:"dispatched_at"`
}
