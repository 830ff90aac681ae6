package dto

import (
	"time"

	"golang-signal-scanner/internal/entity"
)

// ScanResult pairs a scanned instrument with its classification.
type ScanResult struct {
	Snapshot entity.InstrumentSnapshot `json:"snapshot"`
	Signal   entity.ClassifiedSignal   `json:"signal"`
}

// ScanReport summarises one scan run. Skipped is set when another scan was already running.
type ScanReport struct {
	ID         string       `json:"id,omitempty"`
	Skipped    bool         `json:"skipped"`
	Cancelled  bool         `json:"cancelled"`
	Total      int          `json:"total"`
	Results    []ScanResult `json:"results"`
	StartedAt  time.Time    `json:"started_at,omitempty"`
	FinishedAt time.Time    `json:"finished_at,omitempty"`
}

// ScanStatus is the live state of the scanner.
type ScanStatus struct {
	Scanning   bool        `json:"scanning"`
	Progress   int         `json:"progress"`
	LastReport *ScanReport `json:"last_report,omitempty"`
}
