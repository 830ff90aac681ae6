package entity

import (
	"strings"
	"time"
)

// SignalType is the classification returned for one instrument.
type SignalType string

const (
	SignalStrongBuy  SignalType = "STRONG_BUY"
	SignalBuy        SignalType = "BUY"
	SignalNeutral    SignalType = "NEUTRAL"
	SignalSell       SignalType = "SELL"
	SignalStrongSell SignalType = "STRONG_SELL"
)

// Valid reports whether t is one of the known signal types.
func (t SignalType) Valid() bool {
	switch t {
	case SignalStrongBuy, SignalBuy, SignalNeutral, SignalSell, SignalStrongSell:
		return true
	}
	return false
}

// IsStrong reports whether t is a STRONG_* signal.
func (t SignalType) IsStrong() bool {
	return strings.Contains(string(t), "STRONG")
}

// IsBuy reports whether t is a buy-side signal.
func (t SignalType) IsBuy() bool {
	return strings.Contains(string(t), "BUY")
}

// Label renders the type for humans, e.g. "STRONG BUY".
func (t SignalType) Label() string {
	return strings.Replace(string(t), "_", " ", 1)
}

// ClassifiedSignal is the result of classifying one instrument at one point in time.
type ClassifiedSignal struct {
	ID              string     `json:"id"`
	Symbol          string     `json:"symbol"`
	Timestamp       time.Time  `json:"timestamp"`
	Type            SignalType `json:"type"`
	Confidence      float64    `json:"confidence"`
	Reasoning       string     `json:"reasoning"`
	DetectedPattern string     `json:"detected_pattern"`
	Fallback        bool       `json:"fallback"`
}
