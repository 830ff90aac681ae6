package entity

import "time"

// Sentiment is the coarse market mood label.
type Sentiment string

const (
	SentimentBullish  Sentiment = "BULLISH"
	SentimentBearish  Sentiment = "BEARISH"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentVolatile Sentiment = "VOLATILE"
)

// Valid reports whether s is one of the known sentiments.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentBullish, SentimentBearish, SentimentNeutral, SentimentVolatile:
		return true
	}
	return false
}

// Severity maps the sentiment to the feed severity shown for it.
func (s Sentiment) Severity() Severity {
	switch s {
	case SentimentBullish:
		return SeveritySuccess
	case SentimentBearish:
		return SeverityError
	case SentimentVolatile:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

type NewsItem struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// MarketOutlook is the market-wide sentiment snapshot. Each refresh replaces it wholesale.
type MarketOutlook struct {
	Sentiment Sentiment  `json:"sentiment"`
	Summary   string     `json:"summary"`
	TopNews   []NewsItem `json:"top_news"`
	Timestamp time.Time  `json:"timestamp"`
	Fallback  bool       `json:"fallback"`
}
