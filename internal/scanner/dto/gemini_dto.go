package dto

// SignalAnalysisResult is the expected JSON structure of a single-instrument analysis.
type SignalAnalysisResult struct {
	Type       string  `json:"type"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
	Pattern    string  `json:"pattern"`
}

// HeadlineResult is one headline of the market overview.
type HeadlineResult struct {
	Title  string `json:"title"`
	URL    string `json:"url,omitempty"`
	Source string `json:"source"`
}

// MarketOverviewResult is the expected JSON structure of the market overview.
type MarketOverviewResult struct {
	Sentiment string           `json:"sentiment"`
	Summary   string           `json:"summary"`
	Headlines []HeadlineResult `json:"headlines"`
}

// Headline is an RSS item passed to the market overview prompt as context.
type Headline struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Source    string `json:"source"`
	Published string `json:"published,omitempty"`
}
