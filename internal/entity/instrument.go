package entity

// Instrument identifies one ticker in the universe.
type Instrument struct {
	Symbol string `json:"symbol" mapstructure:"symbol" validate:"required"`
	Name   string `json:"name" mapstructure:"name" validate:"required"`
}

// PricePoint is one trading day of synthetic history.
type PricePoint struct {
	Date   string  `json:"date"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// InstrumentSnapshot is the current derived state of one instrument.
type InstrumentSnapshot struct {
	Symbol         string       `json:"symbol"`
	Name           string       `json:"name"`
	Price          float64      `json:"price"`
	Change         float64      `json:"change"`
	ChangePercent  float64      `json:"change_percent"`
	Volume         int64        `json:"volume"`
	AvgVolume      float64      `json:"avg_volume"`
	RelativeVolume float64      `json:"relative_volume"`
	History        []PricePoint `json:"history,omitempty"`
}

// RecentHistory returns at most the last n points of the history.
func (s InstrumentSnapshot) RecentHistory(n int) []PricePoint {
	if n <= 0 {
		return nil
	}
	if len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}

// WithoutHistory returns a copy of the snapshot with the history dropped.
func (s InstrumentSnapshot) WithoutHistory() InstrumentSnapshot {
	s.History = nil
	return s
}

// DefaultUniverse is the ticker list scanned when no universe is configured.
var DefaultUniverse = []Instrument{
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "TSLA", Name: "Tesla, Inc."},
	{Symbol: "NVDA", Name: "NVIDIA Corporation"},
	{Symbol: "MSFT", Name: "Microsoft Corporation"},
	{Symbol: "GOOGL", Name: "Alphabet Inc."},
	{Symbol: "AMZN", Name: "Amazon.com, Inc."},
	{Symbol: "AMD", Name: "Advanced Micro Devices"},
	{Symbol: "META", Name: "Meta Platforms, Inc."},
	{Symbol: "NFLX", Name: "Netflix, Inc."},
	{Symbol: "INTC", Name: "Intel Corporation"},
	{Symbol: "ADBE", Name: "Adobe Inc."},
	{Symbol: "CRM", Name: "Salesforce, Inc."},
	{Symbol: "PYPL", Name: "PayPal Holdings"},
	{Symbol: "BABA", Name: "Alibaba Group"},
	{Symbol: "NIO", Name: "NIO Inc."},
	{Symbol: "COIN", Name: "Coinbase Global"},
	{Symbol: "PLTR", Name: "Palantir Technologies"},
	{Symbol: "UBER", Name: "Uber Technologies"},
	{Symbol: "SHOP", Name: "Shopify Inc."},
	{Symbol: "SQ", Name: "Block, Inc."},
	{Symbol: "MSTR", Name: "MicroStrategy Inc."},
	{Symbol: "RIVN", Name: "Rivian Automotive"},
	{Symbol: "LCID", Name: "Lucid Group"},
	{Symbol: "GME", Name: "GameStop Corp."},
	{Symbol: "AMC", Name: "AMC Entertainment"},
	{Symbol: "SNOW", Name: "Snowflake Inc."},
	{Symbol: "ZM", Name: "Zoom Video"},
	{Symbol: "U", Name: "Unity Software"},
	{Symbol: "NET", Name: "Cloudflare, Inc."},
	{Symbol: "DDOG", Name: "Datadog, Inc."},
	{Symbol: "CRWD", Name: "CrowdStrike Holdings"},
	{Symbol: "OKTA", Name: "Okta, Inc."},
	{Symbol: "ZS", Name: "Zscaler, Inc."},
	{Symbol: "TEAM", Name: "Atlassian Corp"},
	{Symbol: "MDB", Name: "MongoDB, Inc."},
	{Symbol: "DOCU", Name: "DocuSign, Inc."},
	{Symbol: "ROKU", Name: "Roku, Inc."},
	{Symbol: "SE", Name: "Sea Limited"},
	{Symbol: "MELI", Name: "MercadoLibre"},
	{Symbol: "PTON", Name: "Peloton Interactive"},
	{Symbol: "ABNB", Name: "Airbnb, Inc."},
	{Symbol: "DASH", Name: "DoorDash, Inc."},
	{Symbol: "PATH", Name: "UiPath Inc."},
	{Symbol: "AI", Name: "C3.ai, Inc."},
	{Symbol: "SMCI", Name: "Super Micro Computer"},
	{Symbol: "ARM", Name: "ARM Holdings"},
	{Symbol: "AVGO", Name: "Broadcom Inc."},
	{Symbol: "MU", Name: "Micron Technology"},
	{Symbol: "QCOM", Name: "Qualcomm Inc."},
	{Symbol: "ASML", Name: "ASML Holding"},
}
