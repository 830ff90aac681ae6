package dto

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListStocksRequest holds the query parameters of GET /stocks.
type ListStocksRequest struct {
	History bool `query:"history"`
}

// AnalyzeRequest holds the parameters of POST /stocks/:symbol/analyze.
type AnalyzeRequest struct {
	Symbol string `param:"symbol" validate:"required,max=10"`
	Force  bool   `query:"force" json:"force"`
}

// StartScanResponse is returned when a scan is accepted.
type StartScanResponse struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}
