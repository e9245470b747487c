package api

type SummaryRow struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

type Summary struct {
	Currency string       `json:"currency"`
	Rows     []SummaryRow `json:"rows"`
}

type Series struct {
	Name   string    `json:"name"`
	Title  string    `json:"title"`
	Label  string    `json:"label"`
	Kind   string    `json:"kind"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type LedgerMatch struct {
	Date    string  `json:"date"`
	Product string  `json:"product"`
	Sales   float64 `json:"sales"`
	COGS    float64 `json:"cogs"`
	Profit  float64 `json:"profit"`
	Status  string  `json:"status"`
}

type LedgerSearchResponse struct {
	Product string        `json:"product"`
	Date    string        `json:"date"`
	Records []LedgerMatch `json:"records"`
	Message string        `json:"message,omitempty"`
}
