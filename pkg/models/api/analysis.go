package api

// AnalysisResult is the wire shape of the analysis service response.
// Pointer fields distinguish an absent key from a zero value.
type AnalysisResult struct {
	TotalSales       *float64        `json:"totalSales"`
	TotalCOGS        *float64        `json:"totalCOGS"`
	ProfitOrLoss     *float64        `json:"profitOrLoss"`
	ProductSales     *Table          `json:"productSales"`
	LowSalesProducts *Table          `json:"lowSalesProducts"`
	PredictedSales   *PredictedSales `json:"predictedSales"`
	GrowthAnalysis   *GrowthAnalysis `json:"growthAnalysis"`
	DailyDetails     [][]interface{} `json:"dailyDetails,omitempty"`
}

type Table struct {
	Headers []string        `json:"headers"`
	Rows    [][]interface{} `json:"rows"`
}

type PredictedSales struct {
	Daily   float64 `json:"daily"`
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
}

type GrowthAnalysis struct {
	DailyGrowth   []float64 `json:"daily_growth"`
	MonthlyGrowth []float64 `json:"monthly_growth"`
	YearlyGrowth  []float64 `json:"yearly_growth"`
}

// ErrorResponse is the body of a failed request, both from the analysis
// service and from this module's web API.
type ErrorResponse struct {
	Error string `json:"error"`
}
