package domain

import (
	"errors"
	"strconv"
	"strings"
)

// SchemaVersion identifies the AnalysisResult layout this client understands.
// Bump it whenever the remote payload changes shape.
const SchemaVersion = 1

var ErrInvalidPayload = errors.New("invalid analysis payload")

// AnalysisResult is the financial summary returned by the analysis service
// for one uploaded report. It is never mutated after receipt.
type AnalysisResult struct {
	TotalSales       float64
	TotalCOGS        float64
	ProfitOrLoss     float64
	ProductSales     Table
	LowSalesProducts Table
	PredictedSales   PredictedSales
	GrowthAnalysis   GrowthAnalysis
	DailyDetails     []DailyRecord
}

// Table is a header row plus data rows. Row 0 of each product table holds
// the product name and row 1 its sales volume.
type Table struct {
	Headers []string
	Rows    [][]Scalar
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

type PredictedSales struct {
	Daily   float64
	Monthly float64
	Yearly  float64
}

// GrowthAnalysis holds fractional growth rates; only the first element of
// each slice is consumed.
type GrowthAnalysis struct {
	DailyGrowth   []float64
	MonthlyGrowth []float64
	YearlyGrowth  []float64
}

// DailyRecord is one row of the per-day ledger.
type DailyRecord struct {
	Day     string // YYYY-MM-DD
	Product string
	Sales   float64
	COGS    float64
	Profit  float64
}

type SummaryRow struct {
	Metric string
	Value  float64
}

// Scalar is a single JSON table cell: a string, a number, a bool or null.
type Scalar struct {
	value interface{}
}

// NewScalar wraps v. Integer kinds are widened to float64 so that a cell
// compares equal after a JSON round trip.
func NewScalar(v interface{}) Scalar {
	switch n := v.(type) {
	case int:
		return Scalar{value: float64(n)}
	case int32:
		return Scalar{value: float64(n)}
	case int64:
		return Scalar{value: float64(n)}
	case float32:
		return Scalar{value: float64(n)}
	case float64, string, bool, nil:
		return Scalar{value: n}
	default:
		return Scalar{value: nil}
	}
}

func (s Scalar) Value() interface{} {
	return s.value
}

// Float reports the numeric value of the cell. Numeric strings are accepted.
func (s Scalar) Float() (float64, bool) {
	switch v := s.value.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func (s Scalar) String() string {
	switch v := s.value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
