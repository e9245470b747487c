// Package charts turns an analysis result into labelled numeric series.
// Every builder is pure: the same result always yields the same series and
// a missing or empty source yields an empty series rather than an error.
package charts

import (
	"sort"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

type Kind string

const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
)

const (
	NameProductSales   = "product-sales"
	NameLowToHigh      = "low-to-high"
	NamePredictedSales = "predicted-sales"
	NameGrowth         = "growth"
	NameCOGS           = "cogs"
)

var periodLabels = []string{"Daily", "Monthly", "Yearly"}

// Series is one chart's worth of data. Labels and Values always have the
// same length.
type Series struct {
	Name   string
	Title  string
	Label  string
	Kind   Kind
	Labels []string
	Values []float64
}

func (s Series) Empty() bool {
	return len(s.Values) == 0
}

func newSeries(name, title, label string, kind Kind) Series {
	return Series{
		Name:   name,
		Title:  title,
		Label:  label,
		Kind:   kind,
		Labels: []string{},
		Values: []float64{},
	}
}

// ProductSalesSeries projects product names and sales volumes in the
// order the service returned them.
func ProductSalesSeries(r *domain.AnalysisResult) Series {
	s := newSeries(NameProductSales, "Product Sales Chart", "Sales Volume", KindBar)
	if r == nil {
		return s
	}
	return project(s, r.ProductSales.Rows)
}

// LowToHighSalesSeries sorts the low-sales table ascending by sales volume.
// Ties keep their original relative order.
func LowToHighSalesSeries(r *domain.AnalysisResult) Series {
	s := newSeries(NameLowToHigh, "Low to High Sales Products Chart", "Sales (Low to High)", KindBar)
	if r == nil || r.LowSalesProducts.Empty() {
		return s
	}

	rows := make([][]domain.Scalar, len(r.LowSalesProducts.Rows))
	copy(rows, r.LowSalesProducts.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return cellValue(rows[i], 1) < cellValue(rows[j], 1)
	})
	return project(s, rows)
}

func PredictedSalesSeries(r *domain.AnalysisResult) Series {
	s := newSeries(NamePredictedSales, "Predicted Sales", "Predicted Sales", KindBar)
	if r == nil {
		return s
	}
	s.Labels = append(s.Labels, periodLabels...)
	s.Values = append(s.Values, r.PredictedSales.Daily, r.PredictedSales.Monthly, r.PredictedSales.Yearly)
	return s
}

// GrowthSeries converts the first daily, monthly and yearly growth rates
// from fractions to percentages.
func GrowthSeries(r *domain.AnalysisResult) Series {
	s := newSeries(NameGrowth, "Sales Growth Analysis", "Sales Growth (%)", KindLine)
	if r == nil {
		return s
	}
	g := r.GrowthAnalysis
	if len(g.DailyGrowth) == 0 || len(g.MonthlyGrowth) == 0 || len(g.YearlyGrowth) == 0 {
		return s
	}
	s.Labels = append(s.Labels, periodLabels...)
	s.Values = append(s.Values, g.DailyGrowth[0]*100, g.MonthlyGrowth[0]*100, g.YearlyGrowth[0]*100)
	return s
}

func COGSComparisonSeries(r *domain.AnalysisResult) Series {
	s := newSeries(NameCOGS, "COGS Analysis", "Amount", KindBar)
	if r == nil {
		return s
	}
	s.Labels = append(s.Labels, "Total Sales", "Total COGS")
	s.Values = append(s.Values, r.TotalSales, r.TotalCOGS)
	return s
}

// All returns every series in page order.
func All(r *domain.AnalysisResult) []Series {
	return []Series{
		ProductSalesSeries(r),
		LowToHighSalesSeries(r),
		PredictedSalesSeries(r),
		GrowthSeries(r),
		COGSComparisonSeries(r),
	}
}

func ByName(r *domain.AnalysisResult, name string) (Series, bool) {
	for _, s := range All(r) {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

func Names() []string {
	return []string{NameProductSales, NameLowToHigh, NamePredictedSales, NameGrowth, NameCOGS}
}

func project(s Series, rows [][]domain.Scalar) Series {
	for _, row := range rows {
		label := ""
		if len(row) > 0 {
			label = row[0].String()
		}
		s.Labels = append(s.Labels, label)
		s.Values = append(s.Values, cellValue(row, 1))
	}
	return s
}

// cellValue returns the numeric value at idx, or 0 when the cell is absent
// or not a number.
func cellValue(row []domain.Scalar, idx int) float64 {
	if idx >= len(row) {
		return 0
	}
	v, _ := row[idx].Float()
	return v
}
