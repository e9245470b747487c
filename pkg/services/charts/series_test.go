package charts

import (
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(cells ...interface{}) []domain.Scalar {
	out := make([]domain.Scalar, 0, len(cells))
	for _, c := range cells {
		out = append(out, domain.NewScalar(c))
	}
	return out
}

func fixtureResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		TotalSales:   1500,
		TotalCOGS:    900,
		ProfitOrLoss: 600,
		ProductSales: domain.Table{
			Headers: []string{"Product", "Sales"},
			Rows: [][]domain.Scalar{
				row("Widget", 700),
				row("Gadget", 300),
				row("Doohickey", 500),
			},
		},
		LowSalesProducts: domain.Table{
			Headers: []string{"Product", "Sales"},
			Rows: [][]domain.Scalar{
				row("Doohickey", 500),
				row("Gadget", 300),
				row("Sprocket", 300),
				row("Gizmo", "120.5"),
			},
		},
		PredictedSales: domain.PredictedSales{Daily: 50, Monthly: 1500, Yearly: 18000},
		GrowthAnalysis: domain.GrowthAnalysis{
			DailyGrowth:   []float64{0.05, 0.9},
			MonthlyGrowth: []float64{-0.125},
			YearlyGrowth:  []float64{1.5},
		},
	}
}

func TestProductSalesSeries_PreservesRowOrder(t *testing.T) {
	r := fixtureResult()

	s := ProductSalesSeries(r)

	assert.Equal(t, []string{"Widget", "Gadget", "Doohickey"}, s.Labels)
	assert.Equal(t, []float64{700, 300, 500}, s.Values)
	assert.Len(t, s.Labels, len(r.ProductSales.Rows))
	assert.Len(t, s.Values, len(r.ProductSales.Rows))
	assert.Equal(t, KindBar, s.Kind)
}

func TestLowToHighSalesSeries_SortsAscendingAndStable(t *testing.T) {
	r := fixtureResult()

	s := LowToHighSalesSeries(r)

	require.Len(t, s.Values, 4)
	for i := 0; i+1 < len(s.Values); i++ {
		assert.LessOrEqual(t, s.Values[i], s.Values[i+1])
	}
	assert.Equal(t, []string{"Gizmo", "Gadget", "Sprocket", "Doohickey"}, s.Labels)
	assert.Equal(t, []float64{120.5, 300, 300, 500}, s.Values)
}

func TestLowToHighSalesSeries_DoesNotMutateInput(t *testing.T) {
	r := fixtureResult()
	before := r.LowSalesProducts.Rows[0][0].String()

	_ = LowToHighSalesSeries(r)

	assert.Equal(t, before, r.LowSalesProducts.Rows[0][0].String())
}

func TestPredictedSalesSeries(t *testing.T) {
	s := PredictedSalesSeries(fixtureResult())

	assert.Equal(t, []string{"Daily", "Monthly", "Yearly"}, s.Labels)
	assert.Equal(t, []float64{50, 1500, 18000}, s.Values)
}

func TestGrowthSeries_ConvertsToPercent(t *testing.T) {
	r := fixtureResult()

	s := GrowthSeries(r)

	assert.Equal(t, []string{"Daily", "Monthly", "Yearly"}, s.Labels)
	assert.Equal(t, []float64{0.05 * 100, -0.125 * 100, 1.5 * 100}, s.Values)
	assert.Equal(t, KindLine, s.Kind)
}

func TestCOGSComparisonSeries(t *testing.T) {
	s := COGSComparisonSeries(fixtureResult())

	assert.Equal(t, []string{"Total Sales", "Total COGS"}, s.Labels)
	assert.Equal(t, []float64{1500, 900}, s.Values)
}

func TestBuilders_EmptySources(t *testing.T) {
	empty := &domain.AnalysisResult{}

	tests := []struct {
		name   string
		series Series
	}{
		{"product sales", ProductSalesSeries(empty)},
		{"low to high", LowToHighSalesSeries(empty)},
		{"growth", GrowthSeries(empty)},
		{"growth with one empty array", GrowthSeries(&domain.AnalysisResult{
			GrowthAnalysis: domain.GrowthAnalysis{
				DailyGrowth:   []float64{0.1},
				MonthlyGrowth: nil,
				YearlyGrowth:  []float64{0.2},
			},
		})},
		{"nil result", ProductSalesSeries(nil)},
		{"nil result predicted", PredictedSalesSeries(nil)},
		{"nil result cogs", COGSComparisonSeries(nil)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.series.Empty())
			assert.Empty(t, tc.series.Labels)
			assert.Empty(t, tc.series.Values)
			assert.NotEmpty(t, tc.series.Title)
		})
	}
}

func TestProjection_NonNumericSalesBecomeZero(t *testing.T) {
	r := &domain.AnalysisResult{
		ProductSales: domain.Table{
			Headers: []string{"Product", "Sales"},
			Rows:    [][]domain.Scalar{row("Widget", "n/a"), row("Gadget", nil)},
		},
	}

	s := ProductSalesSeries(r)

	assert.Equal(t, []float64{0, 0}, s.Values)
}

func TestAllAndByName(t *testing.T) {
	r := fixtureResult()

	all := All(r)
	require.Len(t, all, len(Names()))
	for i, name := range Names() {
		assert.Equal(t, name, all[i].Name)
	}

	s, ok := ByName(r, NameGrowth)
	require.True(t, ok)
	assert.Equal(t, "Sales Growth Analysis", s.Title)

	_, ok = ByName(r, "unknown")
	assert.False(t, ok)
}
