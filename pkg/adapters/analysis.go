package adapters

import (
	"fmt"
	"slices"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// MapAnalysisResultApiToDomain validates a service payload and converts it
// into the domain model. Every failure wraps domain.ErrInvalidPayload.
func MapAnalysisResultApiToDomain(res api.AnalysisResult) (*domain.AnalysisResult, error) {
	var missing []string
	if res.TotalSales == nil {
		missing = append(missing, "totalSales")
	}
	if res.TotalCOGS == nil {
		missing = append(missing, "totalCOGS")
	}
	if res.ProfitOrLoss == nil {
		missing = append(missing, "profitOrLoss")
	}
	if res.ProductSales == nil {
		missing = append(missing, "productSales")
	}
	if res.LowSalesProducts == nil {
		missing = append(missing, "lowSalesProducts")
	}
	if res.PredictedSales == nil {
		missing = append(missing, "predictedSales")
	}
	if res.GrowthAnalysis == nil {
		missing = append(missing, "growthAnalysis")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidPayload, strings.Join(missing, ", "))
	}

	productSales, err := mapTable("productSales", *res.ProductSales)
	if err != nil {
		return nil, err
	}
	lowSales, err := mapTable("lowSalesProducts", *res.LowSalesProducts)
	if err != nil {
		return nil, err
	}
	details, err := mapDailyDetails(res.DailyDetails)
	if err != nil {
		return nil, err
	}

	return &domain.AnalysisResult{
		TotalSales:       *res.TotalSales,
		TotalCOGS:        *res.TotalCOGS,
		ProfitOrLoss:     *res.ProfitOrLoss,
		ProductSales:     productSales,
		LowSalesProducts: lowSales,
		PredictedSales: domain.PredictedSales{
			Daily:   res.PredictedSales.Daily,
			Monthly: res.PredictedSales.Monthly,
			Yearly:  res.PredictedSales.Yearly,
		},
		GrowthAnalysis: domain.GrowthAnalysis{
			DailyGrowth:   slices.Clone(res.GrowthAnalysis.DailyGrowth),
			MonthlyGrowth: slices.Clone(res.GrowthAnalysis.MonthlyGrowth),
			YearlyGrowth:  slices.Clone(res.GrowthAnalysis.YearlyGrowth),
		},
		DailyDetails: details,
	}, nil
}

func MapAnalysisResultDomainToApi(res *domain.AnalysisResult) api.AnalysisResult {
	productSales := mapTableToApi(res.ProductSales)
	lowSales := mapTableToApi(res.LowSalesProducts)

	var details [][]interface{}
	if len(res.DailyDetails) > 0 {
		details = make([][]interface{}, 0, len(res.DailyDetails))
		for _, d := range res.DailyDetails {
			details = append(details, []interface{}{d.Day, d.Product, d.Sales, d.COGS, d.Profit})
		}
	}

	return api.AnalysisResult{
		TotalSales:       ptr(res.TotalSales),
		TotalCOGS:        ptr(res.TotalCOGS),
		ProfitOrLoss:     ptr(res.ProfitOrLoss),
		ProductSales:     &productSales,
		LowSalesProducts: &lowSales,
		PredictedSales: &api.PredictedSales{
			Daily:   res.PredictedSales.Daily,
			Monthly: res.PredictedSales.Monthly,
			Yearly:  res.PredictedSales.Yearly,
		},
		GrowthAnalysis: &api.GrowthAnalysis{
			DailyGrowth:   slices.Clone(res.GrowthAnalysis.DailyGrowth),
			MonthlyGrowth: slices.Clone(res.GrowthAnalysis.MonthlyGrowth),
			YearlyGrowth:  slices.Clone(res.GrowthAnalysis.YearlyGrowth),
		},
		DailyDetails: details,
	}
}

func mapTable(field string, t api.Table) (domain.Table, error) {
	var rows [][]domain.Scalar
	if t.Rows != nil {
		rows = make([][]domain.Scalar, 0, len(t.Rows))
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return domain.Table{}, fmt.Errorf("%w: %s.rows[%d] has %d cells, expected %d",
				domain.ErrInvalidPayload, field, i, len(row), len(t.Headers))
		}
		cells := make([]domain.Scalar, 0, len(row))
		for j, cell := range row {
			switch cell.(type) {
			case nil, string, float64, bool:
				cells = append(cells, domain.NewScalar(cell))
			default:
				return domain.Table{}, fmt.Errorf("%w: %s.rows[%d][%d] is not a scalar",
					domain.ErrInvalidPayload, field, i, j)
			}
		}
		rows = append(rows, cells)
	}
	return domain.Table{Headers: slices.Clone(t.Headers), Rows: rows}, nil
}

func mapTableToApi(t domain.Table) api.Table {
	var rows [][]interface{}
	if t.Rows != nil {
		rows = make([][]interface{}, 0, len(t.Rows))
	}
	for _, row := range t.Rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell.Value())
		}
		rows = append(rows, cells)
	}
	return api.Table{Headers: slices.Clone(t.Headers), Rows: rows}
}

func mapDailyDetails(rows [][]interface{}) ([]domain.DailyRecord, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	records := make([]domain.DailyRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) != 5 {
			return nil, fmt.Errorf("%w: dailyDetails[%d] has %d fields, expected 5",
				domain.ErrInvalidPayload, i, len(row))
		}
		day, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: dailyDetails[%d] day is not a string", domain.ErrInvalidPayload, i)
		}
		product, ok := row[1].(string)
		if !ok {
			return nil, fmt.Errorf("%w: dailyDetails[%d] product is not a string", domain.ErrInvalidPayload, i)
		}
		var amounts [3]float64
		for j := range amounts {
			v, ok := domain.NewScalar(row[2+j]).Float()
			if !ok {
				return nil, fmt.Errorf("%w: dailyDetails[%d][%d] is not a number", domain.ErrInvalidPayload, i, 2+j)
			}
			amounts[j] = v
		}
		records = append(records, domain.DailyRecord{
			Day:     day,
			Product: product,
			Sales:   amounts[0],
			COGS:    amounts[1],
			Profit:  amounts[2],
		})
	}
	return records, nil
}

func ptr(v float64) *float64 {
	return &v
}
