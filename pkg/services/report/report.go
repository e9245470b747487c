// Package report assembles presentation-ready tables from an analysis
// result. Values keep their native types; formatting belongs to the
// presenter.
package report

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/ledger"
)

const (
	NoAnalysisMessage = "No analysis data available. Please upload a report."
	DefaultCurrency   = "Ksh"
)

// SummaryRows lists the profit and loss metrics in display order.
func SummaryRows(r *domain.AnalysisResult) []domain.SummaryRow {
	return []domain.SummaryRow{
		{Metric: "Total Sales", Value: r.TotalSales},
		{Metric: "Total COGS", Value: r.TotalCOGS},
		{Metric: "Profit / Loss", Value: r.ProfitOrLoss},
	}
}

func Summary(r *domain.AnalysisResult, currency string) *domain.Report {
	currency = currencyOrDefault(currency)
	section := domain.ReportSection{
		Title:   "Profit and Loss Summary",
		Headers: []string{"Metric", fmt.Sprintf("Value (%s)", currency)},
	}
	for _, row := range SummaryRows(r) {
		section.Rows = append(section.Rows, []interface{}{row.Metric, row.Value})
	}

	predicted := domain.ReportSection{
		Title:   "Predicted Sales",
		Headers: []string{"Period", fmt.Sprintf("Amount (%s)", currency)},
		Rows: [][]interface{}{
			{"Daily", r.PredictedSales.Daily},
			{"Monthly", r.PredictedSales.Monthly},
			{"Yearly", r.PredictedSales.Yearly},
		},
	}

	return &domain.Report{
		Title:    "Financial Analysis Results",
		Currency: currency,
		Sections: []domain.ReportSection{section, predicted},
	}
}

// Products renders a product table verbatim.
func Products(title string, t domain.Table) *domain.Report {
	section := domain.ReportSection{
		Title:   title,
		Headers: t.Headers,
		Empty:   "No products.",
	}
	for _, row := range t.Rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell.Value())
		}
		section.Rows = append(section.Rows, cells)
	}
	return &domain.Report{Title: title, Sections: []domain.ReportSection{section}}
}

// LedgerSearch renders search matches, or the outcome message when there
// are none.
func LedgerSearch(product, date string, matches []ledger.Match, err error) *domain.Report {
	section := domain.ReportSection{
		Title:   fmt.Sprintf("Daily records for %q on %s", product, date),
		Headers: []string{"Date", "Product", "Sales", "COGS", "Profit", "Status"},
		Empty:   ledger.Message(matches, err),
	}
	for _, m := range matches {
		section.Rows = append(section.Rows, []interface{}{
			m.Record.Day, m.Record.Product, m.Record.Sales, m.Record.COGS, m.Record.Profit, string(m.Status),
		})
	}
	return &domain.Report{
		Title:    "Search Daily COGS, Sales, Profit & Losses",
		Sections: []domain.ReportSection{section},
	}
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return DefaultCurrency
	}
	return currency
}
